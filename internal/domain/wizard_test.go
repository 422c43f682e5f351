package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingWizard_HappyPathWithoutOffers(t *testing.T) {
	w := NewBookingWizard()
	assert.Equal(t, WizardIntake, w.State)

	require.NoError(t, w.BeginServiceSelection())
	require.NoError(t, w.SelectService(42, false))
	assert.Equal(t, WizardDateTimeSelection, w.State)

	require.NoError(t, w.ConfirmDateTime())
	assert.Equal(t, WizardConfirmation, w.State)
	assert.Nil(t, w.AcceptedCampaignID)
}

func TestBookingWizard_AcceptUpsell(t *testing.T) {
	w := NewBookingWizard()
	require.NoError(t, w.BeginServiceSelection())
	require.NoError(t, w.SelectService(42, true))
	assert.Equal(t, WizardUpsellOffer, w.State)

	require.NoError(t, w.AcceptUpsell(7))
	assert.Equal(t, WizardDateTimeSelection, w.State)
	require.NotNil(t, w.AcceptedCampaignID)
	assert.Equal(t, int64(7), *w.AcceptedCampaignID)
}

func TestBookingWizard_DeclineUpsellThenDownsell(t *testing.T) {
	w := NewBookingWizard()
	require.NoError(t, w.BeginServiceSelection())
	require.NoError(t, w.SelectService(42, true))

	require.NoError(t, w.DeclineUpsell(true))
	assert.Equal(t, WizardDownsellOffer, w.State)

	require.NoError(t, w.AcceptDownsell(9))
	assert.Equal(t, WizardDateTimeSelection, w.State)
	require.NotNil(t, w.AcceptedCampaignID)
	assert.Equal(t, int64(9), *w.AcceptedCampaignID)
}

func TestBookingWizard_DeclineEverything(t *testing.T) {
	w := NewBookingWizard()
	require.NoError(t, w.BeginServiceSelection())
	require.NoError(t, w.SelectService(42, true))
	require.NoError(t, w.DeclineUpsell(true))
	require.NoError(t, w.DeclineDownsell())

	assert.Equal(t, WizardDateTimeSelection, w.State)
	assert.Nil(t, w.AcceptedCampaignID)
}

func TestBookingWizard_InvalidTransitions(t *testing.T) {
	w := NewBookingWizard()

	// Нельзя принять оффер до выбора услуги
	assert.ErrorIs(t, w.AcceptUpsell(7), ErrInvalidTransition)
	assert.ErrorIs(t, w.ConfirmDateTime(), ErrInvalidTransition)

	require.NoError(t, w.BeginServiceSelection())
	assert.ErrorIs(t, w.BeginServiceSelection(), ErrInvalidTransition)

	require.NoError(t, w.SelectService(42, false))
	// Оффер не показывался - принять его нельзя
	assert.ErrorIs(t, w.AcceptUpsell(7), ErrInvalidTransition)
	assert.ErrorIs(t, w.DeclineDownsell(), ErrInvalidTransition)

	// Принятый оффер нельзя принять второй раз
	w2 := NewBookingWizard()
	require.NoError(t, w2.BeginServiceSelection())
	require.NoError(t, w2.SelectService(42, true))
	require.NoError(t, w2.AcceptUpsell(7))
	assert.ErrorIs(t, w2.AcceptUpsell(7), ErrInvalidTransition)
}
