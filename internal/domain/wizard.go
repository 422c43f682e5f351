package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a wizard event fires in a state
// that does not allow it.
var ErrInvalidTransition = errors.New("domain: invalid wizard transition")

// WizardState is a step of the multi-step booking flow.
type WizardState string

const (
	WizardIntake            WizardState = "intake"
	WizardServiceSelection  WizardState = "service_selection"
	WizardUpsellOffer       WizardState = "upsell_offer"
	WizardDownsellOffer     WizardState = "downsell_offer"
	WizardDateTimeSelection WizardState = "datetime_selection"
	WizardConfirmation      WizardState = "confirmation"
)

// BookingWizard is the explicit state machine behind the booking flow.
// It replaces the ad-hoc show/accepted/declined flag combinations with a
// single state value and defined transitions, so an offer can never be
// both accepted and declined or shown out of order.
type BookingWizard struct {
	State              WizardState
	ServiceID          int64
	AcceptedCampaignID *int64
}

// NewBookingWizard starts a wizard at the intake step.
func NewBookingWizard() *BookingWizard {
	return &BookingWizard{State: WizardIntake}
}

// BeginServiceSelection moves from intake to choosing a service.
func (w *BookingWizard) BeginServiceSelection() error {
	if w.State != WizardIntake {
		return w.transitionError("BeginServiceSelection")
	}
	w.State = WizardServiceSelection
	return nil
}

// SelectService fixes the service. When the service carries an upsell
// campaign the wizard detours through the offer step, otherwise it goes
// straight to picking a date and time.
func (w *BookingWizard) SelectService(serviceID int64, hasUpsell bool) error {
	if w.State != WizardServiceSelection {
		return w.transitionError("SelectService")
	}
	w.ServiceID = serviceID
	if hasUpsell {
		w.State = WizardUpsellOffer
	} else {
		w.State = WizardDateTimeSelection
	}
	return nil
}

// AcceptUpsell accepts the upsell campaign and proceeds to date selection.
func (w *BookingWizard) AcceptUpsell(campaignID int64) error {
	if w.State != WizardUpsellOffer {
		return w.transitionError("AcceptUpsell")
	}
	w.AcceptedCampaignID = &campaignID
	w.State = WizardDateTimeSelection
	return nil
}

// DeclineUpsell declines the upsell. A downsell campaign, when present,
// gets one counter-offer step; otherwise the wizard moves on.
func (w *BookingWizard) DeclineUpsell(hasDownsell bool) error {
	if w.State != WizardUpsellOffer {
		return w.transitionError("DeclineUpsell")
	}
	if hasDownsell {
		w.State = WizardDownsellOffer
	} else {
		w.State = WizardDateTimeSelection
	}
	return nil
}

// AcceptDownsell accepts the downsell campaign and proceeds to date selection.
func (w *BookingWizard) AcceptDownsell(campaignID int64) error {
	if w.State != WizardDownsellOffer {
		return w.transitionError("AcceptDownsell")
	}
	w.AcceptedCampaignID = &campaignID
	w.State = WizardDateTimeSelection
	return nil
}

// DeclineDownsell declines the downsell and proceeds to date selection.
func (w *BookingWizard) DeclineDownsell() error {
	if w.State != WizardDownsellOffer {
		return w.transitionError("DeclineDownsell")
	}
	w.State = WizardDateTimeSelection
	return nil
}

// ConfirmDateTime moves to the final confirmation step once a slot is picked.
func (w *BookingWizard) ConfirmDateTime() error {
	if w.State != WizardDateTimeSelection {
		return w.transitionError("ConfirmDateTime")
	}
	w.State = WizardConfirmation
	return nil
}

func (w *BookingWizard) transitionError(event string) error {
	return fmt.Errorf("%w: %s is not allowed in state %q", ErrInvalidTransition, event, w.State)
}
