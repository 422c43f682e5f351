package domain

// Campaign is a promotional upsell/downsell offer attached to a service.
// When accepted for a booking it may replace the booking's effective
// duration with CustomDurationMinutes.
type Campaign struct {
	ID                    int64
	LinkedServiceID       int64
	CustomDurationMinutes *int
}

// EffectiveDuration resolves the duration a booking will occupy: the base
// service duration, replaced entirely (not extended) by the campaign's
// custom duration when one is attached and defines it. The same resolver is
// used when generating candidate slots and when validating a booking
// request; already-stored bookings carry their resolved duration instead.
func EffectiveDuration(baseDurationMinutes int, campaign *Campaign) int {
	if campaign != nil && campaign.CustomDurationMinutes != nil {
		return *campaign.CustomDurationMinutes
	}
	return baseDurationMinutes
}
