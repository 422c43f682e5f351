package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusInProgress       BookingStatus = "in_progress"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByStaff BookingStatus = "cancelled_by_staff"
	StatusNoShow           BookingStatus = "no_show"
)

// Booking represents a confirmed reservation of a resource's time.
// Interval always holds the stored effective duration: end = start +
// effective duration resolved at creation time. The engine as a whole
// guarantees that no two active bookings for the same resource and date
// overlap; no single record can enforce that alone.
type Booking struct {
	ID         int64
	UserID     int64
	ResourceID int64
	ServiceID  int64
	CampaignID *int64 // accepted upsell/downsell campaign, if any
	Date       time.Time
	Interval   Interval

	Status BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes returns the stored effective duration of the booking.
// Stored once at creation; never recomputed from a possibly-changed
// service definition.
func (b *Booking) DurationMinutes() int {
	return b.Interval.Duration()
}

// IsActive returns true if the booking still occupies its time range.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByStaff &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByStaff
}

// ResourceBookingsFilter фильтр для получения бронирований ресурса
type ResourceBookingsFilter struct {
	ResourceID      int64
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
