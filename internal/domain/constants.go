package domain

// Default schedule values
const (
	// DefaultOpenMinute / DefaultCloseMinute define the fallback working
	// window (08:00-18:00) for resources with no configured schedule.
	DefaultOpenMinute  = 8 * 60
	DefaultCloseMinute = 18 * 60

	DefaultGranularityMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinGranularityMinutes       = 5
	MaxGranularityMinutes       = 120
	MaxBlockReasonLength        = 500
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Неактивные бронирования не участвуют в проверках пересечений
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByStaff,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
