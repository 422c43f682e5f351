package domain

import "time"

// DaySchedule is the recurring availability of a resource on one weekday:
// a single open window and zero or more breaks inside it.
type DaySchedule struct {
	IsOpen bool
	Window *Interval
	Breaks []Interval
}

// WeekSchedule holds the recurring schedule of a resource for every weekday.
type WeekSchedule struct {
	ResourceID int64
	Monday     DaySchedule
	Tuesday    DaySchedule
	Wednesday  DaySchedule
	Thursday   DaySchedule
	Friday     DaySchedule
	Saturday   DaySchedule
	Sunday     DaySchedule
}

// ForWeekday returns the day schedule matching the weekday of date.
func (w *WeekSchedule) ForWeekday(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// SetForWeekday replaces the day schedule for the given weekday.
func (w *WeekSchedule) SetForWeekday(weekday time.Weekday, day DaySchedule) {
	switch weekday {
	case time.Monday:
		w.Monday = day
	case time.Tuesday:
		w.Tuesday = day
	case time.Wednesday:
		w.Wednesday = day
	case time.Thursday:
		w.Thursday = day
	case time.Friday:
		w.Friday = day
	case time.Saturday:
		w.Saturday = day
	case time.Sunday:
		w.Sunday = day
	}
}

// DefaultDaySchedule returns the documented fallback window used for
// resources with no configured schedule. Applied explicitly by the
// usecases, never silently inside the resolver.
func DefaultDaySchedule() DaySchedule {
	return DaySchedule{
		IsOpen: true,
		Window: &Interval{StartMinute: DefaultOpenMinute, EndMinute: DefaultCloseMinute},
	}
}

// ResourceBlock is an ad-hoc staff-authored unavailability for a resource.
// A block covers whole days over [StartDate, EndDate] unless Interval is set,
// in which case only that time range on the matching dates is blocked.
// Blocks are immutable once created; they are deleted to "unblock".
type ResourceBlock struct {
	ID         int64
	ResourceID int64
	StartDate  time.Time
	EndDate    time.Time
	Interval   *Interval
	Reason     string
	CreatedAt  time.Time
}

// IsFullDay reports whether the block removes the entire working window.
func (b *ResourceBlock) IsFullDay() bool {
	return b.Interval == nil
}

// AppliesTo reports whether the block covers the given date.
func (b *ResourceBlock) AppliesTo(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(b.StartDate)) && !d.After(truncateToDay(b.EndDate))
}

// OpenIntervals merges a day schedule with the blocks matching one concrete
// date into the set of open intervals for that date: the window minus every
// break, minus every applicable block. The result is disjoint and
// time-ordered; a closed day or a full-day block yields an empty result.
func OpenIntervals(day DaySchedule, blocks []*ResourceBlock, date time.Time) []Interval {
	if !day.IsOpen || day.Window == nil {
		return []Interval{}
	}

	cuts := make([]Interval, 0, len(day.Breaks)+len(blocks))
	cuts = append(cuts, day.Breaks...)

	for _, block := range blocks {
		if !block.AppliesTo(date) {
			continue
		}
		if block.IsFullDay() {
			// The whole window goes away.
			return []Interval{}
		}
		cuts = append(cuts, *block.Interval)
	}

	return Subtract(*day.Window, cuts)
}

// truncateToDay drops the time-of-day part for date comparisons.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
