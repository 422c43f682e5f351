package domain

import (
	"fmt"
	"iter"
)

// GenerateSlots produces the candidate start minutes for one resource/date:
// a lazy, finite sequence that walks each open interval at granularity steps
// and keeps only starts whose proposed interval stays inside its open
// interval and overlaps no busy interval. Open intervals are walked in
// order, so candidates come out ascending when the input is time-ordered
// (OpenIntervals guarantees that). Re-ranging the returned sequence
// restarts it from the beginning.
//
// Open intervals are never concatenated: a duration longer than every single
// open interval yields no slots even if the total open time would suffice.
func GenerateSlots(open []Interval, busy []Interval, durationMinutes, granularityMinutes int) (iter.Seq[int], error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration %d must be positive", ErrInvalidDuration, durationMinutes)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity %d must be positive", ErrInvalidDuration, granularityMinutes)
	}

	return func(yield func(int) bool) {
		for _, window := range open {
			// Inclusive bound: a candidate ending exactly at the window end is valid.
			for start := window.StartMinute; start+durationMinutes <= window.EndMinute; start += granularityMinutes {
				proposed := Interval{StartMinute: start, EndMinute: start + durationMinutes}
				if !window.Contains(proposed) {
					continue
				}
				if overlapsAny(proposed, busy) {
					continue
				}
				if !yield(start) {
					return
				}
			}
		}
	}, nil
}

// overlapsAny reports whether the proposed interval collides with any busy one.
func overlapsAny(proposed Interval, busy []Interval) bool {
	for _, b := range busy {
		if proposed.Overlaps(b) {
			return true
		}
	}
	return false
}

// ActiveIntervals extracts the stored intervals of the active bookings in
// the list. Cancelled and no-show bookings free their time range.
func ActiveIntervals(bookings []*Booking) []Interval {
	intervals := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		intervals = append(intervals, b.Interval)
	}
	return intervals
}
