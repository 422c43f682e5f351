package domain

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// MinutesPerDay is the number of minutes in a single day.
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidInterval is returned for inverted or out-of-range interval bounds.
	ErrInvalidInterval = errors.New("domain: invalid interval")

	// ErrInvalidDuration is returned for non-positive durations and granularities.
	ErrInvalidDuration = errors.New("domain: invalid duration")
)

// Interval is a half-open [StartMinute, EndMinute) time range expressed in
// minutes since midnight. An interval never spans midnight; multi-day
// unavailability is represented as one interval per date.
type Interval struct {
	StartMinute int
	EndMinute   int
}

// NewInterval validates bounds and builds an interval.
// Malformed values fail fast, they are never clamped.
func NewInterval(startMinute, endMinute int) (Interval, error) {
	if startMinute < 0 || startMinute >= MinutesPerDay {
		return Interval{}, fmt.Errorf("%w: start minute %d out of [0, %d)", ErrInvalidInterval, startMinute, MinutesPerDay)
	}
	if endMinute <= 0 || endMinute > MinutesPerDay {
		return Interval{}, fmt.Errorf("%w: end minute %d out of (0, %d]", ErrInvalidInterval, endMinute, MinutesPerDay)
	}
	if startMinute >= endMinute {
		return Interval{}, fmt.Errorf("%w: start %d is not before end %d", ErrInvalidInterval, startMinute, endMinute)
	}
	return Interval{StartMinute: startMinute, EndMinute: endMinute}, nil
}

// Overlaps reports whether two half-open intervals share at least one minute.
// A booking ending exactly when another starts does NOT conflict.
// This is the single overlap test in the system; every conflict check
// (slot filtering, booking validation, lane layout) goes through it.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartMinute < other.EndMinute && i.EndMinute > other.StartMinute
}

// Contains reports whether other lies fully inside i.
func (i Interval) Contains(other Interval) bool {
	return i.StartMinute <= other.StartMinute && other.EndMinute <= i.EndMinute
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return i.EndMinute - i.StartMinute
}

// String renders the interval as "HH:MM-HH:MM" for conflict messages.
func (i Interval) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		i.StartMinute/60, i.StartMinute%60, i.EndMinute/60, i.EndMinute%60)
}

// Subtract removes every cut from window and returns the remaining free
// sub-intervals, ordered by time. Cuts may be unsorted, may overlap each
// other, may lie outside the window, and may consume it entirely (empty
// result). Laws: Subtract(w, nil) == [w]; Subtract(w, [w]) == [].
func Subtract(window Interval, cuts []Interval) []Interval {
	free := []Interval{window}

	for _, cut := range cuts {
		next := make([]Interval, 0, len(free)+1)
		for _, f := range free {
			if !f.Overlaps(cut) {
				next = append(next, f)
				continue
			}
			// Left remainder before the cut.
			if f.StartMinute < cut.StartMinute {
				next = append(next, Interval{StartMinute: f.StartMinute, EndMinute: cut.StartMinute})
			}
			// Right remainder after the cut.
			if cut.EndMinute < f.EndMinute {
				next = append(next, Interval{StartMinute: cut.EndMinute, EndMinute: f.EndMinute})
			}
		}
		free = next
	}

	sort.Slice(free, func(a, b int) bool {
		return free[a].StartMinute < free[b].StartMinute
	})

	return free
}
