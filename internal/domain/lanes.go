package domain

import "sort"

// PackLanes assigns a horizontal lane index to every booking of a day so
// that concurrently-overlapping bookings render side-by-side. Greedy
// first-fit over bookings sorted by start minute (ties keep insertion order
// for determinism): each booking goes to the first lane whose last booking
// it does not overlap, or opens a new lane. The number of lanes used equals
// the maximum simultaneous-overlap depth of the input. Purely presentational;
// has no bearing on availability.
func PackLanes(bookings []*Booking) map[int64]int {
	ordered := make([]*Booking, len(bookings))
	copy(ordered, bookings)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Interval.StartMinute < ordered[b].Interval.StartMinute
	})

	assignment := make(map[int64]int, len(ordered))
	// Per lane: the interval of the latest-ending booking assigned to it.
	laneEnds := make([]Interval, 0)

	for _, booking := range ordered {
		placed := false
		for lane, last := range laneEnds {
			if !booking.Interval.Overlaps(last) {
				laneEnds[lane] = booking.Interval
				assignment[booking.ID] = lane
				placed = true
				break
			}
		}
		if !placed {
			laneEnds = append(laneEnds, booking.Interval)
			assignment[booking.ID] = len(laneEnds) - 1
		}
	}

	return assignment
}

// BookingLayout is the rendering triple for one booking on a day view.
type BookingLayout struct {
	BookingID        int64
	LaneIndex        int
	TopOffsetMinutes int
	HeightMinutes    int
}

// BuildDayLayout derives the layout triples for a day's bookings from the
// lane assignment plus each booking's own interval, ordered by start time.
func BuildDayLayout(bookings []*Booking) []BookingLayout {
	lanes := PackLanes(bookings)

	layouts := make([]BookingLayout, 0, len(bookings))
	for _, b := range bookings {
		layouts = append(layouts, BookingLayout{
			BookingID:        b.ID,
			LaneIndex:        lanes[b.ID],
			TopOffsetMinutes: b.Interval.StartMinute,
			HeightMinutes:    b.Interval.Duration(),
		})
	}

	sort.SliceStable(layouts, func(a, b int) bool {
		return layouts[a].TopOffsetMinutes < layouts[b].TopOffsetMinutes
	})

	return layouts
}
