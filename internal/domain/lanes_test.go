package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutBooking(t *testing.T, id int64, start, end int) *Booking {
	t.Helper()
	return &Booking{ID: id, Interval: mustInterval(t, start, end), Status: StatusConfirmed}
}

func TestPackLanes_NoOverlapSingleLane(t *testing.T) {
	bookings := []*Booking{
		layoutBooking(t, 1, 540, 600),
		layoutBooking(t, 2, 600, 660), // граничит с первой - не пересекается
		layoutBooking(t, 3, 720, 780),
	}

	lanes := PackLanes(bookings)

	assert.Equal(t, 0, lanes[1])
	assert.Equal(t, 0, lanes[2])
	assert.Equal(t, 0, lanes[3])
}

func TestPackLanes_OverlappingBookingsSplitLanes(t *testing.T) {
	bookings := []*Booking{
		layoutBooking(t, 1, 540, 660),
		layoutBooking(t, 2, 600, 720), // пересекается с 1
		layoutBooking(t, 3, 660, 780), // пересекается с 2, но не с 1
	}

	lanes := PackLanes(bookings)

	assert.Equal(t, 0, lanes[1])
	assert.Equal(t, 1, lanes[2])
	// Третья возвращается в первую дорожку - жадное переиспользование
	assert.Equal(t, 0, lanes[3])
}

func TestPackLanes_SameLaneNeverOverlaps(t *testing.T) {
	bookings := []*Booking{
		layoutBooking(t, 1, 540, 660),
		layoutBooking(t, 2, 550, 650),
		layoutBooking(t, 3, 560, 640),
		layoutBooking(t, 4, 660, 720),
		layoutBooking(t, 5, 600, 700),
	}

	lanes := PackLanes(bookings)

	byID := make(map[int64]*Booking)
	for _, b := range bookings {
		byID[b.ID] = b
	}

	// Инвариант: две брони в одной дорожке никогда не пересекаются
	for idA, laneA := range lanes {
		for idB, laneB := range lanes {
			if idA >= idB || laneA != laneB {
				continue
			}
			assert.False(t, byID[idA].Interval.Overlaps(byID[idB].Interval),
				"bookings %d and %d share lane %d but overlap", idA, idB, laneA)
		}
	}
}

func TestPackLanes_LaneCountEqualsMaxDepth(t *testing.T) {
	// Три брони одновременно в 10:30 - глубина 3, ровно 3 дорожки
	bookings := []*Booking{
		layoutBooking(t, 1, 540, 660),
		layoutBooking(t, 2, 600, 720),
		layoutBooking(t, 3, 630, 690),
		layoutBooking(t, 4, 720, 780), // после пика, переиспользует дорожку
	}

	lanes := PackLanes(bookings)

	maxLane := 0
	for _, lane := range lanes {
		if lane > maxLane {
			maxLane = lane
		}
	}
	assert.Equal(t, 2, maxLane)
}

func TestPackLanes_DeterministicOnEqualStarts(t *testing.T) {
	bookings := []*Booking{
		layoutBooking(t, 10, 540, 600),
		layoutBooking(t, 20, 540, 600),
		layoutBooking(t, 30, 540, 600),
	}

	// При равных стартах порядок вставки определяет дорожку
	for range 5 {
		lanes := PackLanes(bookings)
		assert.Equal(t, 0, lanes[10])
		assert.Equal(t, 1, lanes[20])
		assert.Equal(t, 2, lanes[30])
	}
}

func TestPackLanes_Empty(t *testing.T) {
	assert.Empty(t, PackLanes(nil))
	assert.Empty(t, PackLanes([]*Booking{}))
}

func TestBuildDayLayout(t *testing.T) {
	bookings := []*Booking{
		layoutBooking(t, 2, 600, 720),
		layoutBooking(t, 1, 540, 660),
	}

	layouts := BuildDayLayout(bookings)

	require.Len(t, layouts, 2)

	// Упорядочено по времени начала
	assert.Equal(t, int64(1), layouts[0].BookingID)
	assert.Equal(t, 540, layouts[0].TopOffsetMinutes)
	assert.Equal(t, 120, layouts[0].HeightMinutes)
	assert.Equal(t, 0, layouts[0].LaneIndex)

	assert.Equal(t, int64(2), layouts[1].BookingID)
	assert.Equal(t, 600, layouts[1].TopOffsetMinutes)
	assert.Equal(t, 120, layouts[1].HeightMinutes)
	assert.Equal(t, 1, layouts[1].LaneIndex)
}
