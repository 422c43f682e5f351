package get_day_layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeCatalogClient struct {
	resources map[int64]*catalogservice.Resource
}

func (f *fakeCatalogClient) GetResource(_ context.Context, id int64) (*catalogservice.Resource, error) {
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, catalogservice.ErrResourceNotFound
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const testResourceID = int64(10)

var testDate = time.Date(2030, time.January, 7, 0, 0, 0, 0, time.UTC)

func booking(id int64, start, end int) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ResourceID:  testResourceID,
		Date:        testDate,
		Interval:    domain.Interval{StartMinute: start, EndMinute: end},
		Status:      domain.StatusConfirmed,
		ServiceName: "Стрижка",
	}
}

func newUseCase(bookings ...*domain.Booking) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeCatalogClient{resources: map[int64]*catalogservice.Resource{
			testResourceID: {ID: testResourceID, Name: "Мастер Анна", OwnerUserID: 100, IsActive: true},
		}},
		noopLogger{},
	)
}

func TestExecute_NonOverlappingSingleLane(t *testing.T) {
	uc := newUseCase(
		booking(1, 540, 600),
		booking(2, 600, 660),
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: testResourceID, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.LaneCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 0, resp.Items[0].LaneIndex)
	assert.Equal(t, 0, resp.Items[1].LaneIndex)
}

func TestExecute_OverlappingBookingsSplitLanes(t *testing.T) {
	uc := newUseCase(
		booking(1, 540, 660),
		booking(2, 600, 720),
		booking(3, 630, 690),
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: testResourceID, Date: testDate})

	require.NoError(t, err)
	// Все три пересекаются в [630, 660) - три дорожки
	assert.Equal(t, 3, resp.LaneCount)

	// Внутри одной дорожки пересечений нет
	byLane := make(map[int][]Item)
	for _, item := range resp.Items {
		byLane[item.LaneIndex] = append(byLane[item.LaneIndex], item)
	}
	for _, items := range byLane {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				a := domain.Interval{StartMinute: items[i].TopOffsetMinutes, EndMinute: items[i].TopOffsetMinutes + items[i].HeightMinutes}
				b := domain.Interval{StartMinute: items[j].TopOffsetMinutes, EndMinute: items[j].TopOffsetMinutes + items[j].HeightMinutes}
				assert.False(t, a.Overlaps(b), "бронирования %d и %d на одной дорожке пересекаются", items[i].BookingID, items[j].BookingID)
			}
		}
	}
}

func TestExecute_ItemGeometryAndOrder(t *testing.T) {
	uc := newUseCase(
		booking(2, 600, 660),
		booking(1, 540, 630),
	)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: testResourceID, Date: testDate})

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	// Сортировка по времени начала
	assert.Equal(t, int64(1), resp.Items[0].BookingID)
	assert.Equal(t, 540, resp.Items[0].TopOffsetMinutes)
	assert.Equal(t, 90, resp.Items[0].HeightMinutes)
	assert.Equal(t, types.TimeString("09:00"), resp.Items[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Items[0].EndTime)
	assert.Equal(t, "Стрижка", resp.Items[0].ServiceName)
}

func TestExecute_CancelledBookingsExcluded(t *testing.T) {
	cancelled := booking(2, 600, 660)
	cancelled.Status = domain.StatusCancelledByUser

	uc := newUseCase(booking(1, 540, 600), cancelled)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: testResourceID, Date: testDate})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].BookingID)
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: testResourceID, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.LaneCount)
	assert.Empty(t, resp.Items)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 404, Date: testDate})

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 0, Date: testDate})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
