package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// --- фейки зависимостей ---

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

type fakeScheduleRepo struct {
	week        *domain.WeekSchedule
	scheduleErr error
	blocks      []*domain.ResourceBlock
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ int64) (*domain.WeekSchedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.week, nil
}

func (f *fakeScheduleRepo) GetBlocksForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.ResourceBlock, error) {
	return f.blocks, nil
}

type fakeCatalogClient struct {
	resources map[int64]*catalogservice.Resource
	services  map[int64]*catalogservice.Service
	campaigns map[int64]*catalogservice.Campaign
}

func (f *fakeCatalogClient) GetResource(_ context.Context, id int64) (*catalogservice.Resource, error) {
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, catalogservice.ErrResourceNotFound
}

func (f *fakeCatalogClient) GetService(_ context.Context, id int64) (*catalogservice.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogservice.ErrServiceNotFound
}

func (f *fakeCatalogClient) GetCampaign(_ context.Context, id int64) (*catalogservice.Campaign, error) {
	if c, ok := f.campaigns[id]; ok {
		return c, nil
	}
	return nil, catalogservice.ErrCampaignNotFound
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- вспомогательная сборка ---

const (
	testResourceID = int64(10)
	testServiceID  = int64(20)
)

// 2030-01-07 - понедельник, заведомо в будущем
var testDate = time.Date(2030, time.January, 7, 0, 0, 0, 0, time.UTC)

var testNow = time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	schedule *fakeScheduleRepo
	catalog  *fakeCatalogClient
}

func newFixture(granularity int) *fixture {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{
		week: fullWeek(domain.DaySchedule{
			IsOpen: true,
			Window: &domain.Interval{StartMinute: 9 * 60, EndMinute: 17 * 60},
		}),
	}
	catalog := &fakeCatalogClient{
		resources: map[int64]*catalogservice.Resource{
			testResourceID: {ID: testResourceID, Name: "Мастер Анна", OwnerUserID: 100, IsActive: true},
		},
		services: map[int64]*catalogservice.Service{
			testServiceID: {
				ID:              testServiceID,
				Name:            "Стрижка",
				DurationMinutes: 30,
				ResourceIDs:     []int64{testResourceID},
			},
		},
		campaigns: map[int64]*catalogservice.Campaign{},
	}

	uc := NewUseCase(bookings, schedule, catalog, granularity, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	return &fixture{uc: uc, bookings: bookings, schedule: schedule, catalog: catalog}
}

func fullWeek(day domain.DaySchedule) *domain.WeekSchedule {
	week := &domain.WeekSchedule{ResourceID: testResourceID}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		week.SetForWeekday(wd, day)
	}
	return week
}

func validRequest() *Request {
	return &Request{
		UserID:     1,
		ResourceID: testResourceID,
		ServiceID:  testServiceID,
		Date:       testDate,
	}
}

func startMinutes(slots []Slot) []int {
	starts := make([]int, len(slots))
	for i, s := range slots {
		starts[i] = s.StartMinute
	}
	return starts
}

// --- тесты ---

func TestExecute_FullOpenDay(t *testing.T) {
	f := newFixture(30)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	// Окно 09:00-17:00, длительность 30, шаг 30: старты 09:00..16:30
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[15].StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 30, resp.GranularityMinutes)
}

func TestExecute_BreakSplitsDay(t *testing.T) {
	f := newFixture(30)
	// Окно 09:00-17:00, перерыв 12:00-13:00, длительность 90 минут:
	// слот не может накрыть перерыв, открытые интервалы не склеиваются
	f.schedule.week = fullWeek(domain.DaySchedule{
		IsOpen: true,
		Window: &domain.Interval{StartMinute: 540, EndMinute: 1020},
		Breaks: []domain.Interval{{StartMinute: 720, EndMinute: 780}},
	})
	f.catalog.services[testServiceID].DurationMinutes = 90

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, []int{540, 570, 600, 630, 780, 810, 840, 870, 900, 930}, startMinutes(resp.Slots))
}

func TestExecute_BookingExcludesOverlappingStarts(t *testing.T) {
	f := newFixture(30)
	// Бронирование 10:00-11:00 выбивает старты 09:30, 10:00, 10:30
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:         1,
		ResourceID: testResourceID,
		Date:       testDate,
		Interval:   domain.Interval{StartMinute: 600, EndMinute: 660},
		Status:     domain.StatusConfirmed,
	})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	starts := startMinutes(resp.Slots)
	assert.NotContains(t, starts, 570)
	assert.NotContains(t, starts, 600)
	assert.NotContains(t, starts, 630)
	assert.Contains(t, starts, 540)
	assert.Contains(t, starts, 660)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(30)
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:         1,
		ResourceID: testResourceID,
		Date:       testDate,
		Interval:   domain.Interval{StartMinute: 600, EndMinute: 660},
		Status:     domain.StatusCancelledByStaff,
	})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Contains(t, startMinutes(resp.Slots), 600)
}

func TestExecute_ClosedDayReturnsEmptyList(t *testing.T) {
	f := newFixture(30)
	f.schedule.week = fullWeek(domain.DaySchedule{IsOpen: false})

	resp, err := f.uc.Execute(context.Background(), validRequest())

	// Закрытый день - пустой список, не ошибка
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDayBlockReturnsEmptyList(t *testing.T) {
	f := newFixture(30)
	f.schedule.blocks = []*domain.ResourceBlock{
		{ID: 9, ResourceID: testResourceID, StartDate: testDate, EndDate: testDate, Reason: "Отпуск"},
	}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultScheduleFallback(t *testing.T) {
	f := newFixture(30)
	// Расписание не настроено - действует дефолтное окно 08:00-18:00
	f.schedule.scheduleErr = scheduleRepo.ErrScheduleNotFound

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, domain.DefaultOpenMinute, resp.Slots[0].StartMinute)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, domain.DefaultCloseMinute-30, last.StartMinute)
}

func TestExecute_CampaignReplacesDuration(t *testing.T) {
	f := newFixture(30)
	f.catalog.campaigns[5] = &catalogservice.Campaign{
		ID:                    5,
		LinkedServiceID:       testServiceID,
		CustomDurationMinutes: ptr.Ptr(45),
		IsActive:              true,
	}

	req := validRequest()
	req.CampaignID = ptr.Ptr(int64(5))

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	// Последний старт: 17:00 - 45 минут с шагом 30 => 16:00
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("16:00"), last.StartTime)
	assert.Equal(t, types.TimeString("16:45"), last.EndTime)
}

func TestExecute_CampaignNotLinked(t *testing.T) {
	f := newFixture(30)
	f.catalog.campaigns[5] = &catalogservice.Campaign{
		ID:              5,
		LinkedServiceID: 999,
		IsActive:        true,
	}

	req := validRequest()
	req.CampaignID = ptr.Ptr(int64(5))

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCampaignNotLinked)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	f := newFixture(30)

	req := validRequest()
	req.ResourceID = 404

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ServiceNotOnResource(t *testing.T) {
	f := newFixture(30)
	f.catalog.services[testServiceID].ResourceIDs = []int64{999}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotAvailableOnResource)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture(30)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(30)

	req := validRequest()
	req.ServiceID = 0

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
