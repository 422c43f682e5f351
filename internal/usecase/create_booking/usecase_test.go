package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// --- фейки зависимостей ---

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	nextID    int64
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
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

type fakeTxManager struct {
	err error // если задана, возвращается вместо выполнения fn
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
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
	testUserID     = int64(1)
)

// 2030-01-07 - понедельник, заведомо в будущем
var testDate = time.Date(2030, time.January, 7, 0, 0, 0, 0, time.UTC)

var testNow = time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	schedule *fakeScheduleRepo
	catalog  *fakeCatalogClient
	tx       *fakeTxManager
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{}
	schedule := &fakeScheduleRepo{
		// 09:00-18:00 без перерывов по всем дням
		week: fullWeek(domain.DaySchedule{
			IsOpen: true,
			Window: &domain.Interval{StartMinute: 9 * 60, EndMinute: 18 * 60},
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
				Price:           ptr.Ptr(1500.0),
				ResourceIDs:     []int64{testResourceID},
			},
		},
		campaigns: map[int64]*catalogservice.Campaign{},
	}
	tx := &fakeTxManager{}

	uc := NewUseCase(bookings, schedule, catalog, tx, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	return &fixture{uc: uc, bookings: bookings, schedule: schedule, catalog: catalog, tx: tx}
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
		UserID:     testUserID,
		ResourceID: testResourceID,
		ServiceID:  testServiceID,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// Денормализация данных услуги
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
}

func TestExecute_DefaultScheduleFallback(t *testing.T) {
	f := newFixture()
	// Расписание не настроено - действует дефолтное окно 08:00-18:00
	f.schedule.scheduleErr = scheduleRepo.ErrScheduleNotFound

	req := validRequest()
	req.StartTime = types.TimeString("08:00")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), resp.StartTime)
}

func TestExecute_CampaignReplacesDuration(t *testing.T) {
	f := newFixture()
	// Кампания с кастомной длительностью 45 минут полностью заменяет базовые 30
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
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, ptr.Ptr(int64(5)), resp.CampaignID)
}

func TestExecute_CampaignDurationCreatesConflict(t *testing.T) {
	f := newFixture()
	// Существующее бронирование 10:40-11:10: базовые 30 минут с 10:00 проходят,
	// но кампания растягивает слот до 45 минут и создает пересечение
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:         77,
		ResourceID: testResourceID,
		Date:       testDate,
		Interval:   domain.Interval{StartMinute: 640, EndMinute: 670},
		Status:     domain.StatusConfirmed,
	})
	f.catalog.campaigns[5] = &catalogservice.Campaign{
		ID:                    5,
		LinkedServiceID:       testServiceID,
		CustomDurationMinutes: ptr.Ptr(45),
		IsActive:              true,
	}

	// Базовая длительность - конфликта нет
	respBase, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 30, respBase.DurationMinutes)

	// Та же заявка с кампанией - конфликт с бронированием id=77
	f.bookings.bookings = f.bookings.bookings[:1] // убираем только что созданное
	req := validRequest()
	req.CampaignID = ptr.Ptr(int64(5))

	_, err = f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBooking, conflict.Source)
	assert.Equal(t, int64(77), conflict.ConflictingID)
	assert.Equal(t, domain.Interval{StartMinute: 640, EndMinute: 670}, conflict.Interval)
}

func TestExecute_BookingConflict(t *testing.T) {
	f := newFixture()
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:         42,
		ResourceID: testResourceID,
		Date:       testDate,
		Interval:   domain.Interval{StartMinute: 600, EndMinute: 630},
		Status:     domain.StatusConfirmed,
	})

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBooking, conflict.Source)
	assert.Equal(t, int64(42), conflict.ConflictingID)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	// Отмененное бронирование не занимает свой интервал
	f.bookings.bookings = append(f.bookings.bookings, &domain.Booking{
		ID:         42,
		ResourceID: testResourceID,
		Date:       testDate,
		Interval:   domain.Interval{StartMinute: 600, EndMinute: 630},
		Status:     domain.StatusCancelledByUser,
	})

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecute_BreakConflict(t *testing.T) {
	f := newFixture()
	// Перерыв 12:00-13:00
	f.schedule.week = fullWeek(domain.DaySchedule{
		IsOpen: true,
		Window: &domain.Interval{StartMinute: 9 * 60, EndMinute: 18 * 60},
		Breaks: []domain.Interval{{StartMinute: 720, EndMinute: 780}},
	})

	req := validRequest()
	req.StartTime = types.TimeString("11:45") // 30 минут залезают на перерыв

	_, err := f.uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBreak, conflict.Source)
	assert.Equal(t, domain.Interval{StartMinute: 720, EndMinute: 780}, conflict.Interval)
}

func TestExecute_FullDayBlockConflict(t *testing.T) {
	f := newFixture()
	f.schedule.blocks = []*domain.ResourceBlock{
		{
			ID:         9,
			ResourceID: testResourceID,
			StartDate:  testDate,
			EndDate:    testDate,
			Reason:     "Отпуск",
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBlock, conflict.Source)
	assert.Equal(t, int64(9), conflict.ConflictingID)
}

func TestExecute_PartialBlockConflict(t *testing.T) {
	f := newFixture()
	// Частичная блокировка 10:00-11:00
	f.schedule.blocks = []*domain.ResourceBlock{
		{
			ID:         9,
			ResourceID: testResourceID,
			StartDate:  testDate,
			EndDate:    testDate,
			Interval:   &domain.Interval{StartMinute: 600, EndMinute: 660},
			Reason:     "Обучение",
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictSourceBlock, conflict.Source)
}

func TestExecute_ResourceClosed(t *testing.T) {
	f := newFixture()
	f.schedule.week = fullWeek(domain.DaySchedule{IsOpen: false})

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_OutsideWorkingWindow(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = types.TimeString("07:00") // до открытия, пересечений нет

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrResourceClosed)
}

func TestExecute_SlotTakenMapsToStaleData(t *testing.T) {
	f := newFixture()
	// Exclusion constraint БД сработал: конкурентная вставка выиграла гонку
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStaleData)
}

func TestExecute_SerializationFailureMapsToStaleData(t *testing.T) {
	f := newFixture()
	f.tx.err = txmanager.ErrSerializationFailure

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrStaleData)
}

func TestExecute_SecondRequestForSameSlotLoses(t *testing.T) {
	f := newFixture()

	// Первый запрос фиксируется
	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на тот же слот видит конфликт
	_, err = f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Зафиксировано ровно одно бронирование
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_CampaignNotLinked(t *testing.T) {
	f := newFixture()
	f.catalog.campaigns[5] = &catalogservice.Campaign{
		ID:              5,
		LinkedServiceID: 999, // другая услуга
		IsActive:        true,
	}

	req := validRequest()
	req.CampaignID = ptr.Ptr(int64(5))

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCampaignNotLinked)
}

func TestExecute_CampaignNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.CampaignID = ptr.Ptr(int64(404))

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ResourceID = 404

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ServiceNotOnResource(t *testing.T) {
	f := newFixture()
	f.catalog.services[testServiceID].ResourceIDs = []int64{999}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotAvailableOnResource)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"нулевой userID", func(req *Request) { req.UserID = 0 }},
		{"отрицательный resourceID", func(req *Request) { req.ResourceID = -1 }},
		{"нулевая дата", func(req *Request) { req.Date = time.Time{} }},
		{"пустое время", func(req *Request) { req.StartTime = "" }},
		{"кривой формат времени", func(req *Request) { req.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
