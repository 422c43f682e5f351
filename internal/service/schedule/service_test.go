package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type fakeScheduleRepo struct {
	week        *domain.WeekSchedule
	scheduleErr error
	blocks      []*domain.ResourceBlock
	nextBlockID int64
	deletedIDs  []int64
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ int64) (*domain.WeekSchedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.week, nil
}

func (f *fakeScheduleRepo) UpsertWeekSchedule(_ context.Context, week *domain.WeekSchedule) error {
	f.week = week
	return nil
}

func (f *fakeScheduleRepo) CreateBlock(_ context.Context, block *domain.ResourceBlock) (*domain.ResourceBlock, error) {
	f.nextBlockID++
	block.ID = f.nextBlockID
	block.CreatedAt = time.Now()
	f.blocks = append(f.blocks, block)
	return block, nil
}

func (f *fakeScheduleRepo) DeleteBlock(_ context.Context, _ int64, blockID int64) error {
	for i, b := range f.blocks {
		if b.ID == blockID {
			f.blocks = append(f.blocks[:i], f.blocks[i+1:]...)
			f.deletedIDs = append(f.deletedIDs, blockID)
			return nil
		}
	}
	return scheduleRepo.ErrBlockNotFound
}

func (f *fakeScheduleRepo) GetBlocksByResource(_ context.Context, _ int64) ([]*domain.ResourceBlock, error) {
	return f.blocks, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	testResourceID = int64(10)
	ownerUserID    = int64(100)
	strangerUserID = int64(200)
)

func newService() (*Service, *fakeScheduleRepo) {
	repo := &fakeScheduleRepo{}
	catalog := &fakeCatalogClient{resources: map[int64]*catalogservice.Resource{
		testResourceID: {ID: testResourceID, Name: "Мастер Анна", OwnerUserID: ownerUserID, IsActive: true},
	}}
	return NewService(repo, catalog, fakeTxManager{}, noopLogger{}), repo
}

func openDay(open, close string, breaks ...models.IntervalInput) models.DayScheduleInput {
	return models.DayScheduleInput{
		IsOpen:    true,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
		Breaks:    breaks,
	}
}

func validUpdateRequest() *models.UpdateScheduleRequest {
	day := openDay("09:00", "18:00")
	return &models.UpdateScheduleRequest{
		UserID:     ownerUserID,
		ResourceID: testResourceID,
		Monday:     day,
		Tuesday:    day,
		Wednesday:  day,
		Thursday:   day,
		Friday:     day,
		Saturday:   models.DayScheduleInput{IsOpen: false},
		Sunday:     models.DayScheduleInput{IsOpen: false},
	}
}

func TestGetSchedule_DefaultWhenNotConfigured(t *testing.T) {
	svc, repo := newService()
	repo.scheduleErr = scheduleRepo.ErrScheduleNotFound

	resp, err := svc.GetSchedule(context.Background(), testResourceID)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	require.NotNil(t, resp.Monday.OpenTime)
	assert.Equal(t, "08:00", *resp.Monday.OpenTime)
	assert.Equal(t, "18:00", *resp.Monday.CloseTime)
}

func TestUpdateSchedule_Success(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.UpdateSchedule(context.Background(), validUpdateRequest())

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.False(t, resp.Saturday.IsOpen)
	require.NotNil(t, repo.week)
	assert.Equal(t, 9*60, repo.week.Monday.Window.StartMinute)
}

func TestUpdateSchedule_BreakOutsideWindow(t *testing.T) {
	svc, _ := newService()

	req := validUpdateRequest()
	// Перерыв 08:00-09:30 вылезает за окно 09:00-18:00
	req.Monday = openDay("09:00", "18:00", models.IntervalInput{StartTime: "08:00", EndTime: "09:30"})

	_, err := svc.UpdateSchedule(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSchedule_OverlappingBreaks(t *testing.T) {
	svc, _ := newService()

	req := validUpdateRequest()
	req.Monday = openDay("09:00", "18:00",
		models.IntervalInput{StartTime: "12:00", EndTime: "13:00"},
		models.IntervalInput{StartTime: "12:30", EndTime: "14:00"},
	)

	_, err := svc.UpdateSchedule(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSchedule_OpenDayWithoutWindow(t *testing.T) {
	svc, _ := newService()

	req := validUpdateRequest()
	req.Monday = models.DayScheduleInput{IsOpen: true}

	_, err := svc.UpdateSchedule(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateSchedule_AccessDenied(t *testing.T) {
	svc, _ := newService()

	req := validUpdateRequest()
	req.UserID = strangerUserID

	_, err := svc.UpdateSchedule(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateBlock_FullDay(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateBlock(context.Background(), &models.CreateBlockRequest{
		UserID:     ownerUserID,
		ResourceID: testResourceID,
		StartDate:  time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, time.February, 7, 0, 0, 0, 0, time.UTC),
		Reason:     "Отпуск",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.Interval)
	assert.Equal(t, "2030-02-01", resp.StartDate)
	assert.Equal(t, "2030-02-07", resp.EndDate)
}

func TestCreateBlock_Partial(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateBlock(context.Background(), &models.CreateBlockRequest{
		UserID:     ownerUserID,
		ResourceID: testResourceID,
		StartDate:  time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC),
		Interval:   &models.IntervalInput{StartTime: "14:00", EndTime: "16:00"},
		Reason:     "Обучение",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Interval)
	assert.Equal(t, "14:00", resp.Interval.StartTime)
	assert.Equal(t, "16:00", resp.Interval.EndTime)
}

func TestCreateBlock_EndBeforeStart(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateBlock(context.Background(), &models.CreateBlockRequest{
		UserID:     ownerUserID,
		ResourceID: testResourceID,
		StartDate:  time.Date(2030, time.February, 7, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2030, time.February, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "Отпуск",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteBlock(t *testing.T) {
	svc, repo := newService()
	repo.blocks = []*domain.ResourceBlock{
		{ID: 5, ResourceID: testResourceID, StartDate: time.Now(), EndDate: time.Now()},
	}
	repo.nextBlockID = 5

	err := svc.DeleteBlock(context.Background(), testResourceID, 5, ownerUserID)

	require.NoError(t, err)
	assert.Empty(t, repo.blocks)

	err = svc.DeleteBlock(context.Background(), testResourceID, 5, ownerUserID)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestDeleteBlock_AccessDenied(t *testing.T) {
	svc, _ := newService()

	err := svc.DeleteBlock(context.Background(), testResourceID, 5, strangerUserID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}
