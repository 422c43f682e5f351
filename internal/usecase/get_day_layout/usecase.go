package get_day_layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для раскладки бронирований дня по дорожкам
// Чисто презентационная операция: на доступность не влияет
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case раскладки дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayLayout: resource=%d, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayLayout: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	if _, err := uc.catalogClient.GetResource(ctx, req.ResourceID); err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("GetDayLayout: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetDayLayout: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Получаем активные бронирования дня
	filter := domain.ResourceBookingsFilter{
		ResourceID:      req.ResourceID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отмены и no-show на сетке не отображаются
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDayLayout: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Раскладываем по дорожкам
	layouts := domain.BuildDayLayout(bookings)

	byID := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
	}

	items := make([]Item, 0, len(layouts))
	laneCount := 0
	for _, layout := range layouts {
		booking := byID[layout.BookingID]

		startTime, err := types.NewTimeStringFromMinutes(booking.Interval.StartMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format start time: %v", ErrInternal, err)
		}
		endTime, err := types.NewTimeStringFromMinutes(booking.Interval.EndMinute)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to format end time: %v", ErrInternal, err)
		}

		items = append(items, Item{
			BookingID:        layout.BookingID,
			LaneIndex:        layout.LaneIndex,
			TopOffsetMinutes: layout.TopOffsetMinutes,
			HeightMinutes:    layout.HeightMinutes,
			StartTime:        startTime,
			EndTime:          endTime,
			ServiceName:      booking.ServiceName,
			Status:           string(booking.Status),
		})

		if layout.LaneIndex+1 > laneCount {
			laneCount = layout.LaneIndex + 1
		}
	}

	uc.logger.Info("GetDayLayout: %d bookings on %d lanes for resource=%d, date=%s",
		len(items), laneCount, req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		ResourceID: req.ResourceID,
		LaneCount:  laneCount,
		Items:      items,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
