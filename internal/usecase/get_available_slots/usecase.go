package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	scheduleRepo       ScheduleRepository
	catalogClient      CatalogServiceClient
	granularityMinutes int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultGranularityMinutes
	}

	return &UseCase{
		bookingRepo:        bookingRepo,
		scheduleRepo:       scheduleRepo,
		catalogClient:      catalogClient,
		granularityMinutes: granularityMinutes,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Read path: консистентность не гарантируется - к моменту создания
// бронирования слот может быть уже занят, write path перепроверяет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, resource=%d, service=%d, date=%s",
		req.UserID, req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	if _, err := uc.catalogClient.GetResource(ctx, req.ResourceID); err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что услуга выполняется этим ресурсом
	if err := validateServiceOnResource(service, req.ResourceID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d not available on resource id=%d",
			req.ServiceID, req.ResourceID)
		return nil, err
	}

	// 6. Разрешаем эффективную длительность с учетом промо-кампании
	durationMinutes, err := uc.resolveDuration(ctx, req, service)
	if err != nil {
		return nil, err
	}

	// 7. Получаем недельное расписание ресурса
	// Если расписание не настроено, применяем дефолтное окно 08:00-18:00
	daySchedule, err := uc.resolveDaySchedule(ctx, req.ResourceID, req.Date)
	if err != nil {
		return nil, err
	}

	// 8. Получаем блокировки на эту дату
	blocks, err := uc.scheduleRepo.GetBlocksForDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 9. Сводим расписание, перерывы и блокировки в открытые интервалы дня
	openIntervals := domain.OpenIntervals(daySchedule, blocks, req.Date)
	if len(openIntervals) == 0 {
		// Закрытый день - пустой список, не ошибка
		uc.logger.Info("GetAvailableSlots: resource id=%d is closed on %s",
			req.ResourceID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, durationMinutes), nil
	}

	// 10. Получаем активные бронирования на эту дату
	filter := domain.ResourceBookingsFilter{
		ResourceID:      req.ResourceID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отмены и no-show освобождают свое время
	}

	bookings, err := uc.bookingRepo.GetByResourceWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 11. Генерируем кандидатов и отбрасываем пересечения с занятыми интервалами
	starts, err := domain.GenerateSlots(openIntervals, domain.ActiveIntervals(bookings), durationMinutes, uc.granularityMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: slot generation rejected input: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := buildSlots(starts, durationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%d, service=%d, date=%s",
		len(slots), req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date,
		ResourceID:         req.ResourceID,
		ServiceID:          req.ServiceID,
		DurationMinutes:    durationMinutes,
		GranularityMinutes: uc.granularityMinutes,
		Slots:              slots,
	}, nil
}

// resolveDuration разрешает эффективную длительность слота:
// кастомная длительность принятой кампании полностью заменяет базовую
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, service *catalogClient.Service) (int, error) {
	if req.CampaignID == nil {
		return domain.EffectiveDuration(service.DurationMinutes, nil), nil
	}

	campaign, err := uc.catalogClient.GetCampaign(ctx, *req.CampaignID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCampaignNotFound) {
			uc.logger.Warn("GetAvailableSlots: campaign id=%d not found", *req.CampaignID)
			return 0, ErrCampaignNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get campaign id=%d: %v", *req.CampaignID, err)
		return 0, fmt.Errorf("%w: failed to get campaign: %v", ErrInternal, err)
	}

	if err := validateCampaignForService(campaign, req.ServiceID); err != nil {
		uc.logger.Warn("GetAvailableSlots: campaign id=%d not linked to service id=%d",
			*req.CampaignID, req.ServiceID)
		return 0, err
	}

	return domain.EffectiveDuration(service.DurationMinutes, &domain.Campaign{
		ID:                    campaign.ID,
		LinkedServiceID:       campaign.LinkedServiceID,
		CustomDurationMinutes: campaign.CustomDurationMinutes,
	}), nil
}

// resolveDaySchedule возвращает расписание ресурса на день недели даты
// Отсутствие настроенного расписания - не ошибка: действует дефолтное окно
func (uc *UseCase) resolveDaySchedule(ctx context.Context, resourceID int64, date time.Time) (domain.DaySchedule, error) {
	week, err := uc.scheduleRepo.GetWeekSchedule(ctx, resourceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: no schedule for resource id=%d, using default window", resourceID)
			return domain.DefaultDaySchedule(), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for resource id=%d: %v", resourceID, err)
		return domain.DaySchedule{}, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	return week.ForWeekday(date), nil
}

// emptyResponse собирает ответ без слотов для закрытого дня
func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:               req.Date,
		ResourceID:         req.ResourceID,
		ServiceID:          req.ServiceID,
		DurationMinutes:    durationMinutes,
		GranularityMinutes: uc.granularityMinutes,
		Slots:              []Slot{},
	}
}
