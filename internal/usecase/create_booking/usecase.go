package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются атомарно в сериализуемой
// транзакции: между ними не может вклиниться конкурентная запись. Из двух
// конкурентных запросов на пересекающиеся интервалы фиксируется ровно один,
// второй получает ErrStaleData
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, resource=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	if _, err := uc.catalogClient.GetResource(ctx, req.ResourceID); err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что услуга выполняется этим ресурсом
	if err := validateServiceOnResource(service, req.ResourceID); err != nil {
		uc.logger.Warn("CreateBooking: service id=%d not available on resource id=%d",
			req.ServiceID, req.ResourceID)
		return nil, err
	}

	// 6. Разрешаем эффективную длительность с учетом промо-кампании
	durationMinutes, err := uc.resolveDuration(ctx, req, service)
	if err != nil {
		return nil, err
	}

	// 7. Строим запрошенный интервал
	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid start time %s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	proposed, err := domain.NewInterval(startMinute, startMinute+durationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid interval [%d, %d): %v",
			startMinute, startMinute+durationMinutes, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Проверка доступности и вставка - атомарно, в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Расписание на день недели даты (с дефолтным окном при отсутствии)
		day, err := uc.resolveDaySchedule(txCtx, req.ResourceID, req.Date)
		if err != nil {
			return err
		}

		if !day.IsOpen || day.Window == nil {
			uc.logger.Warn("CreateBooking: resource id=%d is closed on %s",
				req.ResourceID, req.Date.Format(domain.DateFormat))
			return ErrResourceClosed
		}

		// 8.2. Блокировки на эту дату
		blocks, err := uc.scheduleRepo.GetBlocksForDate(txCtx, req.ResourceID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
		}

		// 8.3. Запрошенный интервал должен целиком лежать в открытом интервале
		openIntervals := domain.OpenIntervals(day, blocks, req.Date)
		if !containedInAny(proposed, openIntervals) {
			conflictErr := findScheduleConflict(proposed, day, blocks, req.Date)
			uc.logger.Warn("CreateBooking: schedule conflict for %s: %v", proposed, conflictErr)
			return conflictErr
		}

		// 8.4. Активные бронирования дня с блокировкой строк (FOR UPDATE)
		filter := domain.ResourceBookingsFilter{
			ResourceID:      req.ResourceID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByResourceWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.5. Проверяем пересечения с существующими бронированиями
		if err := findBookingConflict(proposed, bookings); err != nil {
			uc.logger.Warn("CreateBooking: booking conflict for %s: %v", proposed, err)
			return err
		}

		// 8.6. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			UserID:     req.UserID,
			ResourceID: req.ResourceID,
			ServiceID:  req.ServiceID,
			CampaignID: req.CampaignID,
			Date:       req.Date,
			Interval:   proposed,
			Status:     domain.StatusConfirmed,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint БД - конкурентная вставка выиграла гонку
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s taken by concurrent booking", proposed)
				return ErrStaleData
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпаны ретраи сериализуемой транзакции - состояние устарело
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
			return nil, ErrStaleData
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return buildResponse(result)
}

// resolveDuration разрешает эффективную длительность бронирования:
// кастомная длительность принятой кампании полностью заменяет базовую
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, service *catalogClient.Service) (int, error) {
	if req.CampaignID == nil {
		return domain.EffectiveDuration(service.DurationMinutes, nil), nil
	}

	campaign, err := uc.catalogClient.GetCampaign(ctx, *req.CampaignID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCampaignNotFound) {
			uc.logger.Warn("CreateBooking: campaign id=%d not found", *req.CampaignID)
			return 0, ErrCampaignNotFound
		}
		uc.logger.Error("CreateBooking: failed to get campaign id=%d: %v", *req.CampaignID, err)
		return 0, fmt.Errorf("%w: failed to get campaign: %v", ErrInternal, err)
	}

	if err := validateCampaignForService(campaign, req.ServiceID); err != nil {
		uc.logger.Warn("CreateBooking: campaign id=%d not linked to service id=%d",
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
			uc.logger.Info("CreateBooking: no schedule for resource id=%d, using default window", resourceID)
			return domain.DefaultDaySchedule(), nil
		}
		uc.logger.Error("CreateBooking: failed to get schedule for resource id=%d: %v", resourceID, err)
		return domain.DaySchedule{}, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	return week.ForWeekday(date), nil
}

// buildResponse конвертирует доменную модель в ответ usecase
func buildResponse(booking *domain.Booking) (*Response, error) {
	startTime, err := types.NewTimeStringFromMinutes(booking.Interval.StartMinute)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to format start time: %v", ErrInternal, err)
	}

	endTime, err := types.NewTimeStringFromMinutes(booking.Interval.EndMinute)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to format end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              booking.ID,
		UserID:          booking.UserID,
		ResourceID:      booking.ResourceID,
		ServiceID:       booking.ServiceID,
		CampaignID:      booking.CampaignID,
		BookingDate:     booking.Date,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: booking.DurationMinutes(),
		Status:          string(booking.Status),
		ServiceName:     booking.ServiceName,
		ServicePrice:    booking.ServicePrice,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}, nil
}
