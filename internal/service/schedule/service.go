package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	catalogClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями и блокировками ресурсов
type Service struct {
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetSchedule получает недельное расписание ресурса
// Публичный метод - доступен всем
// Если расписание не настроено, возвращает дефолтное окно 08:00-18:00
// с признаком isDefault
func (s *Service) GetSchedule(ctx context.Context, resourceID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for resource=%d", resourceID)

	if _, err := s.getResource(ctx, resourceID, "GetSchedule"); err != nil {
		return nil, err
	}

	week, err := s.scheduleRepo.GetWeekSchedule(ctx, resourceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("GetSchedule: no schedule for resource=%d, returning default window", resourceID)
			return models.FromDomainWeekSchedule(defaultWeek(resourceID), true), nil
		}
		s.logger.Error("GetSchedule: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for resource=%d", resourceID)
	return models.FromDomainWeekSchedule(week, false), nil
}

// UpdateSchedule полностью заменяет недельное расписание ресурса
// Доступно только владельцу ресурса
// Инварианты: окно обязательно для открытого дня, перерывы лежат внутри окна
// и попарно не пересекаются
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for resource=%d by user=%d", req.ResourceID, req.UserID)

	// 1. Проверяем права доступа владельца ресурса
	if err := s.checkOwnerAccess(ctx, req.ResourceID, req.UserID, "UpdateSchedule"); err != nil {
		return nil, err
	}

	// 2. Конвертируем и валидируем расписание по дням
	week := &domain.WeekSchedule{ResourceID: req.ResourceID}
	for weekday, input := range req.Days() {
		day, err := input.ToDomain()
		if err != nil {
			s.logger.Warn("UpdateSchedule: invalid %s for resource=%d: %v", weekday, req.ResourceID, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, weekday, err)
		}

		if err := validateDaySchedule(day); err != nil {
			s.logger.Warn("UpdateSchedule: invalid %s for resource=%d: %v", weekday, req.ResourceID, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, weekday, err)
		}

		week.SetForWeekday(weekday, day)
	}

	// 3. Заменяем расписание атомарно
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.UpsertWeekSchedule(txCtx, week)
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for resource=%d", req.ResourceID)
	return models.FromDomainWeekSchedule(week, false), nil
}

// CreateBlock создает блокировку ресурса (полнодневную или частичную)
// Доступно только владельцу ресурса
// Блокировка не трогает существующие бронирования - их отменяют отдельно
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: creating block for resource=%d by user=%d", req.ResourceID, req.UserID)

	// 1. Проверяем права доступа владельца ресурса
	if err := s.checkOwnerAccess(ctx, req.ResourceID, req.UserID, "CreateBlock"); err != nil {
		return nil, err
	}

	// 2. Валидируем даты и причину
	if err := validateBlockRequest(req); err != nil {
		s.logger.Warn("CreateBlock: validation failed for resource=%d: %v", req.ResourceID, err)
		return nil, err
	}

	block := &domain.ResourceBlock{
		ResourceID: req.ResourceID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	}

	// 3. Частичная блокировка несет интервал внутри дня
	if req.Interval != nil {
		interval, err := req.Interval.ToDomain()
		if err != nil {
			s.logger.Warn("CreateBlock: invalid interval for resource=%d: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		block.Interval = &interval
	}

	created, err := s.scheduleRepo.CreateBlock(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlock: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: successfully created block id=%d for resource=%d", created.ID, req.ResourceID)
	return models.FromDomainBlock(created), nil
}

// DeleteBlock удаляет блокировку ресурса
// Доступно только владельцу ресурса
func (s *Service) DeleteBlock(ctx context.Context, resourceID, blockID, userID int64) error {
	s.logger.Info("DeleteBlock: deleting block id=%d for resource=%d by user=%d", blockID, resourceID, userID)

	// Проверяем права доступа владельца ресурса
	if err := s.checkOwnerAccess(ctx, resourceID, userID, "DeleteBlock"); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteBlock(ctx, resourceID, blockID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found for resource=%d", blockID, resourceID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: successfully deleted block id=%d for resource=%d", blockID, resourceID)
	return nil
}

// ListBlocks получает все блокировки ресурса
// Доступно только владельцу ресурса
func (s *Service) ListBlocks(ctx context.Context, resourceID, userID int64) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: fetching blocks for resource=%d by user=%d", resourceID, userID)

	// Проверяем права доступа владельца ресурса
	if err := s.checkOwnerAccess(ctx, resourceID, userID, "ListBlocks"); err != nil {
		return nil, err
	}

	blocks, err := s.scheduleRepo.GetBlocksByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("ListBlocks: repository error for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: ListBlocks - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlocks: successfully fetched %d blocks for resource=%d", len(blocks), resourceID)
	return models.FromDomainBlockList(blocks), nil
}

// Вспомогательные методы

// getResource получает ресурс из CatalogService
func (s *Service) getResource(ctx context.Context, resourceID int64, op string) (*catalogClient.Resource, error) {
	resource, err := s.catalogClient.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			s.logger.Warn("%s: resource id=%d not found", op, resourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("%s: failed to get resource id=%d: %v", op, resourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	return resource, nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем ресурса
func (s *Service) checkOwnerAccess(ctx context.Context, resourceID, userID int64, op string) error {
	resource, err := s.getResource(ctx, resourceID, op)
	if err != nil {
		return err
	}

	if resource.OwnerUserID != userID {
		s.logger.Warn("%s: user=%d is not the owner of resource=%d", op, userID, resourceID)
		return ErrAccessDenied
	}

	return nil
}

// validateDaySchedule проверяет инварианты расписания дня:
// перерывы лежат целиком внутри окна и попарно не пересекаются
func validateDaySchedule(day domain.DaySchedule) error {
	if !day.IsOpen {
		return nil
	}

	for _, brk := range day.Breaks {
		if !day.Window.Contains(brk) {
			return fmt.Errorf("break %s is outside the working window %s", brk, *day.Window)
		}
	}

	for i := 0; i < len(day.Breaks); i++ {
		for j := i + 1; j < len(day.Breaks); j++ {
			if day.Breaks[i].Overlaps(day.Breaks[j]) {
				return fmt.Errorf("breaks %s and %s overlap", day.Breaks[i], day.Breaks[j])
			}
		}
	}

	return nil
}

// validateBlockRequest валидирует запрос на создание блокировки
func validateBlockRequest(req *models.CreateBlockRequest) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if truncateToDay(req.EndDate).Before(truncateToDay(req.StartDate)) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason is too long (max %d characters)", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	return nil
}

// truncateToDay обнуляет время для сравнения дат
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// defaultWeek возвращает недельное расписание из дефолтных окон
func defaultWeek(resourceID int64) *domain.WeekSchedule {
	week := &domain.WeekSchedule{ResourceID: resourceID}
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		week.SetForWeekday(weekday, domain.DefaultDaySchedule())
	}
	return week
}
