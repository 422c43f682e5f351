package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория расписаний и блокировок
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context, resourceID int64) (*domain.WeekSchedule, error)
	UpsertWeekSchedule(ctx context.Context, week *domain.WeekSchedule) error
	CreateBlock(ctx context.Context, block *domain.ResourceBlock) (*domain.ResourceBlock, error)
	DeleteBlock(ctx context.Context, resourceID, blockID int64) error
	GetBlocksByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceBlock, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetResource(ctx context.Context, resourceID int64) (*catalogservice.Resource, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
