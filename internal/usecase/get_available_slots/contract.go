package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByResourceWithFilter получает бронирования ресурса с фильтрацией по периоду и статусу
	GetByResourceWithFilter(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний и блокировок
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context, resourceID int64) (*domain.WeekSchedule, error)
	GetBlocksForDate(ctx context.Context, resourceID int64, date time.Time) ([]*domain.ResourceBlock, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetResource(ctx context.Context, resourceID int64) (*catalogservice.Resource, error)
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetCampaign(ctx context.Context, campaignID int64) (*catalogservice.Campaign, error)
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
