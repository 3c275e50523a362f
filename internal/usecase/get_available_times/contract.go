package get_available_times

import (
	"context"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс каталога услуг и мастеров
type CatalogRepository interface {
	ResolveServices(ctx context.Context, ids []int64) ([]*domain.Service, error)
	ListStaff(ctx context.Context, onlyAvailable bool) ([]domain.StaffResource, error)
}

// ConfigRepository интерфейс репозитория конфигурации салона
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.SalonConfig, error)
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
