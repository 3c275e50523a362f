package create_appointment

import (
	"context"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
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

// OutboxRepository интерфейс transactional outbox
type OutboxRepository interface {
	Insert(ctx context.Context, topic, key string, payload []byte) error
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
