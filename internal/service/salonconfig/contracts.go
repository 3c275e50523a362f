package salonconfig

import (
	"context"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации салона
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.SalonConfig, error)
	Update(ctx context.Context, config *domain.SalonConfig) (*domain.SalonConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
