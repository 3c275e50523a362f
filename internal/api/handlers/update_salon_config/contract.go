package update_salon_config

import (
	"context"

	"github.com/lkbeauty/salon-booking-service/internal/service/salonconfig/models"
)

type SalonConfigService interface {
	Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
