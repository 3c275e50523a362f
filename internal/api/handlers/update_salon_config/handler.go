package update_salon_config

import (
	"errors"
	"net/http"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
	"github.com/lkbeauty/salon-booking-service/internal/service/salonconfig"
	"github.com/lkbeauty/salon-booking-service/internal/service/salonconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация салона"
)

type Handler struct {
	service SalonConfigService
	logger  Logger
}

func NewHandler(service SalonConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salon-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salonconfig.ErrInvalidInput):
			h.logger.Warn("PUT /salon-config - Invalid config: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /salon-config - Failed to update config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salon-config - Config updated")
	handlers.RespondJSON(w, http.StatusOK, config)
}
