package get_salon_config

import (
	"net/http"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
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

// Handle GET /api/v1/salon-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /salon-config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, config)
}
