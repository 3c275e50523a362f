package get_customer_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
	"github.com/lkbeauty/salon-booking-service/internal/api/middleware"
	"github.com/lkbeauty/salon-booking-service/internal/service/appointments"
	"github.com/lkbeauty/salon-booking-service/internal/service/appointments/models"
	"github.com/lkbeauty/salon-booking-service/pkg/ptr"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgMissingCustomerID = "отсутствует ID клиента"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/appointments?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/appointments - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Клиент видит только свою историю
	authCustomerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/appointments - Missing customer ID")
		handlers.RespondForbidden(w, msgMissingCustomerID)
		return
	}
	if authCustomerID != customerID {
		h.logger.Warn("GET /customers/{id}/appointments - Access denied: customer_id=%d, auth_id=%d",
			customerID, authCustomerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetCustomerAppointmentsRequest{CustomerID: customerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetCustomerAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/appointments - Invalid status: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/appointments - Failed to get appointments: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/appointments - Fetched %d appointments: customer_id=%d",
		len(result.Appointments), customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
