package create_appointment

import (
	"errors"
	"net/http"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
	"github.com/lkbeauty/salon-booking-service/internal/api/middleware"
	createAppointment "github.com/lkbeauty/salon-booking-service/internal/usecase/create_appointment"
	"github.com/lkbeauty/salon-booking-service/pkg/simpletxmanager"
	"github.com/lkbeauty/salon-booking-service/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingCustomerID  = "отсутствует ID клиента"
	msgUnknownService     = "одна или несколько услуг не найдены"
	msgInvalidDate        = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotUnavailable    = "на выбранное время нет свободного мастера"
	msgCapacityExceeded   = "салон полностью занят на выбранное время"
	msgUnavailable        = "сервис временно недоступен"
)

// Машиночитаемые коды 409 ответов
const (
	codeSlotUnavailable  = "slot_unavailable"
	codeCapacityExceeded = "capacity_exceeded"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetCustomerID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing customer ID")
		handlers.RespondForbidden(w, msgMissingCustomerID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: customer=%d, date=%s, time=%s",
				customerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, codeSlotUnavailable, msgSlotUnavailable)

		case errors.Is(err, createAppointment.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Capacity exceeded: customer=%d, date=%s, time=%s",
				customerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, codeCapacityExceeded, msgCapacityExceeded)

		case errors.Is(err, createAppointment.ErrUnknownService):
			h.logger.Warn("POST /appointments - Unknown service: customer=%d, services=%v",
				customerID, req.ServiceIDs)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: customer=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: customer=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: customer=%d, date=%s, time=%s",
				customerID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: customer=%d, time=%s", customerID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, txmanager.ErrTxBegin), errors.Is(err, simpletxmanager.ErrTxBegin):
			h.logger.Error("POST /appointments - Database unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, customer=%d, staff=%d",
		result.ID, customerID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
