package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/api/handlers"
	"github.com/lkbeauty/salon-booking-service/internal/domain"
	getAvailableTimes "github.com/lkbeauty/salon-booking-service/internal/usecase/get_available_times"
)

const (
	msgMissingDate       = "отсутствует параметр date"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingServiceIDs = "отсутствует параметр serviceIds"
	msgInvalidServiceIDs = "некорректный параметр serviceIds, ожидается список ID через запятую"
	msgUnknownService    = "одна или несколько услуг не найдены"
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&serviceIds=1,2
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceIDsStr := query.Get("serviceIds")
	if serviceIDsStr == "" {
		h.logger.Warn("GET /availability - Missing serviceIds parameter")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}
	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid serviceIds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{
		ServiceIDs: serviceIDs,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTimes.ErrUnknownService):
			h.logger.Warn("GET /availability - Unknown service: services=%v", serviceIDs)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, getAvailableTimes.ErrInvalidInput),
			errors.Is(err, getAvailableTimes.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Fetched %d slots: date=%s, services=%v",
		len(result.Slots), dateStr, serviceIDs)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseServiceIDs разбирает список ID через запятую
func parseServiceIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
