package create_appointment

import (
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	seen := make(map[int64]bool, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate serviceID %d", ErrInvalidInput, id)
		}
		seen[id] = true
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSchedule проверяет дату и время против рабочих часов,
// сетки слотов и окна записи
func validateSchedule(
	req *Request,
	config domain.SalonConfig,
	totalDurationMinutes int,
	now time.Time,
	loc *time.Location,
) error {
	// Дата не в прошлом
	if isDateInPast(req.Date, now) {
		return ErrInvalidDate
	}

	// Дата не дальше maxAdvanceDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, config.MaxAdvanceDays)
	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.MaxAdvanceDays)
	}

	// Время лежит на сетке слотов и визит помещается до закрытия
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	openingMin, err := config.OpeningTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid opening time: %v", ErrInternal, err)
	}
	closingMin, err := config.ClosingTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid closing time: %v", ErrInternal, err)
	}

	if startMin < openingMin {
		return fmt.Errorf("%w: before opening time %s", ErrInvalidTimeSlot, config.OpeningTime)
	}
	if (startMin-openingMin)%config.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: not aligned to %d minute grid", ErrInvalidTimeSlot, config.SlotIntervalMinutes)
	}
	if startMin+totalDurationMinutes > closingMin {
		return fmt.Errorf("%w: visit does not fit before closing time %s", ErrInvalidTimeSlot, config.ClosingTime)
	}

	// Запись возможна минимум за minAdvanceHours до начала
	startAt, err := req.StartTime.At(req.Date, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if startAt.Before(now.Add(time.Duration(config.MinAdvanceHours) * time.Hour)) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, config.MinAdvanceHours)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
