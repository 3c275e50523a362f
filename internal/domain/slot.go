package domain

import (
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// GenerateSlots генерирует упорядоченную сетку кандидатов времени начала
// для визита длительностью totalDurationMinutes.
// Сетка начинается с времени открытия и идёт с шагом SlotIntervalMinutes;
// слот попадает в сетку, только если визит целиком помещается до закрытия
// (start + duration <= closing). Чистая функция своих аргументов.
func GenerateSlots(cfg SalonConfig, totalDurationMinutes int) ([]types.TimeString, error) {
	if totalDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: total duration must be positive", ErrInvalidTimeRange)
	}

	opening, err := cfg.OpeningTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: opening time: %v", ErrInvalidTimeRange, err)
	}
	closing, err := cfg.ClosingTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: closing time: %v", ErrInvalidTimeRange, err)
	}
	if opening >= closing {
		return nil, fmt.Errorf("%w: opening %s is not before closing %s",
			ErrInvalidTimeRange, cfg.OpeningTime, cfg.ClosingTime)
	}
	if cfg.SlotIntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot interval must be positive", ErrInvalidTimeRange)
	}

	slots := make([]types.TimeString, 0)
	for start := opening; start+totalDurationMinutes <= closing; start += cfg.SlotIntervalMinutes {
		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// WithinAdvanceWindow проверяет, что момент начала визита попадает в окно
// предварительной записи: не раньше now + MinAdvanceHours и не позже
// now + MaxAdvanceDays. Обе границы считаются по настенным часам в зоне салона.
func WithinAdvanceWindow(date time.Time, start types.TimeString, now time.Time, cfg SalonConfig, loc *time.Location) (bool, error) {
	startAt, err := start.At(date, loc)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	earliest := now.Add(time.Duration(cfg.MinAdvanceHours) * time.Hour)
	latest := now.Add(time.Duration(cfg.MaxAdvanceDays) * 24 * time.Hour)

	if startAt.Before(earliest) {
		return false, nil
	}
	if startAt.After(latest) {
		return false, nil
	}
	return true, nil
}

// FilterByAdvanceWindow отбрасывает слоты вне окна предварительной записи.
// Политика окна применяется вызывающим кодом, а не генератором сетки.
func FilterByAdvanceWindow(slots []types.TimeString, date time.Time, now time.Time, cfg SalonConfig, loc *time.Location) ([]types.TimeString, error) {
	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		ok, err := WithinAdvanceWindow(date, slot, now, cfg, loc)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}
