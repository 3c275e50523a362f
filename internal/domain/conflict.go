package domain

import (
	"fmt"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// interval полуинтервал [Start, End) в минутах от полуночи.
// Значения могут выходить за пределы суток после расширения буфером,
// для сравнения это не важно.
type interval struct {
	Start int
	End   int
}

// overlaps полуоткрытый тест пересечения: границы, совпадающие встык,
// пересечением не считаются
func (i interval) overlaps(other interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// bufferedInterval строит интервал занятости, расширенный буфером
// с обеих сторон: [start - buffer, start + duration + buffer)
func bufferedInterval(start types.TimeString, durationMinutes, bufferMinutes int) (interval, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return interval{}, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	if durationMinutes <= 0 {
		return interval{}, fmt.Errorf("%w: duration must be positive", ErrInvalidTimeRange)
	}
	return interval{
		Start: startMin - bufferMinutes,
		End:   startMin + durationMinutes + bufferMinutes,
	}, nil
}

// CandidateStaff возвращает мастеров, свободных для визита в start
// длительностью durationMinutes с учётом буфера.
//
// staff — доступные мастера; dayAppointments — все активные записи дня
// по всем мастерам (одним запросом, без N+1). Мастер является кандидатом,
// если ни одна его запись не пересекается с расширенным буфером интервалом
// запроса. Порядок staff сохраняется, поэтому при сортировке по id на входе
// первый кандидат даёт стабильный детерминированный выбор.
func CandidateStaff(
	staff []StaffResource,
	dayAppointments []*Appointment,
	start types.TimeString,
	durationMinutes int,
	bufferMinutes int,
) ([]StaffResource, error) {
	requested, err := bufferedInterval(start, durationMinutes, bufferMinutes)
	if err != nil {
		return nil, err
	}

	// Группируем занятость по мастерам, повреждённые нулевые длительности
	// заменяем на FallbackDurationMinutes
	busyByStaff := make(map[int64][]interval, len(staff))
	for _, appointment := range dayAppointments {
		if !appointment.IsActive() {
			continue
		}
		existing, err := bufferedInterval(
			appointment.StartTime,
			appointment.EffectiveDurationMinutes(),
			bufferMinutes,
		)
		if err != nil {
			return nil, err
		}
		busyByStaff[appointment.StaffID] = append(busyByStaff[appointment.StaffID], existing)
	}

	candidates := make([]StaffResource, 0, len(staff))
	for _, member := range staff {
		if !member.Available {
			continue
		}
		conflict := false
		for _, busy := range busyByStaff[member.ID] {
			if requested.overlaps(busy) {
				conflict = true
				break
			}
		}
		if !conflict {
			candidates = append(candidates, member)
		}
	}

	return candidates, nil
}

// CountOverlappingStart подсчитывает активные записи, чей расширенный
// буфером интервал накрывает запрошенное время начала. Используется,
// чтобы отличить "салон полностью занят" от "нет свободного мастера".
func CountOverlappingStart(dayAppointments []*Appointment, start types.TimeString, bufferMinutes int) (int, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	count := 0
	for _, appointment := range dayAppointments {
		if !appointment.IsActive() {
			continue
		}
		existing, err := bufferedInterval(
			appointment.StartTime,
			appointment.EffectiveDurationMinutes(),
			bufferMinutes,
		)
		if err != nil {
			return 0, err
		}
		if existing.Start <= startMin && startMin < existing.End {
			count++
		}
	}
	return count, nil
}
