package domain

import "github.com/lkbeauty/salon-booking-service/pkg/types"

// Default salon configuration values, applied when the config row is
// lazily created
const (
	DefaultSlotIntervalMinutes = 15
	DefaultBufferMinutes       = 5
	DefaultStaffCapacity       = 3
	DefaultMinAdvanceHours     = 2
	DefaultMaxAdvanceDays      = 90
)

// Default business hours
const (
	DefaultOpeningTime types.TimeString = "09:00"
	DefaultClosingTime types.TimeString = "18:00"
)

// Business validation limits
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 60
	MaxBufferMinutes       = 60
	MaxAdvanceDaysLimit    = 365
	MaxNotesLength         = 500
)

// FallbackDurationMinutes подставляется вместо нулевой длительности
// у legacy-записей при вычислении конфликтов
const FallbackDurationMinutes = 60

// CancellationCutoffMinutes минимальное время до начала визита,
// после которого отмена уже невозможна
const CancellationCutoffMinutes = 60

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых запись занимает время мастера.
// Этот же список ограничивает частичный уникальный индекс (staff, date, time).
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// CancellableStatuses список статусов, из которых возможна отмена
var CancellableStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
