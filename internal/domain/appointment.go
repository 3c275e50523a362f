package domain

import (
	"time"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked salon visit.
// Totals are always derived from the line items, never entered directly.
type Appointment struct {
	ID         int64
	CustomerID int64
	StaffID    int64

	Date      time.Time
	StartTime types.TimeString
	Status    AppointmentStatus

	// Denormalized snapshots of the booked services
	Lines []AppointmentLine

	TotalDurationMinutes int
	TotalPrice           float64

	Notes *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppointmentLine is a frozen copy of one service as booked.
// Later catalog edits never change committed appointments.
type AppointmentLine struct {
	ID            int64
	AppointmentID int64
	ServiceID     int64

	ServiceName       string
	DurationAtBooking int
	PriceAtBooking    float64
}

// IsActive returns true if the appointment blocks its staff's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment is in a cancellable state
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// RecomputeTotals derives total duration and price from the line items
func (a *Appointment) RecomputeTotals() {
	var duration int
	var price float64
	for _, line := range a.Lines {
		duration += line.DurationAtBooking
		price += line.PriceAtBooking
	}
	a.TotalDurationMinutes = duration
	a.TotalPrice = price
}

// EffectiveDurationMinutes returns the appointment's duration for conflict
// computation. Legacy rows may carry a zero total; those fall back to
// FallbackDurationMinutes instead of degenerating to a zero-width interval.
func (a *Appointment) EffectiveDurationMinutes() int {
	if a.TotalDurationMinutes <= 0 {
		return FallbackDurationMinutes
	}
	return a.TotalDurationMinutes
}

// StartAt binds the appointment's date and start time in the given zone
func (a *Appointment) StartAt(loc *time.Location) (time.Time, error) {
	return a.StartTime.At(a.Date, loc)
}

// ValidStatus reports whether s is a known appointment status
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
