package events

import (
	"encoding/json"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// Типы событий жизненного цикла записи
const (
	TypeAppointmentCreated   = "appointment.created"
	TypeAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent событие изменения записи, публикуемое в Kafka
type AppointmentEvent struct {
	Type          string            `json:"type"`
	AppointmentID int64             `json:"appointment_id"`
	CustomerID    int64             `json:"customer_id"`
	StaffID       int64             `json:"staff_id"`
	Date          string            `json:"date"`
	StartTime     types.TimeString  `json:"start_time"`
	Status        string            `json:"status"`
	ServiceIDs    []int64           `json:"service_ids"`
	TotalPrice    float64           `json:"total_price"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// NewAppointmentEvent собирает событие из записи
func NewAppointmentEvent(eventType string, appointment *domain.Appointment, occurredAt time.Time) AppointmentEvent {
	serviceIDs := make([]int64, 0, len(appointment.Lines))
	for _, line := range appointment.Lines {
		serviceIDs = append(serviceIDs, line.ServiceID)
	}

	return AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		CustomerID:    appointment.CustomerID,
		StaffID:       appointment.StaffID,
		Date:          appointment.Date.Format(domain.DateFormat),
		StartTime:     appointment.StartTime,
		Status:        string(appointment.Status),
		ServiceIDs:    serviceIDs,
		TotalPrice:    appointment.TotalPrice,
		OccurredAt:    occurredAt,
	}
}

// Marshal сериализует событие в payload для outbox
func (e AppointmentEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
