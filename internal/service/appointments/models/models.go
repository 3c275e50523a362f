package models

import (
	"errors"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetCustomerAppointmentsRequest запрос истории записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CustomerID int64 `json:"customerId"`
}

// Response модели

// ServiceLineResponse строка услуги в составе записи
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                   int64                 `json:"id"`
	CustomerID           int64                 `json:"customerId"`
	StaffID              int64                 `json:"staffId"`
	Date                 string                `json:"date"`      // "2026-09-15"
	StartTime            string                `json:"startTime"` // "10:00"
	Status               string                `json:"status"`
	Services             []ServiceLineResponse `json:"services"`
	TotalDurationMinutes int                   `json:"totalDurationMinutes"`
	TotalPrice           float64               `json:"totalPrice"`
	Notes                *string               `json:"notes,omitempty"`
	CancelledAt          *string               `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                   a.ID,
		CustomerID:           a.CustomerID,
		StaffID:              a.StaffID,
		Date:                 a.Date.Format(domain.DateFormat),
		StartTime:            a.StartTime.String(),
		Status:               string(a.Status),
		Services:             make([]ServiceLineResponse, 0, len(a.Lines)),
		TotalDurationMinutes: a.TotalDurationMinutes,
		TotalPrice:           a.TotalPrice,
		Notes:                a.Notes,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	for _, line := range a.Lines {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationAtBooking,
			Price:           line.PriceAtBooking,
		})
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
