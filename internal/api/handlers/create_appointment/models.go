package create_appointment

import (
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	createAppointment "github.com/lkbeauty/salon-booking-service/internal/usecase/create_appointment"
	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
	Date       string  `json:"date"`      // "2026-09-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// ServiceLineResponse строка услуги в ответе
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                   int64                 `json:"id"`
	CustomerID           int64                 `json:"customerId"`
	StaffID              int64                 `json:"staffId"`
	Date                 string                `json:"date"`
	StartTime            string                `json:"startTime"`
	EndTime              string                `json:"endTime"`
	Status               string                `json:"status"`
	Services             []ServiceLineResponse `json:"services"`
	TotalDurationMinutes int                   `json:"totalDurationMinutes"`
	TotalPrice           float64               `json:"totalPrice"`
	Notes                *string               `json:"notes,omitempty"`
	CreatedAt            string                `json:"createdAt"`
	UpdatedAt            string                `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID: customerID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(resp.Services))
	for _, line := range resp.Services {
		services = append(services, ServiceLineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationMinutes,
			Price:           line.Price,
		})
	}

	return &AppointmentResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		StaffID:              resp.StaffID,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		Status:               resp.Status,
		Services:             services,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Notes:                resp.Notes,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
