package get_availability

import (
	"github.com/lkbeauty/salon-booking-service/internal/domain"
	getAvailableTimes "github.com/lkbeauty/salon-booking-service/internal/usecase/get_available_times"
)

// SlotResponse доступный слот
type SlotResponse struct {
	StartTime      string `json:"startTime"` // "10:00"
	EndTime        string `json:"endTime"`   // "11:30"
	AvailableStaff int    `json:"availableStaff"`
}

// ConfigResponse сетка расписания, по которой считались слоты
type ConfigResponse struct {
	OpeningTime         string `json:"openingTime"` // "09:00"
	ClosingTime         string `json:"closingTime"` // "18:00"
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                 string         `json:"date"` // "2026-09-15"
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	Config               ConfigResponse `json:"config"`
	Slots                []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableStaff: slot.AvailableStaff,
		})
	}

	return &AvailabilityResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		Config: ConfigResponse{
			OpeningTime:         resp.Config.OpeningTime.String(),
			ClosingTime:         resp.Config.ClosingTime.String(),
			SlotIntervalMinutes: resp.Config.SlotIntervalMinutes,
		},
		Slots: slots,
	}
}
