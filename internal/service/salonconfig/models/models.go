package models

import (
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// UpdateConfigRequest запрос на изменение конфигурации салона
type UpdateConfigRequest struct {
	OpeningTime         string `json:"openingTime"`         // "09:00"
	ClosingTime         string `json:"closingTime"`         // "18:00"
	SlotIntervalMinutes int    `json:"slotIntervalMinutes"` // Шаг сетки слотов
	BufferMinutes       int    `json:"bufferMinutes"`       // Буфер между визитами
	StaffCapacity       int    `json:"staffCapacity"`       // Рабочие места салона
	MinAdvanceHours     int    `json:"minAdvanceHours"`     // Минимум часов до визита
	MaxAdvanceDays      int    `json:"maxAdvanceDays"`      // Горизонт записи в днях
	AutoConfirm         bool   `json:"autoConfirm"`         // Подтверждать запись сразу
}

// ToDomain конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomain() *domain.SalonConfig {
	return &domain.SalonConfig{
		OpeningTime:         types.TimeString(r.OpeningTime),
		ClosingTime:         types.TimeString(r.ClosingTime),
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		BufferMinutes:       r.BufferMinutes,
		StaffCapacity:       r.StaffCapacity,
		MinAdvanceHours:     r.MinAdvanceHours,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		AutoConfirm:         r.AutoConfirm,
	}
}

// ConfigResponse ответ с конфигурацией салона
type ConfigResponse struct {
	OpeningTime         string    `json:"openingTime"`
	ClosingTime         string    `json:"closingTime"`
	SlotIntervalMinutes int       `json:"slotIntervalMinutes"`
	BufferMinutes       int       `json:"bufferMinutes"`
	StaffCapacity       int       `json:"staffCapacity"`
	MinAdvanceHours     int       `json:"minAdvanceHours"`
	MaxAdvanceDays      int       `json:"maxAdvanceDays"`
	AutoConfirm         bool      `json:"autoConfirm"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SalonConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		OpeningTime:         c.OpeningTime.String(),
		ClosingTime:         c.ClosingTime.String(),
		SlotIntervalMinutes: c.SlotIntervalMinutes,
		BufferMinutes:       c.BufferMinutes,
		StaffCapacity:       c.StaffCapacity,
		MinAdvanceHours:     c.MinAdvanceHours,
		MaxAdvanceDays:      c.MaxAdvanceDays,
		AutoConfirm:         c.AutoConfirm,
		UpdatedAt:           c.UpdatedAt,
	}
}
