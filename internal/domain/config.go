package domain

import (
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

// SalonConfig is the single-row salon configuration.
// It is re-read at every operation boundary so that admin edits become
// visible without a restart; nothing caches it beyond request scope.
type SalonConfig struct {
	ID int64

	OpeningTime types.TimeString
	ClosingTime types.TimeString

	SlotIntervalMinutes int
	BufferMinutes       int

	// StaffCapacity is the number of concurrently bookable resources.
	// It is an informational ceiling: the actual limit is the staff pool.
	StaffCapacity int

	MinAdvanceHours int
	MaxAdvanceDays  int

	// AutoConfirm controls the status of freshly created appointments:
	// confirmed when true, pending (awaiting staff review) when false.
	AutoConfirm bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSalonConfig returns the documented defaults used when the
// configuration row does not exist yet
func DefaultSalonConfig() SalonConfig {
	return SalonConfig{
		OpeningTime:         DefaultOpeningTime,
		ClosingTime:         DefaultClosingTime,
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		StaffCapacity:       DefaultStaffCapacity,
		MinAdvanceHours:     DefaultMinAdvanceHours,
		MaxAdvanceDays:      DefaultMaxAdvanceDays,
		AutoConfirm:         true,
	}
}

// Validate проверяет инварианты конфигурации салона
func (c *SalonConfig) Validate() error {
	if err := c.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening time: %v", ErrInvalidConfig, err)
	}
	if err := c.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing time: %v", ErrInvalidConfig, err)
	}
	if !c.OpeningTime.IsBefore(c.ClosingTime) {
		return fmt.Errorf("%w: opening time must be before closing time", ErrInvalidConfig)
	}
	if c.SlotIntervalMinutes < MinSlotIntervalMinutes || c.SlotIntervalMinutes > MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slot interval must be between %d and %d minutes",
			ErrInvalidConfig, MinSlotIntervalMinutes, MaxSlotIntervalMinutes)
	}
	if c.BufferMinutes < 0 || c.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidConfig, MaxBufferMinutes)
	}
	if c.StaffCapacity < 1 {
		return fmt.Errorf("%w: staff capacity must be at least 1", ErrInvalidConfig)
	}
	if c.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: min advance hours must not be negative", ErrInvalidConfig)
	}
	if c.MaxAdvanceDays < 1 || c.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: max advance days must be between 1 and %d", ErrInvalidConfig, MaxAdvanceDaysLimit)
	}
	return nil
}
