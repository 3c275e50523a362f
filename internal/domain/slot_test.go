package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkbeauty/salon-booking-service/pkg/types"
)

func testConfig() SalonConfig {
	return SalonConfig{
		OpeningTime:         "09:00",
		ClosingTime:         "18:00",
		SlotIntervalMinutes: 15,
		BufferMinutes:       5,
		StaffCapacity:       3,
		MinAdvanceHours:     2,
		MaxAdvanceDays:      90,
	}
}

func TestGenerateSlots_VisitMustFitBeforeClosing(t *testing.T) {
	cfg := testConfig()

	slots, err := GenerateSlots(cfg, 90)
	require.NoError(t, err)

	// 09:00..16:30 с шагом 15 минут: визит на 90 минут должен
	// завершиться не позже 18:00
	require.Len(t, slots, 31)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:30"), slots[len(slots)-1])
}

func TestGenerateSlots_ShortVisit(t *testing.T) {
	cfg := testConfig()

	slots, err := GenerateSlots(cfg, 15)
	require.NoError(t, err)

	// Последний слот 17:45: визит на 15 минут заканчивается ровно в 18:00
	assert.Equal(t, types.TimeString("17:45"), slots[len(slots)-1])
}

func TestGenerateSlots_VisitLongerThanDay(t *testing.T) {
	cfg := testConfig()

	slots, err := GenerateSlots(cfg, 600)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_CustomInterval(t *testing.T) {
	cfg := testConfig()
	cfg.SlotIntervalMinutes = 30
	cfg.OpeningTime = "10:00"
	cfg.ClosingTime = "12:00"

	slots, err := GenerateSlots(cfg, 30)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestFilterByAdvanceWindow_MinAdvance(t *testing.T) {
	cfg := testConfig()
	loc := time.UTC
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	// 10:30 того же дня: с minAdvanceHours=2 доступны слоты с 12:30
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, loc)

	slots := []types.TimeString{"10:00", "12:00", "12:30", "15:00"}
	filtered, err := FilterByAdvanceWindow(slots, date, now, cfg, loc)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"12:30", "15:00"}, filtered)
}

func TestFilterByAdvanceWindow_MaxAdvance(t *testing.T) {
	cfg := testConfig()
	cfg.MaxAdvanceDays = 7
	loc := time.UTC
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, loc)

	filtered, err := FilterByAdvanceWindow([]types.TimeString{"10:00", "11:00"}, date, now, cfg, loc)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestFilterByAdvanceWindow_FutureDate(t *testing.T) {
	cfg := testConfig()
	loc := time.UTC
	now := time.Date(2026, 9, 1, 17, 0, 0, 0, loc)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, loc)

	// На завтра ограничение minAdvanceHours не мешает утренним слотам
	slots := []types.TimeString{"09:00", "12:00"}
	filtered, err := FilterByAdvanceWindow(slots, date, now, cfg, loc)
	require.NoError(t, err)
	assert.Equal(t, slots, filtered)
}
