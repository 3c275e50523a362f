package get_available_times

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	catalogRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/catalog"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointmentRepo struct{ day []*domain.Appointment }

func (f *fakeAppointmentRepo) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	return f.day, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
	staff    []domain.StaffResource
	err      error
}

func (f *fakeCatalogRepo) ResolveServices(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		services = append(services, f.services[id])
	}
	return services, nil
}

func (f *fakeCatalogRepo) ListStaff(ctx context.Context, onlyAvailable bool) ([]domain.StaffResource, error) {
	return f.staff, nil
}

type fakeConfigRepo struct{ config domain.SalonConfig }

func (f *fakeConfigRepo) Get(ctx context.Context) (*domain.SalonConfig, error) {
	cfg := f.config
	return &cfg, nil
}

type fixture struct {
	uc          *UseCase
	appointment *fakeAppointmentRepo
	catalog     *fakeCatalogRepo
	config      *fakeConfigRepo
}

func newFixture() *fixture {
	f := &fixture{
		appointment: &fakeAppointmentRepo{},
		catalog: &fakeCatalogRepo{
			services: map[int64]*domain.Service{
				1: {ID: 1, Name: "Стрижка", DurationMinutes: 60, Price: 150, Active: true},
			},
			staff: []domain.StaffResource{
				{ID: 1, Name: "Анна", Available: true},
				{ID: 2, Name: "Мария", Available: true},
			},
		},
		config: &fakeConfigRepo{config: domain.DefaultSalonConfig()},
	}

	f.uc = NewUseCase(f.appointment, f.catalog, f.config, time.UTC, noopLogger{})
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)}
	return f
}

func slotStarts(slots []Slot) []string {
	starts := make([]string, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime.String())
	}
	return starts
}

func TestExecute_AllSlotsFreeWhenDayIsEmpty(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.TotalDurationMinutes)

	// Ответ несёт параметры сетки, по которым считались слоты
	assert.Equal(t, "09:00", resp.Config.OpeningTime.String())
	assert.Equal(t, "18:00", resp.Config.ClosingTime.String())
	assert.Equal(t, 15, resp.Config.SlotIntervalMinutes)

	// 09:00–18:00, шаг 15, визит 60 минут: последний старт 17:00
	require.Len(t, resp.Slots, 33)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[0].EndTime.String())
	assert.Equal(t, "17:00", resp.Slots[32].StartTime.String())
	for _, slot := range resp.Slots {
		assert.Equal(t, 2, slot.AvailableStaff)
	}
}

func TestExecute_BusyStaffReducesAvailability(t *testing.T) {
	f := newFixture()
	// Мастер 1 занят 10:00–11:00; с буфером 5 закрыто [09:55, 11:05)
	f.appointment.day = []*domain.Appointment{
		{StaffID: 1, StartTime: "10:00", Status: domain.StatusConfirmed, TotalDurationMinutes: 60},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	bySlot := make(map[string]int)
	for _, slot := range resp.Slots {
		bySlot[slot.StartTime.String()] = slot.AvailableStaff
	}

	// Визит 60 минут с буфером 5: [start-5, start+65) пересекает [09:55, 11:05)
	assert.Equal(t, 1, bySlot["09:00"])
	assert.Equal(t, 1, bySlot["11:00"])
	assert.Equal(t, 2, bySlot["11:15"])
}

func TestExecute_SlotDroppedWhenAllStaffBusy(t *testing.T) {
	f := newFixture()
	f.appointment.day = []*domain.Appointment{
		{StaffID: 1, StartTime: "10:00", Status: domain.StatusConfirmed, TotalDurationMinutes: 60},
		{StaffID: 2, StartTime: "10:00", Status: domain.StatusConfirmed, TotalDurationMinutes: 60},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.NotContains(t, starts, "10:00")
	// Часовой визит с буфером не успевает завершиться до занятого окна,
	// поэтому утренних слотов нет вовсе
	assert.NotContains(t, starts, "09:00")
	require.NotEmpty(t, starts)
	assert.Equal(t, "11:15", starts[0])
}

func TestExecute_MinAdvanceHidesNearSlots(t *testing.T) {
	f := newFixture()
	// Запрос на сегодня в 10:30: с minAdvanceHours=2 открыты слоты с 12:30
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 9, 16, 10, 30, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "12:30", resp.Slots[0].StartTime.String())
}

func TestExecute_EmptyOutsideBookingWindow(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
		Date:       time.Date(2027, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
	// Сетка возвращается и при пустом ответе
	assert.Equal(t, 15, resp.Config.SlotIntervalMinutes)
	assert.Equal(t, "09:00", resp.Config.OpeningTime.String())
}

func TestExecute_UnknownService(t *testing.T) {
	f := newFixture()
	f.catalog.err = fmt.Errorf("%w: ids [99]", catalogRepo.ErrUnknownService)

	_, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{99},
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		ServiceIDs: nil,
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{
		ServiceIDs: []int64{1},
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
