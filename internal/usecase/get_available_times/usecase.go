package get_available_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	catalogRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/catalog"
)

// UseCase use case для получения доступного времени на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	configRepo      ConfigRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	configRepo ConfigRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		configRepo:      configRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступного времени.
// Слот считается доступным, если хотя бы один мастер свободен на всю
// длительность выбранных услуг с учётом буфера.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: services=%v, date=%s",
		req.ServiceIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе салона
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Резолвим услуги и считаем суммарную длительность
	services, err := uc.catalogRepo.ResolveServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnknownService) {
			uc.logger.Warn("GetAvailableTimes: unknown services in %v: %v", req.ServiceIDs, err)
			return nil, ErrUnknownService
		}
		uc.logger.Error("GetAvailableTimes: failed to resolve services: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
	}

	totalDuration := 0
	for _, service := range services {
		totalDuration += service.DurationMinutes
	}

	// 4. Конфигурация салона
	config, err := uc.configRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get salon config: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon config: %v", ErrInternal, err)
	}

	// 5. Генерируем сетку слотов: визит должен завершиться до закрытия
	grid, err := domain.GenerateSlots(*config, totalDuration)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Отбрасываем слоты вне окна записи (minAdvanceHours / maxAdvanceDays)
	grid, err = domain.FilterByAdvanceWindow(grid, req.Date, now, *config, uc.location)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to filter by advance window: %v", err)
		return nil, fmt.Errorf("%w: failed to filter by advance window: %v", ErrInternal, err)
	}

	scheduleConfig := ScheduleConfig{
		OpeningTime:         config.OpeningTime,
		ClosingTime:         config.ClosingTime,
		SlotIntervalMinutes: config.SlotIntervalMinutes,
	}

	if len(grid) == 0 {
		uc.logger.Info("GetAvailableTimes: no slots within booking window for %s",
			req.Date.Format(domain.DateFormat))
		return &Response{
			Date:                 req.Date,
			TotalDurationMinutes: totalDuration,
			Config:               scheduleConfig,
			Slots:                []Slot{},
		}, nil
	}

	// 7. Мастера и занятость дня, по одному запросу на каждое
	staff, err := uc.catalogRepo.ListStaff(ctx, true)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	dayAppointments, err := uc.appointmentRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to list day appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list day appointments: %v", ErrInternal, err)
	}

	// 8. Оставляем слоты, где свободен хотя бы один мастер
	slots := make([]Slot, 0, len(grid))
	for _, start := range grid {
		candidates, err := domain.CandidateStaff(staff, dayAppointments, start, totalDuration, config.BufferMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableTimes: failed to compute candidates: %v", err)
			return nil, fmt.Errorf("%w: failed to compute candidates: %v", ErrInternal, err)
		}
		if len(candidates) == 0 {
			continue
		}

		endTime, err := start.AddMinutes(totalDuration)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
		}

		slots = append(slots, Slot{
			StartTime:      start,
			EndTime:        endTime,
			AvailableStaff: len(candidates),
		})
	}

	uc.logger.Info("GetAvailableTimes: %d of %d slots available for %s",
		len(slots), len(grid), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:                 req.Date,
		TotalDurationMinutes: totalDuration,
		Config:               scheduleConfig,
		Slots:                slots,
	}, nil
}
