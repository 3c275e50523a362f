package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/internal/events"
	appointmentRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/catalog"
)

// UseCase use case для создания записи с автоподбором мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	configRepo      ConfigRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	eventTopic      string
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	configRepo ConfigRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	eventTopic string,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		configRepo:      configRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		eventTopic:      eventTopic,
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Подбор мастера и вставка выполняются в сериализуемой транзакции.
// Если конкурирующая запись успела занять выбранного мастера (нарушение
// уникального индекса), транзакция повторяется со следующим кандидатом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, services=%v, date=%s, time=%s",
		req.CustomerID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе салона
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Резолвим услуги одним запросом: название, длительность и цена
	// фиксируются на момент записи
	services, err := uc.catalogRepo.ResolveServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrUnknownService) {
			uc.logger.Warn("CreateAppointment: unknown services in %v: %v", req.ServiceIDs, err)
			return nil, ErrUnknownService
		}
		uc.logger.Error("CreateAppointment: failed to resolve services: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
	}

	totalDuration := 0
	totalPrice := 0.0
	for _, service := range services {
		totalDuration += service.DurationMinutes
		totalPrice += service.Price
	}

	// 4. Пробуем кандидатов, пока один из них не достанется нам.
	// Проигрыш гонки за мастера исключает его из следующей попытки,
	// множество исключённых растёт, поэтому цикл конечен.
	excluded := make(map[int64]bool)

	for {
		var result *domain.Appointment
		var chosenStaffID int64

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 4.1. Конфигурация салона
			config, err := uc.configRepo.Get(txCtx)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get salon config: %v", err)
				return fmt.Errorf("%w: failed to get salon config: %w", ErrInternal, err)
			}

			// 4.2. Валидация даты и времени против сетки и окна записи
			if err := validateSchedule(req, *config, totalDuration, now, uc.location); err != nil {
				uc.logger.Warn("CreateAppointment: schedule validation failed: %v", err)
				return err
			}

			// 4.3. Доступные мастера, по возрастанию ID
			staff, err := uc.catalogRepo.ListStaff(txCtx, true)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to list staff: %v", err)
				return fmt.Errorf("%w: failed to list staff: %w", ErrInternal, err)
			}

			// 4.4. Все активные записи дня одним запросом
			dayAppointments, err := uc.appointmentRepo.ListActiveByDate(txCtx, req.Date)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to list day appointments: %v", err)
				return fmt.Errorf("%w: failed to list day appointments: %w", ErrInternal, err)
			}

			// 4.5. Кандидаты без конфликтов с учётом буфера
			candidates, err := domain.CandidateStaff(staff, dayAppointments, req.StartTime, totalDuration, config.BufferMinutes)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to compute candidates: %v", err)
				return fmt.Errorf("%w: failed to compute candidates: %v", ErrInternal, err)
			}

			remaining := candidates[:0:0]
			for _, candidate := range candidates {
				if !excluded[candidate.ID] {
					remaining = append(remaining, candidate)
				}
			}

			// 4.6. Кандидатов нет: различаем переполненный салон и занятый слот
			if len(remaining) == 0 {
				overlapping, err := domain.CountOverlappingStart(dayAppointments, req.StartTime, config.BufferMinutes)
				if err != nil {
					uc.logger.Error("CreateAppointment: failed to count overlapping: %v", err)
					return fmt.Errorf("%w: failed to count overlapping: %v", ErrInternal, err)
				}
				if overlapping >= config.StaffCapacity {
					uc.logger.Warn("CreateAppointment: capacity exceeded, %d/%d seats taken",
						overlapping, config.StaffCapacity)
					return ErrCapacityExceeded
				}
				uc.logger.Warn("CreateAppointment: no free staff for %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotUnavailable
			}

			// 4.7. Детерминированный выбор: первый кандидат (минимальный ID)
			chosen := remaining[0]
			chosenStaffID = chosen.ID

			status := domain.StatusPending
			if config.AutoConfirm {
				status = domain.StatusConfirmed
			}

			appointment := &domain.Appointment{
				CustomerID: req.CustomerID,
				StaffID:    chosen.ID,
				Date:       req.Date,
				StartTime:  req.StartTime,
				Status:     status,
				Notes:      req.Notes,
			}
			for _, service := range services {
				appointment.Lines = append(appointment.Lines, domain.AppointmentLine{
					ServiceID:         service.ID,
					ServiceName:       service.Name,
					DurationAtBooking: service.DurationMinutes,
					PriceAtBooking:    service.Price,
				})
			}
			appointment.RecomputeTotals()

			// 4.8. Сохраняем запись; уникальный индекс по (staff, date, time)
			// страхует от двойного бронирования мастера
			created, err := uc.appointmentRepo.Create(txCtx, appointment)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrStaffSlotTaken) {
					return err
				}
				uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}

			// 4.9. Событие в outbox той же транзакцией
			payload, err := events.NewAppointmentEvent(events.TypeAppointmentCreated, created, now).Marshal()
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to marshal event: %v", err)
				return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
			}
			if err := uc.outboxRepo.Insert(txCtx, uc.eventTopic, fmt.Sprintf("%d", created.ID), payload); err != nil {
				uc.logger.Error("CreateAppointment: failed to insert outbox event: %v", err)
				return fmt.Errorf("%w: failed to insert outbox event: %w", ErrInternal, err)
			}

			result = created
			return nil
		})

		if errors.Is(err, appointmentRepo.ErrStaffSlotTaken) {
			uc.logger.Warn("CreateAppointment: staff id=%d lost the race for %s %s, trying next candidate",
				chosenStaffID, req.Date.Format(domain.DateFormat), req.StartTime)
			excluded[chosenStaffID] = true
			continue
		}
		if err != nil {
			return nil, err
		}

		uc.logger.Info("CreateAppointment: created appointment id=%d, staff=%d, status=%s",
			result.ID, result.StaffID, result.Status)

		return buildResponse(result)
	}
}

// buildResponse конвертирует доменную запись в ответ usecase
func buildResponse(appointment *domain.Appointment) (*Response, error) {
	endTime, err := appointment.StartTime.AddMinutes(appointment.TotalDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	services := make([]ServiceLine, 0, len(appointment.Lines))
	for _, line := range appointment.Lines {
		services = append(services, ServiceLine{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationAtBooking,
			Price:           line.PriceAtBooking,
		})
	}

	return &Response{
		ID:                   appointment.ID,
		CustomerID:           appointment.CustomerID,
		StaffID:              appointment.StaffID,
		Date:                 appointment.Date,
		StartTime:            appointment.StartTime,
		EndTime:              endTime,
		Status:               string(appointment.Status),
		Services:             services,
		TotalDurationMinutes: appointment.TotalDurationMinutes,
		TotalPrice:           appointment.TotalPrice,
		Notes:                appointment.Notes,
		CreatedAt:            appointment.CreatedAt,
		UpdatedAt:            appointment.UpdatedAt,
	}, nil
}
