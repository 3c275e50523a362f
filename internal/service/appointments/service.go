package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/internal/events"
	appointmentRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/appointment"
	"github.com/lkbeauty/salon-booking-service/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
type Service struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	eventTopic      string
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	eventTopic string,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		eventTopic:      eventTopic,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент может видеть только свою запись
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for customer=%d", id, customerID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appointment.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to appointment id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.ListByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%d",
		len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByDate получает дневной лист: все записи на дату по всем мастерам,
// включая отменённые
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetByDate: fetching appointments for date=%s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDate: successfully fetched %d appointments for date=%s",
		len(appointments), date.Format(domain.DateFormat))
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись клиента.
// Отмена возможна только владельцем, из отменяемого статуса и не позже
// отсечки до начала визита. Событие отмены пишется в outbox той же
// транзакцией, что и смена статуса.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by customer=%d", appointmentID, req.CustomerID)

	now := s.timeProvider.Now().In(s.location)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if appointment.CustomerID != req.CustomerID {
			s.logger.Warn("Cancel: access denied for customer=%d to appointment id=%d", req.CustomerID, appointmentID)
			return ErrAccessDenied
		}

		if appointment.IsCancelled() {
			s.logger.Warn("Cancel: appointment id=%d is already cancelled", appointmentID)
			return ErrAlreadyCancelled
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
			return ErrCannotCancel
		}

		// Отсечка: за cutoff минут до начала отмена закрыта
		startAt, err := appointment.StartAt(s.location)
		if err != nil {
			s.logger.Error("Cancel: failed to compute start time for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - failed to compute start time: %v", ErrInternal, err)
		}
		cutoff := startAt.Add(-time.Duration(domain.CancellationCutoffMinutes) * time.Minute)
		if !now.Before(cutoff) {
			s.logger.Warn("Cancel: too late to cancel appointment id=%d, starts at %s", appointmentID, startAt)
			return ErrTooLateToCancel
		}

		if err := s.appointmentRepo.Cancel(txCtx, appointmentID, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		appointment.Status = domain.StatusCancelled
		appointment.CancelledAt = &now

		payload, err := events.NewAppointmentEvent(events.TypeAppointmentCancelled, appointment, now).Marshal()
		if err != nil {
			s.logger.Error("Cancel: failed to marshal event for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - failed to marshal event: %v", ErrInternal, err)
		}
		if err := s.outboxRepo.Insert(txCtx, s.eventTopic, fmt.Sprintf("%d", appointmentID), payload); err != nil {
			s.logger.Error("Cancel: failed to insert outbox event for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: Cancel - failed to insert outbox event: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}
