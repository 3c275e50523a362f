package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/lkbeauty/salon-booking-service/pkg/psqlbuilder"
)

// Код unique_violation в Postgres
const pgUniqueViolation = "23505"

// Имена ограничений, по которым различаем причину unique_violation
const (
	constraintStaffSlot   = "uniq_active_appointment_per_staff_slot"
	constraintLineService = "uniq_appointment_line_service"
)

var appointmentColumns = []string{
	"id",
	"customer_id",
	"staff_id",
	"appointment_date",
	"start_time",
	"status",
	"total_duration_minutes",
	"total_price",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на визит
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе с её строками услуг как одно целое.
// Вызывается только внутри транзакции (executor берётся из контекста):
// вставка записи, строк услуг и outbox-события должны фиксироваться атомарно.
//
// Нарушение частичного уникального индекса (staff, date, start_time)
// возвращается как ErrStaffSlotTaken — это штатный исход гонки двух
// конкурирующих бронирований, вызывающий код пробует следующего мастера.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"staff_id",
			"appointment_date",
			"start_time",
			"status",
			"total_duration_minutes",
			"total_price",
			"notes",
		).
		Values(
			appointment.CustomerID,
			appointment.StaffID,
			appointment.Date,
			appointment.StartTime,
			appointment.Status,
			appointment.TotalDurationMinutes,
			appointment.TotalPrice,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	if err := r.insertLines(ctx, executor, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (r *Repository) insertLines(ctx context.Context, executor DBExecutor, appointment *domain.Appointment) error {
	if len(appointment.Lines) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("appointment_lines").
		Columns(
			"appointment_id",
			"service_id",
			"service_name",
			"duration_at_booking",
			"price_at_booking",
		)

	for _, line := range appointment.Lines {
		builder = builder.Values(
			appointment.ID,
			line.ServiceID,
			line.ServiceName,
			line.DurationAtBooking,
			line.PriceAtBooking,
		)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertLines - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: insertLines - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	idx := 0
	for rows.Next() {
		if idx >= len(appointment.Lines) {
			break
		}
		if err := rows.Scan(&appointment.Lines[idx].ID); err != nil {
			return fmt.Errorf("%w: insertLines - scan id: %w", ErrScanRow, err)
		}
		appointment.Lines[idx].AppointmentID = appointment.ID
		idx++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: insertLines - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// GetByID получает запись по ID вместе со строками услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, executor, []*domain.Appointment{appointment}); err != nil {
		return nil, err
	}

	return appointment, nil
}

// ListActiveByDate получает все неотменённые записи на дату по всем мастерам
// одним запросом. Resolver конфликтов раскладывает их по мастерам в памяти.
// Строки услуг не загружаются: для интервалов достаточно денормализованных
// итогов на самой записи.
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("staff_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// ListByDate получает все записи на дату (включая отменённые) со строками
// услуг. Используется для дневного листа персонала.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date}).
		OrderBy("start_time ASC", "staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// ListByCustomer получает историю записей клиента, новые сверху.
// Опциональный фильтр по статусу.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("appointment_date DESC", "start_time DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// Cancel переводит запись в статус cancelled.
// Физическое удаление не используется: история и связь строк услуг
// с отзывами должны сохраняться.
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.CancellableStatuses}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointment сканирует одну запись из QueryRow
func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.CustomerID,
		&appointment.StaffID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.Status,
		&appointment.TotalDurationMinutes,
		&appointment.TotalPrice,
		&appointment.Notes,
		&appointment.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointment - scan row: %w", ErrScanRow, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time
	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.CustomerID,
			&appointment.StaffID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.Status,
			&appointment.TotalDurationMinutes,
			&appointment.TotalPrice,
			&appointment.Notes,
			&appointment.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time
		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// attachLines загружает строки услуг для набора записей одним запросом
func (r *Repository) attachLines(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for _, appointment := range appointments {
		ids = append(ids, appointment.ID)
		byID[appointment.ID] = appointment
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"service_name",
		"duration_at_booking",
		"price_at_booking",
	).
		From("appointment_lines").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachLines - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.AppointmentLine
		err := rows.Scan(
			&line.ID,
			&line.AppointmentID,
			&line.ServiceID,
			&line.ServiceName,
			&line.DurationAtBooking,
			&line.PriceAtBooking,
		)
		if err != nil {
			return fmt.Errorf("%w: attachLines - scan row: %w", ErrScanRow, err)
		}
		if appointment, ok := byID[line.AppointmentID]; ok {
			appointment.Lines = append(appointment.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachLines - rows error: %w", ErrScanRow, err)
	}

	return nil
}

// mapUniqueViolation переводит unique_violation Postgres в доменные ошибки
// репозитория; для остальных ошибок возвращает nil
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgUniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case constraintStaffSlot:
		return ErrStaffSlotTaken
	case constraintLineService:
		return ErrDuplicateService
	default:
		return fmt.Errorf("%w: unique violation on %s", ErrExecQuery, pqErr.Constraint)
	}
}
