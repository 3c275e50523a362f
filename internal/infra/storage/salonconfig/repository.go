package salonconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/lkbeauty/salon-booking-service/pkg/psqlbuilder"
)

// Конфигурация салона хранится единственной строкой
const configRowID = 1

var configColumns = []string{
	"id",
	"opening_time",
	"closing_time",
	"slot_interval_minutes",
	"buffer_minutes",
	"staff_capacity",
	"min_advance_hours",
	"max_advance_days",
	"auto_confirm",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию салона. Если строка ещё не создана,
// вставляет значения по умолчанию и возвращает их.
func (r *Repository) Get(ctx context.Context) (*domain.SalonConfig, error) {
	config, err := r.get(ctx)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}

	if err := r.insertDefaults(ctx); err != nil {
		return nil, err
	}
	return r.get(ctx)
}

func (r *Repository) get(ctx context.Context) (*domain.SalonConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("salon_config").
		Where(squirrel.Eq{"id": configRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.SalonConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.OpeningTime,
		&config.ClosingTime,
		&config.SlotIntervalMinutes,
		&config.BufferMinutes,
		&config.StaffCapacity,
		&config.MinAdvanceHours,
		&config.MaxAdvanceDays,
		&config.AutoConfirm,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan row: %w", ErrScanRow, err)
	}

	return &config, nil
}

// insertDefaults создает строку конфигурации со значениями по умолчанию.
// ON CONFLICT DO NOTHING защищает от гонки двух первых запросов.
func (r *Repository) insertDefaults(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	defaults := domain.DefaultSalonConfig()

	query, args, err := psqlbuilder.Insert("salon_config").
		Columns(
			"id",
			"opening_time",
			"closing_time",
			"slot_interval_minutes",
			"buffer_minutes",
			"staff_capacity",
			"min_advance_hours",
			"max_advance_days",
			"auto_confirm",
		).
		Values(
			configRowID,
			defaults.OpeningTime,
			defaults.ClosingTime,
			defaults.SlotIntervalMinutes,
			defaults.BufferMinutes,
			defaults.StaffCapacity,
			defaults.MinAdvanceHours,
			defaults.MaxAdvanceDays,
			defaults.AutoConfirm,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertDefaults - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertDefaults - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Update сохраняет новую конфигурацию салона
func (r *Repository) Update(ctx context.Context, config *domain.SalonConfig) (*domain.SalonConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salon_config").
		Set("opening_time", config.OpeningTime).
		Set("closing_time", config.ClosingTime).
		Set("slot_interval_minutes", config.SlotIntervalMinutes).
		Set("buffer_minutes", config.BufferMinutes).
		Set("staff_capacity", config.StaffCapacity).
		Set("min_advance_hours", config.MinAdvanceHours).
		Set("max_advance_days", config.MaxAdvanceDays).
		Set("auto_confirm", config.AutoConfirm).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": configRowID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated := *config
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&updated.ID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return &updated, nil
}
