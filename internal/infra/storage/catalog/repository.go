package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lkbeauty/salon-booking-service/internal/domain"
	"github.com/lkbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/lkbeauty/salon-booking-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

var staffColumns = []string{
	"id",
	"name",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога: услуги и мастера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ResolveServices загружает активные услуги по списку ID одним запросом.
// Если хотя бы одна услуга не найдена или неактивна, возвращает
// ErrUnknownService с перечислением отсутствующих ID.
// Порядок результата совпадает с порядком запрошенных ID.
func (r *Repository) ResolveServices(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveServices - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Service, len(ids))
	for rows.Next() {
		var service domain.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.Active,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ResolveServices - scan row: %w", ErrScanRow, err)
		}
		byID[service.ID] = &service
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ResolveServices - rows error: %w", ErrScanRow, err)
	}

	services := make([]*domain.Service, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		service, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		services = append(services, service)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: ids %v", ErrUnknownService, missing)
	}

	return services, nil
}

// ListStaff получает мастеров в порядке возрастания ID.
// Порядок важен: при равных кандидатах бронирование детерминированно
// выбирает мастера с меньшим ID.
func (r *Repository) ListStaff(ctx context.Context, onlyAvailable bool) ([]domain.StaffResource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(staffColumns...).
		From("staff").
		OrderBy("id ASC")
	if onlyAvailable {
		builder = builder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]domain.StaffResource, 0)
	for rows.Next() {
		var member domain.StaffResource
		err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Available,
			&member.CreatedAt,
			&member.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan row: %w", ErrScanRow, err)
		}
		staff = append(staff, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows error: %w", ErrScanRow, err)
	}

	return staff, nil
}
