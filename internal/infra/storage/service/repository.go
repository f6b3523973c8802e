package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"provider_id",
	"name",
	"description",
	"price",
	"duration_minutes",
}

// Repository репозиторий для работы с услугами провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("provider_id", "name", "description", "price", "duration_minutes").
		Values(svc.ProviderID, svc.Name, svc.Description, svc.Price, svc.DurationMinutes).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return svc, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.ProviderID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.DurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return &svc, nil
}

// GetByProviderID получает все услуги провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.ProviderID,
			&svc.Name,
			&svc.Description,
			&svc.Price,
			&svc.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByProviderID - scan row: %w", ErrScanRow, err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// Delete удаляет услугу провайдера
// Исторические бронирования не затрагиваются: имя и цена услуги
// денормализованы в bookings на момент создания
func (r *Repository) Delete(ctx context.Context, id, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}
