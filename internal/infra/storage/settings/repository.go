package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками платформы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceChargePercentage возвращает текущий процент комиссии платформы
// Если строка настроек отсутствует, создает ее со значением по умолчанию
func (r *Repository) GetServiceChargePercentage(ctx context.Context) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_charge_percentage").
		From("platform_settings").
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetServiceChargePercentage - build select query: %w", ErrBuildQuery, err)
	}

	var pct float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&pct)

	if err == sql.ErrNoRows {
		return r.createDefault(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetServiceChargePercentage - scan percentage: %w", ErrScanRow, err)
	}

	return pct, nil
}

// UpdateServiceChargePercentage устанавливает процент комиссии платформы
// Значение прижимается к диапазону [0, 100]
func (r *Repository) UpdateServiceChargePercentage(ctx context.Context, pct float64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	clamped := domain.ClampServiceCharge(pct)

	query, args, err := psqlbuilder.Insert("platform_settings").
		Columns("id", "service_charge_percentage").
		Values(1, clamped).
		Suffix("ON CONFLICT (id) DO UPDATE SET service_charge_percentage = EXCLUDED.service_charge_percentage").
		Suffix("RETURNING service_charge_percentage").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateServiceChargePercentage - build upsert query: %w", ErrBuildQuery, err)
	}

	var stored float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stored)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateServiceChargePercentage - execute upsert: %w", ErrExecQuery, err)
	}

	return stored, nil
}

func (r *Repository) createDefault(ctx context.Context) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("platform_settings").
		Columns("id", "service_charge_percentage").
		Values(1, domain.DefaultServiceChargePct).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: createDefault - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("%w: createDefault - execute insert: %w", ErrExecQuery, err)
	}

	return domain.DefaultServiceChargePct, nil
}
