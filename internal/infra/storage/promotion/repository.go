package promotion

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

// Repository репозиторий для работы с промо-акциями провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промо-акций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает промо-акцию провайдера
// Внутри транзакции создания бронирования строка блокируется (FOR UPDATE),
// чтобы счетчик использованных инкрементировался без потерь
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"provider_id",
		"free_bookings_total",
		"free_bookings_used",
	).
		From("promotions").
		Where(squirrel.Eq{"provider_id": providerID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %w", ErrBuildQuery, err)
	}

	var promo domain.Promotion
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.ProviderID,
		&promo.FreeBookingsTotal,
		&promo.FreeBookingsUsed,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan promotion: %w", ErrScanRow, err)
	}

	return &promo, nil
}

// Upsert создает или обновляет промо-акцию провайдера
// При уменьшении лимита счетчик использованных прижимается к новому лимиту
func (r *Repository) Upsert(ctx context.Context, providerID int64, freeTotal int) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promotions").
		Columns("provider_id", "free_bookings_total", "free_bookings_used").
		Values(providerID, freeTotal, 0).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET free_bookings_total = EXCLUDED.free_bookings_total, free_bookings_used = LEAST(promotions.free_bookings_used, EXCLUDED.free_bookings_total)").
		Suffix("RETURNING id, provider_id, free_bookings_total, free_bookings_used").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %w", ErrBuildQuery, err)
	}

	var promo domain.Promotion
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.ProviderID,
		&promo.FreeBookingsTotal,
		&promo.FreeBookingsUsed,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	return &promo, nil
}

// IncrementUsed увеличивает счетчик использованных бесплатных бронирований
// Условие used < total гарантирует, что счетчик не превысит лимит
func (r *Repository) IncrementUsed(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotions").
		Set("free_bookings_used", squirrel.Expr("free_bookings_used + 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("free_bookings_used < free_bookings_total")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsed - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsed - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromotionNotFound
	}

	return nil
}
