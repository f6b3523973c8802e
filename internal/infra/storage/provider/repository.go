package provider

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

var providerColumns = []string{
	"id",
	"user_id",
	"bio",
	"account_number",
}

// Repository репозиторий для работы с провайдерами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// AccountNumberForEmail детерминированный номер счета по email
// Пример: ACC-1A2B3C4D
func AccountNumberForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := fmt.Sprintf("%x", sha1.Sum([]byte(normalized)))
	return "ACC-" + strings.ToUpper(digest[:8])
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID получает провайдера по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

// GetByAccountNumber получает провайдера по номеру счета
// Используется административными операциями (кредиты, промо-акции)
func (r *Repository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Provider, error) {
	return r.getOne(ctx, squirrel.Eq{"account_number": accountNumber})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %w", ErrBuildQuery, err)
	}

	var provider domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Bio,
		&provider.AccountNumber,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan provider: %w", ErrScanRow, err)
	}

	return &provider, nil
}

// ListAll получает всех провайдеров платформы
// Используется биллинговой агрегацией
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		var provider domain.Provider
		if err := rows.Scan(
			&provider.ID,
			&provider.UserID,
			&provider.Bio,
			&provider.AccountNumber,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %w", ErrScanRow, err)
		}
		providers = append(providers, &provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %w", ErrScanRow, err)
	}

	return providers, nil
}
