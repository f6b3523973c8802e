package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

// Repository репозиторий для чтения пользователей
// Регистрация и аутентификация живут на шлюзе; сервису нужны только
// контактные данные и флаги ролей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"email",
		"full_name",
		"phone",
		"whatsapp",
		"expo_push_token",
		"is_provider",
		"is_admin",
		"created_at",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var user domain.User
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Phone,
		&user.Whatsapp,
		&user.ExpoPushToken,
		&user.IsProvider,
		&user.IsAdmin,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time

	return &user, nil
}
