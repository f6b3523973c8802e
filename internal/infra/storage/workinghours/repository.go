package workinghours

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/ptr"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/types"
)

var workingHoursColumns = []string{
	"id",
	"provider_id",
	"weekday",
	"is_closed",
	"start_time",
	"end_time",
}

// Repository репозиторий для работы с рабочими часами провайдеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает правила рабочих часов провайдера,
// упорядоченные по дню недели
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("provider_working_hours").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WorkingHoursRule, 0, domain.WeekdayCount)
	for rows.Next() {
		var rule domain.WorkingHoursRule
		var start, end *string

		if err := rows.Scan(
			&rule.ID,
			&rule.ProviderID,
			&rule.Weekday,
			&rule.IsClosed,
			&start,
			&end,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByProviderID - scan row: %w", ErrScanRow, err)
		}

		if start != nil {
			rule.StartTime = ptr.Ptr(types.TimeString(*start))
		}
		if end != nil {
			rule.EndTime = ptr.Ptr(types.TimeString(*end))
		}

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// CreateDefaults создает 7 дефолтных правил (все дни закрыты)
// ON CONFLICT DO NOTHING делает операцию идемпотентной при гонке
// двух первых запросов доступности одного провайдера
func (r *Repository) CreateDefaults(ctx context.Context, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("provider_working_hours").
		Columns("provider_id", "weekday", "is_closed", "start_time", "end_time")

	for weekday := 0; weekday < domain.WeekdayCount; weekday++ {
		insertBuilder = insertBuilder.Values(
			providerID,
			weekday,
			true,
			domain.DefaultWorkingHoursStart,
			domain.DefaultWorkingHoursEnd,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (provider_id, weekday) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateDefaults - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateDefaults - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ReplaceAll заменяет правила провайдера целиком (upsert по дню недели)
// Индивидуальное удаление правил не поддерживается
func (r *Repository) ReplaceAll(ctx context.Context, providerID int64, rules []*domain.WorkingHoursRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, rule := range rules {
		var start, end *string
		if rule.StartTime != nil {
			start = ptr.Ptr(rule.StartTime.String())
		}
		if rule.EndTime != nil {
			end = ptr.Ptr(rule.EndTime.String())
		}

		query, args, err := psqlbuilder.Insert("provider_working_hours").
			Columns("provider_id", "weekday", "is_closed", "start_time", "end_time").
			Values(providerID, rule.Weekday, rule.IsClosed, start, end).
			Suffix("ON CONFLICT (provider_id, weekday) DO UPDATE SET is_closed = EXCLUDED.is_closed, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - build upsert query: %w", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceAll - execute upsert: %w", ErrExecQuery, err)
		}
	}

	return nil
}
