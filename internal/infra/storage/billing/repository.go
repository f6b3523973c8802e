package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/psqlbuilder"
)

var billColumns = []string{
	"id",
	"provider_id",
	"month",
	"total",
	"fee",
	"is_paid",
	"due_date",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со счетами и кредитами
// Жизненный цикл счетов принадлежит биллинговой агрегации:
// никакой другой код не изменяет total/fee
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория биллинга
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderAndMonth получает счет провайдера за месяц
func (r *Repository) GetByProviderAndMonth(ctx context.Context, providerID int64, month time.Time) (*domain.Bill, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(billColumns...).
		From("bills").
		Where(squirrel.Eq{"provider_id": providerID, "month": month}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndMonth - build select query: %w", ErrBuildQuery, err)
	}

	bill, err := r.scanBill(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndMonth - scan bill: %w", ErrScanRow, err)
	}

	return bill, nil
}

// Create создает новый счет
func (r *Repository) Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bills").
		Columns("provider_id", "month", "total", "fee", "is_paid", "due_date").
		Values(bill.ProviderID, bill.Month, bill.Total, bill.Fee, bill.IsPaid, bill.DueDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bill.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	bill.CreatedAt = createdAt.Time
	bill.UpdatedAt = updatedAt.Time

	return bill, nil
}

// UpdateTotals обновляет суммы неоплаченного счета
// Оплаченные счета обязаны оставаться неизменными: условие is_paid = false
// защищает от перезаписи даже при гонке с оплатой
func (r *Repository) UpdateTotals(ctx context.Context, id int64, total, fee float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bills").
		Set("total", total).
		Set("fee", fee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_paid": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateTotals - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// MarkPaid помечает счет оплаченным
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bills").
		Set("is_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBillNotFound
	}

	return nil
}

// ListByProvider получает счета провайдера, новые месяцы первыми
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.Bill, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(billColumns...).
		From("bills").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("month DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bills := make([]*domain.Bill, 0)
	for rows.Next() {
		bill, err := r.scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %w", ErrScanRow, err)
		}
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %w", ErrScanRow, err)
	}

	return bills, nil
}

// SumUnpaidFees суммирует комиссии по неоплаченным счетам провайдера
func (r *Repository) SumUnpaidFees(ctx context.Context, providerID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(fee), 0)").
		From("bills").
		Where(squirrel.Eq{"provider_id": providerID, "is_paid": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumUnpaidFees - build select query: %w", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumUnpaidFees - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

// HasOverdueUnpaid проверяет наличие неоплаченного счета с истекшим сроком
// Используется блокировкой провайдера при создании бронирования
func (r *Repository) HasOverdueUnpaid(ctx context.Context, providerID int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bills").
		Where(squirrel.Eq{"provider_id": providerID, "is_paid": false}).
		Where(squirrel.Lt{"due_date": now}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOverdueUnpaid - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasOverdueUnpaid - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// CreateCredit добавляет запись в журнал кредитов провайдера
func (r *Repository) CreateCredit(ctx context.Context, credit *domain.BillCredit) (*domain.BillCredit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bill_credits").
		Columns("provider_id", "amount").
		Values(credit.ProviderID, credit.Amount).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCredit - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&credit.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCredit - execute insert: %w", ErrExecQuery, err)
	}

	credit.CreatedAt = createdAt.Time

	return credit, nil
}

// SumCredits суммирует кредиты провайдера
func (r *Repository) SumCredits(ctx context.Context, providerID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("bill_credits").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumCredits - build select query: %w", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumCredits - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBill(row rowScanner) (*domain.Bill, error) {
	var bill domain.Bill
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&bill.ID,
		&bill.ProviderID,
		&bill.Month,
		&bill.Total,
		&bill.Fee,
		&bill.IsPaid,
		&bill.DueDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bill.CreatedAt = createdAt.Time
	bill.UpdatedAt = updatedAt.Time

	return &bill, nil
}
