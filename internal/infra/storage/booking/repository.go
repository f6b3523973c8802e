package booking

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

var bookingColumns = []string{
	"id",
	"customer_id",
	"provider_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"service_price",
	"fee_exempt",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание с проверкой занятости слота обязано выполняться в сериализуемой
// транзакции, иначе два конкурентных запроса могут занять один слот
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"provider_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"service_price",
			"fee_exempt",
		).
		Values(
			booking.CustomerID,
			booking.ProviderID,
			booking.ServiceID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.FeeExempt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, новые первыми
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией
// Календарь провайдера общий для всех его услуг, поэтому выборка идет
// по provider_id без привязки к конкретной услуге.
//
// Примеры использования:
//
// 1. Активные бронирования на день (для расчета доступности):
//    filter := domain.ProviderBookingsFilter{ProviderID: 1, StartTimeFrom: &dayStart, StartTimeBefore: &dayEnd}
//
// 2. Будущие бронирования для проверки конфликта при создании (с блокировкой):
//    filter := domain.ProviderBookingsFilter{ProviderID: 1, EndTimeAfter: &now, ForUpdate: true}
//
// 3. Расписание провайдера от текущего момента:
//    filter := domain.ProviderBookingsFilter{ProviderID: 1, StartTimeFrom: &now}
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.StartTimeFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartTimeFrom})
	}
	if filter.StartTimeBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.StartTimeBefore})
	}
	if filter.EndTimeAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.EndTimeAfter})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	// FOR UPDATE имеет смысл только внутри активной транзакции:
	// проверка конфликта и вставка должны видеть одни и те же строки
	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetConfirmedStartingBetween получает подтвержденные бронирования всех
// провайдеров, начинающиеся в интервале [from, to]
// Используется джобой напоминаний
func (r *Repository) GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.LtOrEq{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedStartingBetween - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedStartingBetween - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SumBillableForProvider суммирует выручку провайдера для биллинга:
// подтвержденные бронирования без промо-освобождения, завершившиеся
// в интервале [from, to)
func (r *Repository) SumBillableForProvider(ctx context.Context, providerID int64, from, to time.Time) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(service_price), 0)").
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"fee_exempt": false}).
		Where(squirrel.GtOrEq{"end_time": from}).
		Where(squirrel.Lt{"end_time": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumBillableForProvider - build select query: %w", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumBillableForProvider - scan total: %w", ErrScanRow, err)
	}

	return total, nil
}

// Cancel помечает бронирование отмененным
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.FeeExempt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
