package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
)

// Коды ошибок PostgreSQL, при которых сериализуемую транзакцию имеет смысл повторить
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

const maxSerializableRetries = 3

// ErrTxFailed возвращается, когда транзакция не завершилась успешно
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TransactionManager менеджер транзакций поверх обертки dbmetrics.DB
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE-транзакции
// Конфликты сериализации и дедлоки повторяются ограниченное число раз
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTxFailed, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback after %w: %v", ErrTxFailed, err, rbErr)
		}
		return err
	}

	// Ошибка драйвера сохраняется в цепочке: isRetryable должен видеть *pq.Error
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}
	return nil
}

// isRetryable проверяет, что ошибка вызвана конфликтом сериализации
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure || string(pqErr.Code) == pgDeadlockDetected
	}
	return false
}
