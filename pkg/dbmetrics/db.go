package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/pkg/metrics"
)

const defaultPoolStatsInterval = 15 * time.Second

// DB обертка над *sql.DB, собирающая метрики запросов и пула соединений
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
	name      string
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор метрик пула
// с интервалом по умолчанию до закрытия stopCh
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, collector: collector, name: name}
	go wrapped.collectPoolStats(defaultPoolStatsInterval, stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.SetPoolStats(d.name, stats.OpenConnections, stats.Idle, stats.InUse)
		}
	}
}

func (d *DB) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.collector.ObserveDBQuery(operation, status, time.Since(start))
}

// QueryContext выполняет запрос с фиксацией метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки с фиксацией метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

// ExecContext выполняет запрос без результата с фиксацией метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return result, err
}

// BeginTx начинает транзакцию; возвращаемый TxExecutor тоже собирает метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin_tx", start, err)
	if err != nil {
		return nil, err
	}
	return &metricTx{tx: tx, parent: d}, nil
}

// metricTx транзакция с метриками
type metricTx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *metricTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe("tx_query", start, err)
	return rows, err
}

func (t *metricTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe("tx_query_row", start, nil)
	return row
}

func (t *metricTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe("tx_exec", start, err)
	return result, err
}

func (t *metricTx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.parent.observe("tx_commit", start, err)
	return err
}

func (t *metricTx) Rollback() error {
	start := time.Now()
	err := t.tx.Rollback()
	t.parent.observe("tx_rollback", start, err)
	return err
}
