package billing

import "errors"

var (
	// ErrBillNotFound возвращается, когда счет не найден
	ErrBillNotFound = errors.New("billing.repository: bill not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("billing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("billing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("billing.repository: failed to scan row")
)
