package billing

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrBillNotFound возвращается, когда счет не найден
	ErrBillNotFound = errors.New("bill not found")

	// ErrAccessDenied возвращается, когда счет принадлежит другому провайдеру
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
