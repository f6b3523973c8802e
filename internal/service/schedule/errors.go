package schedule

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0-6
	ErrInvalidWeekday = errors.New("weekday must be between 0 and 6")

	// ErrInvalidTimeRange возвращается, когда начало дня не раньше его конца
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
