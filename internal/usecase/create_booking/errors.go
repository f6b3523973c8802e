package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrPastTime возвращается при попытке забронировать время в прошлом
	ErrPastTime = errors.New("create_booking: cannot book a time in the past")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrProviderLocked возвращается, когда у провайдера просрочен неоплаченный счет
	ErrProviderLocked = errors.New("create_booking: provider account is locked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
