package expopush

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("expopush client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Expo
	ErrInvalidResponse = errors.New("expopush client: invalid response")
)
