package notifications

import "context"

// ExpoPushClient интерфейс клиента Expo Push
type ExpoPushClient interface {
	Send(ctx context.Context, token, title, body string) error
}

// WhatsAppClient интерфейс клиента WhatsApp-сообщений
type WhatsAppClient interface {
	SendWhatsApp(ctx context.Context, toNumber, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
