package jobs

import (
	"context"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/internal/usecase/generate_bills"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	BookingReminder(ctx context.Context, customer *domain.User, booking *domain.Booking)
}

// BillsGenerator интерфейс usecase генерации счетов
type BillsGenerator interface {
	Execute(ctx context.Context, req *generate_bills.Request) (*generate_bills.Response, error)
}

// TimeProvider интерфейс источника текущего локального времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
