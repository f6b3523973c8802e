package bookings

import (
	"context"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	BookingCancelled(ctx context.Context, recipient *domain.User, booking *domain.Booking)
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
