package create_booking

import (
	"context"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BillRepository интерфейс репозитория счетов
type BillRepository interface {
	HasOverdueUnpaid(ctx context.Context, providerID int64, now time.Time) (bool, error)
}

// PromotionRepository интерфейс репозитория промо-акций
type PromotionRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.Promotion, error)
	IncrementUsed(ctx context.Context, id int64) error
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	BookingConfirmed(ctx context.Context, customer, providerUser *domain.User, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
