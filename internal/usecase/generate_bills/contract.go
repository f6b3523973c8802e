package generate_bills

import (
	"context"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	ListAll(ctx context.Context) ([]*domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumBillableForProvider(ctx context.Context, providerID int64, from, to time.Time) (float64, error)
}

// BillRepository интерфейс репозитория счетов
type BillRepository interface {
	GetByProviderAndMonth(ctx context.Context, providerID int64, month time.Time) (*domain.Bill, error)
	Create(ctx context.Context, bill *domain.Bill) (*domain.Bill, error)
	UpdateTotals(ctx context.Context, id int64, total, fee float64) error
}

// SettingsRepository интерфейс репозитория настроек платформы
type SettingsRepository interface {
	GetServiceChargePercentage(ctx context.Context) (float64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	NewBill(ctx context.Context, providerUser *domain.User, bill *domain.Bill)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
