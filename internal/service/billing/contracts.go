package billing

import (
	"context"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// BillRepository интерфейс репозитория счетов и кредитов
type BillRepository interface {
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.Bill, error)
	MarkPaid(ctx context.Context, id int64) error
	SumUnpaidFees(ctx context.Context, providerID int64) (float64, error)
	CreateCredit(ctx context.Context, credit *domain.BillCredit) (*domain.BillCredit, error)
	SumCredits(ctx context.Context, providerID int64) (float64, error)
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Provider, error)
}

// PromotionRepository интерфейс репозитория промо-акций
type PromotionRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) (*domain.Promotion, error)
	Upsert(ctx context.Context, providerID int64, freeTotal int) (*domain.Promotion, error)
}

// SettingsRepository интерфейс репозитория настроек платформы
type SettingsRepository interface {
	GetServiceChargePercentage(ctx context.Context) (float64, error)
	UpdateServiceChargePercentage(ctx context.Context, pct float64) (float64, error)
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
