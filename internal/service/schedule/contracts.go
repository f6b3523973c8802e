package schedule

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByProviderID(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error)
	CreateDefaults(ctx context.Context, providerID int64) error
	ReplaceAll(ctx context.Context, providerID int64, rules []*domain.WorkingHoursRule) error
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
