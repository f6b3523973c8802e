package catalog

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByProviderID(ctx context.Context, providerID int64) ([]*domain.Service, error)
	Delete(ctx context.Context, id, providerID int64) error
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ListAll(ctx context.Context) ([]*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
