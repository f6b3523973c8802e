package list_provider_services

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog/models"
)

type CatalogService interface {
	ListProviderServices(ctx context.Context, providerID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
