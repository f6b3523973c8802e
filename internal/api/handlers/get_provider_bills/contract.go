package get_provider_bills

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

type BillingService interface {
	ListProviderBills(ctx context.Context, providerID int64) (*models.BillListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
