package update_service_charge

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

type BillingService interface {
	UpdateServiceCharge(ctx context.Context, pct float64) (*models.ServiceChargeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
