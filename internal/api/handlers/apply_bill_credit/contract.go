package apply_bill_credit

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

type BillingService interface {
	ApplyBillCredit(ctx context.Context, req *models.ApplyCreditRequest) (*models.CreditResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
