package update_promotion

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

type BillingService interface {
	UpsertPromotion(ctx context.Context, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
