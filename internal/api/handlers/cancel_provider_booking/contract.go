package cancel_provider_booking

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

type BookingService interface {
	CancelAsProvider(ctx context.Context, bookingID, providerID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
