package cancel_booking

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

type BookingService interface {
	CancelAsCustomer(ctx context.Context, bookingID, customerID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
