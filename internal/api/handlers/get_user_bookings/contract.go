package get_user_bookings

import (
	"context"

	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
