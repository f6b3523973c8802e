package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/api/middleware"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings"
)

const (
	msgInvalidBookingID = "invalid booking ID"
	msgUnauthorized     = "authentication required"
	msgBookingNotFound  = "booking not found"
	msgAccessDenied     = "booking belongs to another user"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{bookingId}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CancelAsCustomer(r.Context(), bookingID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/cancel - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{bookingId}/cancel - Access denied: booking_id=%d, customer_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /bookings/{bookingId}/cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/cancel - Cancelled: booking_id=%d, customer_id=%d", bookingID, customerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
