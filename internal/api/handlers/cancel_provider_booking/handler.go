package cancel_provider_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "invalid booking ID"
	msgInvalidProviderID = "invalid provider ID"
	msgBookingNotFound   = "booking not found"
	msgAccessDenied      = "booking belongs to another provider"
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

// Handle POST /api/v1/providers/{providerId}/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{providerId}/bookings/{bookingId}/cancel - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{providerId}/bookings/{bookingId}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.CancelAsProvider(r.Context(), bookingID, providerID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /providers/{providerId}/bookings/{bookingId}/cancel - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /providers/{providerId}/bookings/{bookingId}/cancel - Access denied: booking_id=%d, provider_id=%d",
				bookingID, providerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /providers/{providerId}/bookings/{bookingId}/cancel - Failed: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{providerId}/bookings/{bookingId}/cancel - Cancelled: booking_id=%d, provider_id=%d",
		bookingID, providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
