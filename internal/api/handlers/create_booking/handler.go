package create_booking

import (
	"errors"
	"net/http"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/api/middleware"
	createBooking "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidStartTime   = "invalid startTime, expected YYYY-MM-DDTHH:MM:SS"
	msgUnauthorized       = "authentication required"
	msgServiceNotFound    = "Service not found"
	msgPastTime           = "Cannot book a time in the past"
	msgSlotNotAvailable   = "Selected slot is no longer available"
	msgProviderLocked     = "Provider account is locked due to unpaid bill"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPastTime):
			h.logger.Warn("POST /bookings - Past time: customer_id=%d, start=%s", customerID, req.StartTime)
			handlers.RespondBadRequest(w, msgPastTime)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot taken: customer_id=%d, service_id=%d, start=%s",
				customerID, req.ServiceID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProviderLocked):
			h.logger.Warn("POST /bookings - Provider locked: service_id=%d", req.ServiceID)
			handlers.RespondForbidden(w, msgProviderLocked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, service_id=%d, error=%v",
				customerID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, customer_id=%d, service_id=%d",
		result.ID, customerID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
