package get_provider_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgInvalidScope      = "invalid scope, expected today, upcoming or all"
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

// Handle GET /api/v1/providers/{providerId}/bookings?scope=today|upcoming|all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/bookings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetProviderBookings(r.Context(), &models.GetProviderBookingsRequest{
		ProviderID: providerID,
		Scope:      r.URL.Query().Get("scope"),
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidScope):
			h.logger.Warn("GET /providers/{providerId}/bookings - Invalid scope: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidScope)

		default:
			h.logger.Error("GET /providers/{providerId}/bookings - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/bookings - OK: provider_id=%d, count=%d", providerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
