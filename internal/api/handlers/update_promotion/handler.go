package update_promotion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidRequestBody = "invalid request body"
	msgProviderNotFound   = "provider not found"
	msgInvalidLimit       = "free bookings limit must not be negative"
)

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/providers/{providerId}/promotion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/providers/{providerId}/promotion - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.UpdatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/providers/{providerId}/promotion - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	result, err := h.service.UpsertPromotion(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProviderNotFound):
			h.logger.Warn("PUT /admin/providers/{providerId}/promotion - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("PUT /admin/providers/{providerId}/promotion - Invalid limit: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("PUT /admin/providers/{providerId}/promotion - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/providers/{providerId}/promotion - Updated: provider_id=%d, total=%d, used=%d",
		providerID, result.FreeBookingsTotal, result.FreeBookingsUsed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
