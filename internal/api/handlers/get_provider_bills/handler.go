package get_provider_bills

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgProviderNotFound  = "provider not found"
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

// Handle GET /api/v1/providers/{providerId}/bills
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/bills - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.ListProviderBills(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{providerId}/bills - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{providerId}/bills - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/bills - OK: provider_id=%d, bills=%d, netDue=%.2f",
		providerID, len(result.Bills), result.NetDue)
	handlers.RespondJSON(w, http.StatusOK, result)
}
