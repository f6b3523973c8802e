package list_provider_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgProviderNotFound  = "provider not found"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/services - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.ListProviderServices(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{providerId}/services - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{providerId}/services - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/services - OK: provider_id=%d, count=%d", providerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
