package create_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog/models"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidRequestBody = "invalid request body"
	msgProviderNotFound   = "provider not found"
	msgInvalidInput       = "invalid service data"
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

// Handle POST /api/v1/providers/{providerId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{providerId}/services - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{providerId}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{providerId}/services - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /providers/{providerId}/services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /providers/{providerId}/services - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{providerId}/services - Created: service_id=%d, provider_id=%d", result.ID, providerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
