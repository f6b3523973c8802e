package delete_service

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
	msgInvalidServiceID  = "invalid service ID"
	msgServiceNotFound   = "service not found"
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

// Handle DELETE /api/v1/providers/{providerId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{providerId}/services/{serviceId} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{providerId}/services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.DeleteService(r.Context(), serviceID, providerID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /providers/{providerId}/services/{serviceId} - Not found: service_id=%d, provider_id=%d",
				serviceID, providerID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("DELETE /providers/{providerId}/services/{serviceId} - Failed: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{providerId}/services/{serviceId} - Deleted: service_id=%d, provider_id=%d",
		serviceID, providerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
