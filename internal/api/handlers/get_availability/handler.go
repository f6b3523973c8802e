package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	getAvailability "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/get_availability"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgInvalidServiceID  = "invalid service ID"
	msgInvalidDays       = "invalid days parameter"
	msgServiceNotFound   = "Service not found for this provider"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/services/{serviceId}/availability?days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/services/{serviceId}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/services/{serviceId}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	days := 0
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		days, err = strconv.Atoi(daysParam)
		if err != nil {
			h.logger.Warn("GET /providers/{providerId}/services/{serviceId}/availability - Invalid days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Days:       days,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /providers/{providerId}/services/{serviceId}/availability - Service not found: provider_id=%d, service_id=%d", providerID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{providerId}/services/{serviceId}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		default:
			h.logger.Error("GET /providers/{providerId}/services/{serviceId}/availability - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/services/{serviceId}/availability - OK: provider_id=%d, service_id=%d, days=%d", providerID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
