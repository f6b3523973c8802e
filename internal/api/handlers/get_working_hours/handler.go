package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule"
)

const (
	msgInvalidProviderID = "invalid provider ID"
	msgProviderNotFound  = "provider not found"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{providerId}/working-hours - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{providerId}/working-hours - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{providerId}/working-hours - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{providerId}/working-hours - OK: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
