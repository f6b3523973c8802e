package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule/models"
)

const (
	msgInvalidProviderID  = "invalid provider ID"
	msgInvalidRequestBody = "invalid request body"
	msgProviderNotFound   = "provider not found"
	msgInvalidWeekday     = "weekday must be between 0 and 6"
	msgInvalidTimeRange   = "start time must be before end time"
	msgInvalidTimeFormat  = "time must be in HH:MM format"
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

// Handle PUT /api/v1/providers/{providerId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /providers/{providerId}/working-hours - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	var req models.UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{providerId}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ProviderID = providerID

	result, err := h.service.ReplaceWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{providerId}/working-hours - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrInvalidWeekday):
			h.logger.Warn("PUT /providers/{providerId}/working-hours - Invalid weekday: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /providers/{providerId}/working-hours - Invalid time range: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidTimeFormat):
			h.logger.Warn("PUT /providers/{providerId}/working-hours - Invalid time format: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)

		default:
			h.logger.Error("PUT /providers/{providerId}/working-hours - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{providerId}/working-hours - Updated: provider_id=%d", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
