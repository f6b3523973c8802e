package update_service_charge

import (
	"net/http"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
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

// Handle PUT /api/v1/admin/service-charge
// Процент за пределами [0, 100] прижимается к границе, а не отклоняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceChargeResponse
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/service-charge - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateServiceCharge(r.Context(), req.ServiceChargePercentage)
	if err != nil {
		h.logger.Error("PUT /admin/service-charge - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/service-charge - Updated: %.2f%%", result.ServiceChargePercentage)
	handlers.RespondJSON(w, http.StatusOK, result)
}
