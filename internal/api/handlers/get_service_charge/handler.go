package get_service_charge

import (
	"net/http"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
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

// Handle GET /api/v1/admin/service-charge
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetServiceCharge(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/service-charge - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/service-charge - OK: %.2f%%", result.ServiceChargePercentage)
	handlers.RespondJSON(w, http.StatusOK, result)
}
