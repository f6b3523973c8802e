package apply_bill_credit

import (
	"errors"
	"net/http"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgProviderNotFound   = "no provider with this account number"
	msgInvalidAmount      = "credit requires a positive amount and an account number or provider email"
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

// Handle POST /api/v1/admin/credits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyCreditRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/credits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ApplyBillCredit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProviderNotFound):
			h.logger.Warn("POST /admin/credits - Account not found: account=%s, email=%s", req.AccountNumber, req.ProviderEmail)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("POST /admin/credits - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		default:
			h.logger.Error("POST /admin/credits - Failed: account=%s, error=%v", req.AccountNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/credits - Applied: credit_id=%d, provider_id=%d, amount=%.2f",
		result.ID, result.ProviderID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
