package mark_bill_paid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing"
)

const (
	msgInvalidBillID = "invalid bill ID"
	msgBillNotFound  = "bill not found"
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

// Handle POST /api/v1/admin/bills/{billId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	billID, err := strconv.ParseInt(vars["billId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bills/{billId}/pay - Invalid bill ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBillID)
		return
	}

	if err := h.service.MarkBillPaid(r.Context(), billID); err != nil {
		switch {
		case errors.Is(err, billing.ErrBillNotFound):
			h.logger.Warn("POST /admin/bills/{billId}/pay - Not found: bill_id=%d", billID)
			handlers.RespondNotFound(w, msgBillNotFound)

		default:
			h.logger.Error("POST /admin/bills/{billId}/pay - Failed: bill_id=%d, error=%v", billID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bills/{billId}/pay - Paid: bill_id=%d", billID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"paid": true})
}
