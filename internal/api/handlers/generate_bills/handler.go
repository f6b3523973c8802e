package generate_bills

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers"
	generateBills "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/generate_bills"
)

const (
	msgInvalidMonth = "invalid month, expected YYYY-MM"
)

type Handler struct {
	useCase GenerateBillsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateBillsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bills/generate?month=YYYY-MM
// Без параметра month генерирует счета за текущий месяц
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var month time.Time
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			h.logger.Warn("POST /admin/bills/generate - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &generateBills.Request{Month: month})
	if err != nil {
		switch {
		case errors.Is(err, generateBills.ErrInvalidInput):
			h.logger.Warn("POST /admin/bills/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("POST /admin/bills/generate - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bills/generate - OK: month=%s, created=%d, updated=%d, skipped=%d",
		result.Month, result.Created, result.Updated, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}
