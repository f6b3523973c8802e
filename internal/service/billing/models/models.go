package models

import (
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// Request модели

// ApplyCreditRequest запрос на начисление кредита провайдеру
// Провайдер идентифицируется номером счета вида ACC-1A2B3C4D,
// либо email-ом: номер счета детерминированно выводится из него
type ApplyCreditRequest struct {
	AccountNumber string  `json:"accountNumber"`
	ProviderEmail string  `json:"providerEmail"`
	Amount        float64 `json:"amount"`
}

// UpdatePromotionRequest запрос на установку лимита бесплатных бронирований
type UpdatePromotionRequest struct {
	ProviderID        int64 `json:"providerId"`
	FreeBookingsTotal int   `json:"freeBookingsTotal"`
}

// Response модели

// BillResponse ответ с данными счета
type BillResponse struct {
	ID        int64   `json:"id"`
	Month     string  `json:"month"` // "2025-10"
	Total     float64 `json:"total"`
	Fee       float64 `json:"fee"`
	IsPaid    bool    `json:"isPaid"`
	IsOverdue bool    `json:"isOverdue"`
	DueDate   string  `json:"dueDate"` // "2025-11-15"
}

// BillListResponse счета провайдера со сводкой задолженности
type BillListResponse struct {
	ProviderID    int64           `json:"providerId"`
	AccountNumber string          `json:"accountNumber"`
	Bills         []*BillResponse `json:"bills"`
	UnpaidFees    float64         `json:"unpaidFees"`
	Credits       float64         `json:"credits"`
	NetDue        float64         `json:"netDue"` // max(0, unpaidFees - credits)
}

// CreditResponse ответ с данными начисленного кредита
type CreditResponse struct {
	ID         int64   `json:"id"`
	ProviderID int64   `json:"providerId"`
	Amount     float64 `json:"amount"`
	CreatedAt  string  `json:"createdAt"`
}

// PromotionResponse ответ с данными промо-акции
type PromotionResponse struct {
	ProviderID        int64 `json:"providerId"`
	FreeBookingsTotal int   `json:"freeBookingsTotal"`
	FreeBookingsUsed  int   `json:"freeBookingsUsed"`
}

// ServiceChargeResponse текущий процент комиссии платформы
type ServiceChargeResponse struct {
	ServiceChargePercentage float64 `json:"serviceChargePercentage"`
}

// FromDomainBill конвертирует domain.Bill в response
func FromDomainBill(bill *domain.Bill, now time.Time) *BillResponse {
	return &BillResponse{
		ID:        bill.ID,
		Month:     bill.Month.Format("2006-01"),
		Total:     bill.Total,
		Fee:       bill.Fee,
		IsPaid:    bill.IsPaid,
		IsOverdue: bill.IsOverdue(now),
		DueDate:   bill.DueDate.Format(domain.DateFormat),
	}
}

// FromDomainCredit конвертирует domain.BillCredit в response
func FromDomainCredit(credit *domain.BillCredit) *CreditResponse {
	return &CreditResponse{
		ID:         credit.ID,
		ProviderID: credit.ProviderID,
		Amount:     credit.Amount,
		CreatedAt:  credit.CreatedAt.Format(domain.DateTimeFormat),
	}
}

// FromDomainPromotion конвертирует domain.Promotion в response
func FromDomainPromotion(promo *domain.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ProviderID:        promo.ProviderID,
		FreeBookingsTotal: promo.FreeBookingsTotal,
		FreeBookingsUsed:  promo.FreeBookingsUsed,
	}
}
