package create_booking

import (
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	createBooking "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID int64  `json:"serviceId"`
	StartTime string `json:"startTime"` // "2025-10-15T10:00:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customerId"`
	ProviderID   int64   `json:"providerId"`
	ServiceID    int64   `json:"serviceId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	FeeExempt    bool    `json:"feeExempt"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(domain.DateTimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: customerID,
		ServiceID:  r.ServiceID,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		CustomerID:   resp.CustomerID,
		ProviderID:   resp.ProviderID,
		ServiceID:    resp.ServiceID,
		StartTime:    resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:      resp.EndTime.Format(domain.DateTimeFormat),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		FeeExempt:    resp.FeeExempt,
		CreatedAt:    resp.CreatedAt.Format(domain.DateTimeFormat),
	}
}
