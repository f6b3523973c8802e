package models

import (
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// Request модели

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	ProviderID int64  `json:"providerId"`
	Scope      string `json:"scope"` // today | upcoming | all
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64    `json:"id"`
	CustomerID   int64    `json:"customerId"`
	ProviderID   int64    `json:"providerId"`
	ServiceID    int64    `json:"serviceId"`
	ServiceName  string   `json:"serviceName"`
	ServicePrice float64  `json:"servicePrice"`
	StartTime    string   `json:"startTime"` // "2025-10-15 10:00"
	EndTime      string   `json:"endTime"`   // "2025-10-15 11:00"
	Status       string   `json:"status"`
	CancelledAt  *string  `json:"cancelledAt,omitempty"`
	CreatedAt    string   `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response
// Статус completed вычисляется: подтвержденное бронирование, уже закончившееся к now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	status := b.Status
	if status == domain.StatusConfirmed && b.IsFinishedBy(now) {
		status = domain.StatusCompleted
	}

	resp := &BookingResponse{
		ID:           b.ID,
		CustomerID:   b.CustomerID,
		ProviderID:   b.ProviderID,
		ServiceID:    b.ServiceID,
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		StartTime:    b.StartTime.Format(domain.DateTimeFormat),
		EndTime:      b.EndTime.Format(domain.DateTimeFormat),
		Status:       string(status),
		CreatedAt:    b.CreatedAt.Format(domain.DateTimeFormat),
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(domain.DateTimeFormat)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, FromDomainBooking(b, now))
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
