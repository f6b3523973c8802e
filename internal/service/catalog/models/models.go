package models

import (
	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	ProviderID      int64   `json:"providerId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToDomain конвертирует request в domain.Service
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	return &domain.Service{
		ProviderID:      r.ProviderID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	ProviderID      int64   `json:"providerId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ServiceListResponse список услуг провайдера
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует domain.Service в response
func FromDomainService(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              svc.ID,
		ProviderID:      svc.ProviderID,
		Name:            svc.Name,
		Description:     svc.Description,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	items := make([]*ServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, FromDomainService(svc))
	}
	return &ServiceListResponse{
		Services: items,
		Total:    len(items),
	}
}
