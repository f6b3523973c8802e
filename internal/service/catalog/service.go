package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг
type Service struct {
	serviceRepo  ServiceRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// CreateService создает услугу провайдера
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for provider=%d", req.Name, req.ProviderID)

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("CreateService: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	if err := s.checkProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateService: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: service id=%d created for provider=%d", created.ID, req.ProviderID)
	return models.FromDomainService(created), nil
}

// ListProviderServices получает список услуг провайдера
func (s *Service) ListProviderServices(ctx context.Context, providerID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListProviderServices: fetching services for provider=%d", providerID)

	if err := s.checkProvider(ctx, providerID); err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		s.logger.Error("ListProviderServices: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListProviderServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// DeleteService удаляет услугу провайдера
// История бронирований хранит снимок названия и цены, поэтому удаление её не трогает
func (s *Service) DeleteService(ctx context.Context, serviceID, providerID int64) error {
	s.logger.Info("DeleteService: deleting service=%d of provider=%d", serviceID, providerID)

	err := s.serviceRepo.Delete(ctx, serviceID, providerID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service=%d not found for provider=%d", serviceID, providerID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: service=%d deleted", serviceID)
	return nil
}

func (s *Service) validateCreate(req *models.CreateServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name must be non-empty and at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

func (s *Service) checkProvider(ctx context.Context, providerID int64) error {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return ErrProviderNotFound
		}
		return fmt.Errorf("%w: checkProvider - repository error: %v", ErrInternal, err)
	}
	return nil
}
