package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog/models"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type fakeServiceRepo struct {
	services []*domain.Service
	created  *domain.Service
	deleted  [][2]int64
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = 10
	f.created = &created
	return &created, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, svc := range f.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) GetByProviderID(_ context.Context, _ int64) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, serviceID, providerID int64) error {
	for _, svc := range f.services {
		if svc.ID == serviceID && svc.ProviderID == providerID {
			f.deleted = append(f.deleted, [2]int64{serviceID, providerID})
			return nil
		}
	}
	return serviceRepo.ErrServiceNotFound
}

type fakeProviderRepo struct{ known int64 }

func (f *fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	if id != f.known {
		return nil, providerRepo.ErrProviderNotFound
	}
	return &domain.Provider{ID: id}, nil
}

func (f *fakeProviderRepo) ListAll(_ context.Context) ([]*domain.Provider, error) {
	return []*domain.Provider{{ID: f.known}}, nil
}

func newService(repo *fakeServiceRepo) *Service {
	return NewService(repo, &fakeProviderRepo{known: 5}, fakeLogger{})
}

func TestCreateService(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := newService(repo)

	resp, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		ProviderID:      5,
		Name:            "Haircut",
		Price:           2000,
		DurationMinutes: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, 45, resp.DurationMinutes)
	require.NotNil(t, repo.created)
}

func TestCreateService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.CreateServiceRequest
	}{
		{
			name: "empty name",
			req:  &models.CreateServiceRequest{ProviderID: 5, Name: "   ", Price: 100, DurationMinutes: 60},
		},
		{
			name: "name too long",
			req:  &models.CreateServiceRequest{ProviderID: 5, Name: strings.Repeat("x", domain.MaxServiceNameLength+1), Price: 100, DurationMinutes: 60},
		},
		{
			name: "negative price",
			req:  &models.CreateServiceRequest{ProviderID: 5, Name: "Haircut", Price: -1, DurationMinutes: 60},
		},
		{
			name: "duration too short",
			req:  &models.CreateServiceRequest{ProviderID: 5, Name: "Haircut", Price: 100, DurationMinutes: domain.MinServiceDurationMinutes - 1},
		},
		{
			name: "duration too long",
			req:  &models.CreateServiceRequest{ProviderID: 5, Name: "Haircut", Price: 100, DurationMinutes: domain.MaxServiceDurationMinutes + 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeServiceRepo{}
			_, err := newService(repo).CreateService(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreateService_UnknownProvider(t *testing.T) {
	svc := newService(&fakeServiceRepo{})

	_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		ProviderID:      99,
		Name:            "Haircut",
		Price:           2000,
		DurationMinutes: 45,
	})

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestDeleteService(t *testing.T) {
	repo := &fakeServiceRepo{services: []*domain.Service{{ID: 10, ProviderID: 5}}}
	svc := newService(repo)

	require.NoError(t, svc.DeleteService(context.Background(), 10, 5))
	assert.Equal(t, [][2]int64{{10, 5}}, repo.deleted)

	// Чужая или несуществующая услуга
	assert.ErrorIs(t, svc.DeleteService(context.Background(), 10, 6), ErrServiceNotFound)
	assert.ErrorIs(t, svc.DeleteService(context.Background(), 404, 5), ErrServiceNotFound)
}
