package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	bookingRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/booking"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type fakeBookingRepo struct {
	bookings   map[int64]*domain.Booking
	cancelled  []int64
	lastFilter domain.ProviderBookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	if b, ok := f.bookings[id]; ok {
		now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
	}
	return nil
}

type fakeProviderRepo struct{ provider *domain.Provider }

func (f *fakeProviderRepo) GetByID(_ context.Context, _ int64) (*domain.Provider, error) {
	return f.provider, nil
}

type fakeUserRepo struct{ user *domain.User }

func (f *fakeUserRepo) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	return f.user, nil
}

type fakeNotifier struct{ cancelledCalls int }

func (f *fakeNotifier) BookingCancelled(_ context.Context, _ *domain.User, _ *domain.Booking) {
	f.cancelledCalls++
}

func newService(repo *fakeBookingRepo, notifier *fakeNotifier, now time.Time) *Service {
	return NewService(
		repo,
		&fakeProviderRepo{provider: &domain.Provider{ID: 5, UserID: 50}},
		&fakeUserRepo{user: &domain.User{ID: 50}},
		notifier,
		stubTime{now: now},
		fakeLogger{},
	)
}

func confirmedBooking(id, customerID, providerID int64, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		CustomerID: customerID,
		ProviderID: providerID,
		ServiceID:  10,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.StatusConfirmed,
	}
}

func TestCancelAsCustomer(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: confirmedBooking(1, 100, 5, now.Add(2*time.Hour)),
	}}
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, now)

	resp, err := svc.CancelAsCustomer(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.Equal(t, 1, notifier.cancelledCalls)
}

func TestCancelAsCustomer_ForeignBookingDenied(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: confirmedBooking(1, 100, 5, now.Add(2*time.Hour)),
	}}
	svc := newService(repo, &fakeNotifier{}, now)

	_, err := svc.CancelAsCustomer(context.Background(), 1, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancelAsCustomer_NotFound(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newService(repo, &fakeNotifier{}, now)

	_, err := svc.CancelAsCustomer(context.Background(), 42, 100)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelAsCustomer_AlreadyCancelledIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	cancelledAt := now.Add(-time.Hour)
	booking := confirmedBooking(1, 100, 5, now.Add(2*time.Hour))
	booking.Status = domain.StatusCancelled
	booking.CancelledAt = &cancelledAt

	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking}}
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, now)

	resp, err := svc.CancelAsCustomer(context.Background(), 1, 100)

	// Повторная отмена не ошибка: бронирование возвращается как есть
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Empty(t, repo.cancelled)
	assert.Equal(t, 0, notifier.cancelledCalls)
}

func TestCancelAsCustomer_FinishedBookingIsNoOp(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	// Подтвержденное бронирование, закончившееся 3 часа назад
	booking := confirmedBooking(1, 100, 5, now.Add(-4*time.Hour))

	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: booking}}
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, now)

	resp, err := svc.CancelAsCustomer(context.Background(), 1, 100)

	// Завершенное бронирование остается в выручке провайдера
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Nil(t, resp.CancelledAt)
	assert.Empty(t, repo.cancelled)
	assert.Equal(t, 0, notifier.cancelledCalls)
}

func TestCancelAsProvider_ForeignBookingDenied(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: confirmedBooking(1, 100, 5, now.Add(2*time.Hour)),
	}}
	svc := newService(repo, &fakeNotifier{}, now)

	_, err := svc.CancelAsProvider(context.Background(), 1, 777)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetProviderBookings_Scopes(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	svc := newService(repo, &fakeNotifier{}, now)

	// today: границы текущего календарного дня
	_, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 5, Scope: ScopeToday})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StartTimeFrom)
	require.NotNil(t, repo.lastFilter.StartTimeBefore)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartTimeFrom)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartTimeBefore)

	// upcoming: только подтвержденные начиная с now
	_, err = svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 5, Scope: ScopeUpcoming})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.StartTimeFrom)
	assert.Equal(t, now, *repo.lastFilter.StartTimeFrom)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)

	// пустая область равна all
	_, err = svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 5})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.StartTimeFrom)
	assert.Nil(t, repo.lastFilter.Status)

	// неизвестная область отклоняется
	_, err = svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 5, Scope: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestFromDomainBooking_CompletedStatusIsDerived(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	finished := confirmedBooking(1, 100, 5, now.Add(-2*time.Hour))
	resp := models.FromDomainBooking(finished, now)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	upcoming := confirmedBooking(2, 100, 5, now.Add(time.Hour))
	resp = models.FromDomainBooking(upcoming, now)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}
