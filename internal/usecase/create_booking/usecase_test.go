package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	promotionRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/promotion"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
)

// --- фейки зависимостей ---

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

// fakeTx выполняет функцию без настоящей транзакции и считает вызовы
type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeBookingRepo struct {
	existing   []*domain.Booking
	created    *domain.Booking
	lastFilter domain.ProviderBookingsFilter
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.existing, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 100
	created.CreatedAt = time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

type fakeBillRepo struct{ locked bool }

func (f *fakeBillRepo) HasOverdueUnpaid(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.locked, nil
}

type fakePromoRepo struct {
	promo       *domain.Promotion
	incremented int
}

func (f *fakePromoRepo) GetByProviderID(_ context.Context, _ int64) (*domain.Promotion, error) {
	if f.promo == nil {
		return nil, promotionRepo.ErrPromotionNotFound
	}
	return f.promo, nil
}

func (f *fakePromoRepo) IncrementUsed(_ context.Context, _ int64) error {
	f.incremented++
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

type fakeProviderRepo struct{ provider *domain.Provider }

func (f *fakeProviderRepo) GetByID(_ context.Context, _ int64) (*domain.Provider, error) {
	if f.provider == nil {
		return nil, errors.New("provider not found")
	}
	return f.provider, nil
}

type fakeNotifier struct {
	confirmed int
	customer  *domain.User
	provider  *domain.User
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, customer, providerUser *domain.User, _ *domain.Booking) {
	f.confirmed++
	f.customer = customer
	f.provider = providerUser
}

// --- сборка usecase с дефолтными фейками ---

type deps struct {
	bookings  *fakeBookingRepo
	services  *fakeServiceRepo
	providers *fakeProviderRepo
	users     *fakeUserRepo
	bills     *fakeBillRepo
	promos    *fakePromoRepo
	notifier  *fakeNotifier
	tx        *fakeTx
	now       time.Time
}

func newDeps() *deps {
	return &deps{
		bookings: &fakeBookingRepo{},
		services: &fakeServiceRepo{
			service: &domain.Service{
				ID:              10,
				ProviderID:      5,
				Name:            "Haircut",
				Price:           2000,
				DurationMinutes: 90,
			},
		},
		providers: &fakeProviderRepo{provider: &domain.Provider{ID: 5, UserID: 50}},
		users: &fakeUserRepo{users: map[int64]*domain.User{
			1:  {ID: 1, FullName: "Customer"},
			50: {ID: 50, FullName: "Provider owner"},
		}},
		bills:    &fakeBillRepo{},
		promos:   &fakePromoRepo{},
		notifier: &fakeNotifier{},
		tx:       &fakeTx{},
		now:      time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
	}
}

func (d *deps) build() *UseCase {
	return NewUseCase(
		d.bookings,
		d.services,
		d.providers,
		d.users,
		d.bills,
		d.promos,
		d.notifier,
		d.tx,
		stubTime{now: d.now},
		fakeLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	d := newDeps()
	uc := d.build()

	start := d.now.Add(2 * time.Hour)
	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: start})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(5), resp.ProviderID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, start.Add(90*time.Minute), resp.EndTime)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 2000.0, resp.ServicePrice)
	assert.False(t, resp.FeeExempt)

	// Проверка занятости шла под блокировкой строк
	assert.True(t, d.bookings.lastFilter.ForUpdate)
	assert.Equal(t, 1, d.tx.calls)

	// Обе стороны уведомлены
	require.Equal(t, 1, d.notifier.confirmed)
	assert.Equal(t, int64(1), d.notifier.customer.ID)
	assert.Equal(t, int64(50), d.notifier.provider.ID)
}

func TestExecute_PastTime(t *testing.T) {
	d := newDeps()
	uc := d.build()

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now.Add(-time.Minute)})
	assert.ErrorIs(t, err, ErrPastTime)

	// Время ровно now тоже в прошлом
	_, err = uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now})
	assert.ErrorIs(t, err, ErrPastTime)

	assert.Equal(t, 0, d.tx.calls)
	assert.Equal(t, 0, d.notifier.confirmed)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	d := newDeps()
	d.services.service = nil
	d.services.err = serviceRepo.ErrServiceNotFound
	uc := d.build()

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 99, StartTime: d.now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_SlotTaken(t *testing.T) {
	d := newDeps()
	start := d.now.Add(2 * time.Hour)
	d.bookings.existing = []*domain.Booking{
		{
			ID:        7,
			Status:    domain.StatusConfirmed,
			StartTime: start.Add(30 * time.Minute),
			EndTime:   start.Add(2 * time.Hour),
		},
	}
	uc := d.build()

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: start})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, d.bookings.created)
	assert.Equal(t, 0, d.notifier.confirmed)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	d := newDeps()
	start := d.now.Add(2 * time.Hour)
	d.bookings.existing = []*domain.Booking{
		{
			ID:        7,
			Status:    domain.StatusCancelled,
			StartTime: start,
			EndTime:   start.Add(90 * time.Minute),
		},
	}
	uc := d.build()

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: start})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
}

func TestExecute_ProviderLocked(t *testing.T) {
	d := newDeps()
	d.bills.locked = true
	uc := d.build()

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now.Add(time.Hour)})

	assert.ErrorIs(t, err, ErrProviderLocked)
	assert.Nil(t, d.bookings.created)
}

func TestExecute_PromotionMakesBookingFeeExempt(t *testing.T) {
	d := newDeps()
	d.promos.promo = &domain.Promotion{ID: 3, ProviderID: 5, FreeBookingsTotal: 5, FreeBookingsUsed: 4}
	uc := d.build()

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now.Add(time.Hour)})

	require.NoError(t, err)
	assert.True(t, resp.FeeExempt)
	assert.Equal(t, 1, d.promos.incremented)
	assert.True(t, d.bookings.created.FeeExempt)
}

func TestExecute_ExhaustedPromotionChargesFee(t *testing.T) {
	d := newDeps()
	d.promos.promo = &domain.Promotion{ID: 3, ProviderID: 5, FreeBookingsTotal: 5, FreeBookingsUsed: 5}
	uc := d.build()

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now.Add(time.Hour)})

	require.NoError(t, err)
	assert.False(t, resp.FeeExempt)
	assert.Equal(t, 0, d.promos.incremented)
}

func TestExecute_NotificationLookupFailureDoesNotFailBooking(t *testing.T) {
	d := newDeps()
	d.users.users = nil
	d.providers.provider = nil
	uc := d.build()

	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, ServiceID: 10, StartTime: d.now.Add(time.Hour)})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)

	// Диспетчер вызван с nil-получателями, решение за ним
	require.Equal(t, 1, d.notifier.confirmed)
	assert.Nil(t, d.notifier.customer)
	assert.Nil(t, d.notifier.provider)
}

func TestExecute_Validation(t *testing.T) {
	d := newDeps()
	uc := d.build()
	start := d.now.Add(time.Hour)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero customer", req: &Request{ServiceID: 10, StartTime: start}},
		{name: "zero service", req: &Request{CustomerID: 1, StartTime: start}},
		{name: "zero start time", req: &Request{CustomerID: 1, ServiceID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
