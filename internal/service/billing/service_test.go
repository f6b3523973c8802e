package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	billRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/billing"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type fakeBillRepo struct {
	bills      []*domain.Bill
	unpaidFees float64
	credits    float64
	paid       []int64
	markErr    error
	created    []*domain.BillCredit
}

func (f *fakeBillRepo) ListByProvider(_ context.Context, _ int64) ([]*domain.Bill, error) {
	return f.bills, nil
}

func (f *fakeBillRepo) MarkPaid(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.paid = append(f.paid, id)
	return nil
}

func (f *fakeBillRepo) SumUnpaidFees(_ context.Context, _ int64) (float64, error) {
	return f.unpaidFees, nil
}

func (f *fakeBillRepo) CreateCredit(_ context.Context, credit *domain.BillCredit) (*domain.BillCredit, error) {
	created := *credit
	created.ID = int64(len(f.created) + 1)
	created.CreatedAt = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeBillRepo) SumCredits(_ context.Context, _ int64) (float64, error) {
	return f.credits, nil
}

type fakeProviderRepo struct {
	provider *domain.Provider
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	if f.provider == nil || f.provider.ID != id {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.provider, nil
}

func (f *fakeProviderRepo) GetByAccountNumber(_ context.Context, accountNumber string) (*domain.Provider, error) {
	if f.provider == nil || f.provider.AccountNumber != accountNumber {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.provider, nil
}

type fakePromotionRepo struct {
	promo *domain.Promotion
}

func (f *fakePromotionRepo) GetByProviderID(_ context.Context, _ int64) (*domain.Promotion, error) {
	return f.promo, nil
}

func (f *fakePromotionRepo) Upsert(_ context.Context, providerID int64, freeTotal int) (*domain.Promotion, error) {
	f.promo = &domain.Promotion{ID: 1, ProviderID: providerID, FreeBookingsTotal: freeTotal}
	return f.promo, nil
}

type fakeSettingsRepo struct{ pct float64 }

func (f *fakeSettingsRepo) GetServiceChargePercentage(_ context.Context) (float64, error) {
	return f.pct, nil
}

func (f *fakeSettingsRepo) UpdateServiceChargePercentage(_ context.Context, pct float64) (float64, error) {
	f.pct = domain.ClampServiceCharge(pct)
	return f.pct, nil
}

func newService(bills *fakeBillRepo, providers *fakeProviderRepo, promos *fakePromotionRepo, settings *fakeSettingsRepo, now time.Time) *Service {
	return NewService(bills, providers, promos, settings, stubTime{now: now}, fakeLogger{})
}

func defaultProvider() *fakeProviderRepo {
	return &fakeProviderRepo{provider: &domain.Provider{ID: 5, UserID: 50, AccountNumber: "ACC-1A2B3C4D"}}
}

func TestListProviderBills(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	bills := &fakeBillRepo{
		bills: []*domain.Bill{
			{
				ID:         1,
				ProviderID: 5,
				Month:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				Total:      10000,
				Fee:        1000,
				DueDate:    time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		unpaidFees: 1000,
		credits:    300,
	}
	svc := newService(bills, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	resp, err := svc.ListProviderBills(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "ACC-1A2B3C4D", resp.AccountNumber)
	assert.Equal(t, 700.0, resp.NetDue)

	require.Len(t, resp.Bills, 1)
	assert.Equal(t, "2026-03", resp.Bills[0].Month)
	assert.Equal(t, "2026-04-15", resp.Bills[0].DueDate)
	// Срок оплаты прошел, счет не оплачен
	assert.True(t, resp.Bills[0].IsOverdue)
}

func TestListProviderBills_NetDueNeverNegative(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	bills := &fakeBillRepo{unpaidFees: 500, credits: 2000}
	svc := newService(bills, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	resp, err := svc.ListProviderBills(context.Background(), 5)

	require.NoError(t, err)
	// Кредиты превышают долг: задолженность нулевая, а не отрицательная
	assert.Equal(t, 0.0, resp.NetDue)
	assert.Equal(t, 2000.0, resp.Credits)
}

func TestListProviderBills_UnknownProvider(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	svc := newService(&fakeBillRepo{}, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	_, err := svc.ListProviderBills(context.Background(), 99)

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestMarkBillPaid(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	bills := &fakeBillRepo{}
	svc := newService(bills, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	require.NoError(t, svc.MarkBillPaid(context.Background(), 7))
	assert.Equal(t, []int64{7}, bills.paid)

	bills.markErr = billRepo.ErrBillNotFound
	assert.ErrorIs(t, svc.MarkBillPaid(context.Background(), 404), ErrBillNotFound)
}

func TestApplyBillCredit(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	bills := &fakeBillRepo{}
	svc := newService(bills, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	resp, err := svc.ApplyBillCredit(context.Background(), &models.ApplyCreditRequest{
		AccountNumber: "ACC-1A2B3C4D",
		Amount:        500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ProviderID)
	assert.Equal(t, 500.0, resp.Amount)
	require.Len(t, bills.created, 1)
}

func TestApplyBillCredit_ByProviderEmail(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	bills := &fakeBillRepo{}
	email := "provider@example.com"
	providers := &fakeProviderRepo{provider: &domain.Provider{
		ID:            5,
		UserID:        50,
		AccountNumber: providerRepo.AccountNumberForEmail(email),
	}}
	svc := newService(bills, providers, &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	// Номер счета не указан: выводится детерминированно из email
	resp, err := svc.ApplyBillCredit(context.Background(), &models.ApplyCreditRequest{
		ProviderEmail: email,
		Amount:        500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ProviderID)
	require.Len(t, bills.created, 1)
}

func TestApplyBillCredit_Invalid(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	svc := newService(&fakeBillRepo{}, defaultProvider(), &fakePromotionRepo{}, &fakeSettingsRepo{}, now)

	_, err := svc.ApplyBillCredit(context.Background(), &models.ApplyCreditRequest{
		AccountNumber: "ACC-1A2B3C4D",
		Amount:        0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ApplyBillCredit(context.Background(), &models.ApplyCreditRequest{
		AccountNumber: "ACC-UNKNOWN1",
		Amount:        500,
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	// Ни номера счета, ни email
	_, err = svc.ApplyBillCredit(context.Background(), &models.ApplyCreditRequest{Amount: 500})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateServiceCharge(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	settings := &fakeSettingsRepo{pct: 10}
	svc := newService(&fakeBillRepo{}, defaultProvider(), &fakePromotionRepo{}, settings, now)

	resp, err := svc.UpdateServiceCharge(context.Background(), 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, resp.ServiceChargePercentage)

	// Значения за пределами [0, 100] прижимаются
	resp, err = svc.UpdateServiceCharge(context.Background(), -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.ServiceChargePercentage)
}

func TestUpsertPromotion(t *testing.T) {
	now := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	promos := &fakePromotionRepo{}
	svc := newService(&fakeBillRepo{}, defaultProvider(), promos, &fakeSettingsRepo{}, now)

	resp, err := svc.UpsertPromotion(context.Background(), &models.UpdatePromotionRequest{
		ProviderID:        5,
		FreeBookingsTotal: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.FreeBookingsTotal)
	assert.Equal(t, 0, resp.FreeBookingsUsed)

	_, err = svc.UpsertPromotion(context.Background(), &models.UpdatePromotionRequest{
		ProviderID:        5,
		FreeBookingsTotal: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpsertPromotion(context.Background(), &models.UpdatePromotionRequest{
		ProviderID:        99,
		FreeBookingsTotal: 3,
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
