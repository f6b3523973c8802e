package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	billRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/billing"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/billing/models"
)

// Service сервис для работы со счетами, кредитами и промо-акциями
type Service struct {
	billRepo      BillRepository
	providerRepo  ProviderRepository
	promotionRepo PromotionRepository
	settingsRepo  SettingsRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса биллинга
func NewService(
	billRepo BillRepository,
	providerRepo ProviderRepository,
	promotionRepo PromotionRepository,
	settingsRepo SettingsRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		billRepo:      billRepo,
		providerRepo:  providerRepo,
		promotionRepo: promotionRepo,
		settingsRepo:  settingsRepo,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// ListProviderBills получает счета провайдера со сводкой задолженности
// NetDue = max(0, сумма комиссий по неоплаченным счетам - сумма кредитов)
func (s *Service) ListProviderBills(ctx context.Context, providerID int64) (*models.BillListResponse, error) {
	s.logger.Info("ListProviderBills: fetching bills for provider=%d", providerID)

	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListProviderBills: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListProviderBills - repository error: %v", ErrInternal, err)
	}

	unpaidFees, err := s.billRepo.SumUnpaidFees(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProviderBills - sum unpaid fees: %v", ErrInternal, err)
	}

	credits, err := s.billRepo.SumCredits(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProviderBills - sum credits: %v", ErrInternal, err)
	}

	netDue := unpaidFees - credits
	if netDue < 0 {
		netDue = 0
	}

	now := s.timeProvider.Now()
	items := make([]*models.BillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, models.FromDomainBill(bill, now))
	}

	s.logger.Info("ListProviderBills: provider=%d has %d bills, netDue=%.2f", providerID, len(items), netDue)
	return &models.BillListResponse{
		ProviderID:    providerID,
		AccountNumber: provider.AccountNumber,
		Bills:         items,
		UnpaidFees:    unpaidFees,
		Credits:       credits,
		NetDue:        netDue,
	}, nil
}

// MarkBillPaid помечает счет оплаченным
// Повторная оплата не является ошибкой
func (s *Service) MarkBillPaid(ctx context.Context, billID int64) error {
	s.logger.Info("MarkBillPaid: marking bill=%d as paid", billID)

	if err := s.billRepo.MarkPaid(ctx, billID); err != nil {
		if errors.Is(err, billRepo.ErrBillNotFound) {
			s.logger.Warn("MarkBillPaid: bill=%d not found", billID)
			return ErrBillNotFound
		}
		s.logger.Error("MarkBillPaid: repository error for bill=%d: %v", billID, err)
		return fmt.Errorf("%w: MarkBillPaid - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkBillPaid: bill=%d paid", billID)
	return nil
}

// ApplyBillCredit начисляет кредит провайдеру по номеру счета
// Кредит уменьшает чистую задолженность, но не изменяет сами счета
func (s *Service) ApplyBillCredit(ctx context.Context, req *models.ApplyCreditRequest) (*models.CreditResponse, error) {
	s.logger.Info("ApplyBillCredit: applying credit %.2f to account=%s", req.Amount, req.AccountNumber)

	if req.Amount <= 0 {
		s.logger.Warn("ApplyBillCredit: non-positive amount %.2f for account=%s", req.Amount, req.AccountNumber)
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrInvalidInput)
	}

	accountNumber := req.AccountNumber
	if accountNumber == "" {
		if req.ProviderEmail == "" {
			s.logger.Warn("ApplyBillCredit: neither account number nor provider email given")
			return nil, fmt.Errorf("%w: account number or provider email required", ErrInvalidInput)
		}
		// Номер счета детерминированно выводится из email провайдера
		accountNumber = providerRepo.AccountNumberForEmail(req.ProviderEmail)
	}

	provider, err := s.providerRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("ApplyBillCredit: account=%s not found", accountNumber)
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("%w: ApplyBillCredit - repository error: %v", ErrInternal, err)
	}

	credit, err := s.billRepo.CreateCredit(ctx, &domain.BillCredit{
		ProviderID: provider.ID,
		Amount:     req.Amount,
	})
	if err != nil {
		s.logger.Error("ApplyBillCredit: repository error for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: ApplyBillCredit - create credit: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyBillCredit: credit id=%d of %.2f applied to provider=%d", credit.ID, credit.Amount, provider.ID)
	return models.FromDomainCredit(credit), nil
}

// GetServiceCharge возвращает текущий процент комиссии платформы
func (s *Service) GetServiceCharge(ctx context.Context) (*models.ServiceChargeResponse, error) {
	pct, err := s.settingsRepo.GetServiceChargePercentage(ctx)
	if err != nil {
		s.logger.Error("GetServiceCharge: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetServiceCharge - repository error: %v", ErrInternal, err)
	}
	return &models.ServiceChargeResponse{ServiceChargePercentage: pct}, nil
}

// UpdateServiceCharge устанавливает процент комиссии платформы
// Значение прижимается к диапазону [0, 100]
func (s *Service) UpdateServiceCharge(ctx context.Context, pct float64) (*models.ServiceChargeResponse, error) {
	s.logger.Info("UpdateServiceCharge: setting service charge to %.2f%%", pct)

	stored, err := s.settingsRepo.UpdateServiceChargePercentage(ctx, pct)
	if err != nil {
		s.logger.Error("UpdateServiceCharge: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateServiceCharge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServiceCharge: service charge set to %.2f%%", stored)
	return &models.ServiceChargeResponse{ServiceChargePercentage: stored}, nil
}

// UpsertPromotion устанавливает лимит бесплатных бронирований провайдера
func (s *Service) UpsertPromotion(ctx context.Context, req *models.UpdatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("UpsertPromotion: setting free bookings limit=%d for provider=%d", req.FreeBookingsTotal, req.ProviderID)

	if req.FreeBookingsTotal < 0 {
		return nil, fmt.Errorf("%w: free bookings limit must not be negative", ErrInvalidInput)
	}

	if _, err := s.getProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	promo, err := s.promotionRepo.Upsert(ctx, req.ProviderID, req.FreeBookingsTotal)
	if err != nil {
		s.logger.Error("UpsertPromotion: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: UpsertPromotion - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertPromotion: provider=%d limit=%d used=%d", promo.ProviderID, promo.FreeBookingsTotal, promo.FreeBookingsUsed)
	return models.FromDomainPromotion(promo), nil
}

func (s *Service) getProvider(ctx context.Context, providerID int64) (*domain.Provider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("%w: getProvider - repository error: %v", ErrInternal, err)
	}
	return provider, nil
}
