package generate_bills

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	billRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/billing"
)

// UseCase use case генерации месячных счетов за комиссию платформы
type UseCase struct {
	providerRepo ProviderRepository
	bookingRepo  BookingRepository
	billRepo     BillRepository
	settingsRepo SettingsRepository
	userRepo     UserRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	bookingRepo BookingRepository,
	billRepo BillRepository,
	settingsRepo SettingsRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		billRepo:     billRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute генерирует счета всех провайдеров за целевой месяц
// Прогон идемпотентен: повторный запуск обновляет неоплаченные счета,
// оплаченные не трогает, дубликатов не создает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	target := req.Month
	if target.IsZero() {
		target = now
	}

	monthStart := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
	if monthStart.After(now) {
		uc.logger.Warn("GenerateBills: month %s is in the future", monthStart.Format("2006-01"))
		return nil, fmt.Errorf("%w: month must not be in the future", ErrInvalidInput)
	}

	// Окно расчета: незакончившийся месяц обрезается по now
	windowEnd := monthStart.AddDate(0, 1, 0)
	if windowEnd.After(now) {
		windowEnd = now
	}

	// Срок оплаты: 15-е число следующего месяца
	dueDate := time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, monthStart.Location()).
		AddDate(0, 1, domain.BillDueDayOfMonth-1)

	uc.logger.Info("GenerateBills: month=%s, window end=%s", monthStart.Format("2006-01"), windowEnd.Format(domain.DateTimeFormat))

	// Процент комиссии фиксируется один раз на весь прогон
	pct, err := uc.settingsRepo.GetServiceChargePercentage(ctx)
	if err != nil {
		uc.logger.Error("GenerateBills: failed to get service charge: %v", err)
		return nil, fmt.Errorf("%w: failed to get service charge: %v", ErrInternal, err)
	}
	pct = domain.ClampServiceCharge(pct)

	providers, err := uc.providerRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Error("GenerateBills: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	response := &Response{Month: monthStart.Format("2006-01")}
	var createdBills []*domain.Bill

	// Один прогон - одна транзакция: частично выставленных месяцев не бывает
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, provider := range providers {
			bill, err := uc.processProvider(txCtx, provider, monthStart, windowEnd, dueDate, pct, response)
			if err != nil {
				return err
			}
			if bill != nil {
				createdBills = append(createdBills, bill)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateBills: month=%s done, created=%d updated=%d skipped=%d",
		response.Month, response.Created, response.Updated, response.Skipped)

	// Уведомления после коммита, best-effort
	for _, bill := range createdBills {
		uc.notifyProvider(ctx, bill)
	}

	return response, nil
}

// processProvider выставляет или актуализирует счет одного провайдера
// Возвращает счет, если он был создан в этом прогоне
func (uc *UseCase) processProvider(
	ctx context.Context,
	provider *domain.Provider,
	monthStart, windowEnd, dueDate time.Time,
	pct float64,
	response *Response,
) (*domain.Bill, error) {
	// Выручка по завершившимся в окне бронированиям, промо-бронирования не входят
	total, err := uc.bookingRepo.SumBillableForProvider(ctx, provider.ID, monthStart, windowEnd)
	if err != nil {
		uc.logger.Error("GenerateBills: failed to sum billable for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: failed to sum billable total: %v", ErrInternal, err)
	}

	fee := total * pct / 100

	existing, err := uc.billRepo.GetByProviderAndMonth(ctx, provider.ID, monthStart)
	if err != nil && !errors.Is(err, billRepo.ErrBillNotFound) {
		uc.logger.Error("GenerateBills: failed to get bill for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: failed to get bill: %v", ErrInternal, err)
	}

	switch {
	case existing != nil && existing.IsPaid:
		// Оплаченный счет неизменяем
		uc.logger.Info("GenerateBills: provider=%d bill id=%d already paid, skipping", provider.ID, existing.ID)
		response.Skipped++
		return nil, nil

	case existing != nil:
		if err := uc.billRepo.UpdateTotals(ctx, existing.ID, total, fee); err != nil {
			uc.logger.Error("GenerateBills: failed to update bill id=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to update bill: %v", ErrInternal, err)
		}
		uc.logger.Info("GenerateBills: provider=%d bill id=%d updated, total=%.2f fee=%.2f",
			provider.ID, existing.ID, total, fee)
		response.Updated++
		return nil, nil

	case total == 0:
		// Без выручки счет не выставляется
		response.Skipped++
		return nil, nil

	default:
		created, err := uc.billRepo.Create(ctx, &domain.Bill{
			ProviderID: provider.ID,
			Month:      monthStart,
			Total:      total,
			Fee:        fee,
			DueDate:    dueDate,
		})
		if err != nil {
			uc.logger.Error("GenerateBills: failed to create bill for provider=%d: %v", provider.ID, err)
			return nil, fmt.Errorf("%w: failed to create bill: %v", ErrInternal, err)
		}
		uc.logger.Info("GenerateBills: provider=%d bill id=%d created, total=%.2f fee=%.2f due=%s",
			provider.ID, created.ID, total, fee, dueDate.Format(domain.DateFormat))
		response.Created++
		return created, nil
	}
}

// notifyProvider уведомляет провайдера о новом счете
func (uc *UseCase) notifyProvider(ctx context.Context, bill *domain.Bill) {
	provider, err := uc.providerRepo.GetByID(ctx, bill.ProviderID)
	if err != nil {
		uc.logger.Warn("GenerateBills: failed to load provider=%d for notification: %v", bill.ProviderID, err)
		return
	}

	providerUser, err := uc.userRepo.GetByID(ctx, provider.UserID)
	if err != nil {
		uc.logger.Warn("GenerateBills: failed to load provider user=%d for notification: %v", provider.UserID, err)
		return
	}

	uc.notifier.NewBill(ctx, providerUser, bill)
}
