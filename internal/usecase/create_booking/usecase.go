package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	promotionRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/promotion"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	serviceRepo   ServiceRepository
	providerRepo  ProviderRepository
	userRepo      UserRepository
	billRepo      BillRepository
	promotionRepo PromotionRepository
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	providerRepo ProviderRepository,
	userRepo UserRepository,
	billRepo BillRepository,
	promotionRepo PromotionRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		serviceRepo:   serviceRepo,
		providerRepo:  providerRepo,
		userRepo:      userRepo,
		billRepo:      billRepo,
		promotionRepo: promotionRepo,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости слота и вставка идут в одной сериализуемой транзакции:
// из двух конкурентных запросов на один слот ровно один завершается успехом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, start=%s",
		req.CustomerID, req.ServiceID, req.StartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее локальное время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Прошлое бронировать нельзя
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateBooking: start=%s is in the past", req.StartTime.Format(domain.DateTimeFormat))
		return nil, ErrPastTime
	}

	endTime := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	var result *domain.Booking

	// 5. Сериализуемая транзакция: блокировка провайдера, занятость слота, промо, вставка
	// Причины ошибок внутри транзакции оборачиваются через %w:
	// менеджер транзакций ищет в цепочке коды конфликтов сериализации
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Провайдер с просроченным неоплаченным счетом не принимает бронирования
		locked, err := uc.billRepo.HasOverdueUnpaid(txCtx, service.ProviderID, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check provider lock for provider=%d: %v", service.ProviderID, err)
			return fmt.Errorf("%w: failed to check provider lock: %w", ErrInternal, err)
		}
		if locked {
			uc.logger.Warn("CreateBooking: provider=%d is locked by overdue bill", service.ProviderID)
			return ErrProviderLocked
		}

		// 5.2. Перепроверяем занятость слота под блокировкой строк (FOR UPDATE)
		// Конфликт считается по всем услугам провайдера
		bookings, err := uc.bookingRepo.GetByProviderWithFilter(txCtx, domain.ProviderBookingsFilter{
			ProviderID:      service.ProviderID,
			StartTimeBefore: &endTime,
			EndTimeAfter:    &req.StartTime,
			ForUpdate:       true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for provider=%d: %v", service.ProviderID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		for _, booking := range bookings {
			if booking.IsActive() && booking.Overlaps(req.StartTime, endTime) {
				uc.logger.Warn("CreateBooking: slot %s taken by booking id=%d",
					req.StartTime.Format(domain.DateTimeFormat), booking.ID)
				return ErrSlotNotAvailable
			}
		}

		// 5.3. Промо-акция: пока есть бесплатные бронирования, комиссия не начисляется
		feeExempt := false
		promo, err := uc.promotionRepo.GetByProviderID(txCtx, service.ProviderID)
		if err != nil && !errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			uc.logger.Error("CreateBooking: failed to get promotion for provider=%d: %v", service.ProviderID, err)
			return fmt.Errorf("%w: failed to get promotion: %w", ErrInternal, err)
		}
		if promo != nil && promo.HasFreeBookings() {
			if err := uc.promotionRepo.IncrementUsed(txCtx, promo.ID); err != nil {
				uc.logger.Error("CreateBooking: failed to consume promotion id=%d: %v", promo.ID, err)
				return fmt.Errorf("%w: failed to consume promotion: %w", ErrInternal, err)
			}
			feeExempt = true
			uc.logger.Info("CreateBooking: free booking %d/%d consumed for provider=%d",
				promo.FreeBookingsUsed+1, promo.FreeBookingsTotal, service.ProviderID)
		}

		// 5.4. Создаем бронирование со снимком услуги
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			CustomerID:   req.CustomerID,
			ProviderID:   service.ProviderID,
			ServiceID:    service.ID,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			Status:       domain.StatusConfirmed,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			FeeExempt:    feeExempt,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Уведомления после коммита, best-effort
	uc.sendNotifications(ctx, result)

	return &Response{
		ID:           result.ID,
		CustomerID:   result.CustomerID,
		ProviderID:   result.ProviderID,
		ServiceID:    result.ServiceID,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		FeeExempt:    result.FeeExempt,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// sendNotifications уведомляет клиента и провайдера о созданном бронировании
// Сбои доставки не влияют на результат: бронирование уже зафиксировано
func (uc *UseCase) sendNotifications(ctx context.Context, booking *domain.Booking) {
	customer, err := uc.userRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load customer=%d for notification: %v", booking.CustomerID, err)
		customer = nil
	}

	var providerUser *domain.User
	provider, err := uc.providerRepo.GetByID(ctx, booking.ProviderID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load provider=%d for notification: %v", booking.ProviderID, err)
	} else {
		providerUser, err = uc.userRepo.GetByID(ctx, provider.UserID)
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to load provider user=%d for notification: %v", provider.UserID, err)
			providerUser = nil
		}
	}

	uc.notifier.BookingConfirmed(ctx, customer, providerUser, booking)
}
