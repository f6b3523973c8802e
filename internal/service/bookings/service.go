package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	bookingRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/booking"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings/models"
)

// Области выборки бронирований провайдера
const (
	ScopeToday    = "today"
	ScopeUpcoming = "upcoming"
	ScopeAll      = "all"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	userRepo     UserRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	userRepo UserRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetUserBookings получает историю бронирований клиента
func (s *Service) GetUserBookings(ctx context.Context, customerID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for customer=%d", customerID)

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for customer=%d", len(bookings), customerID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetProviderBookings получает бронирования провайдера по области выборки
// today - начинающиеся сегодня, upcoming - активные будущие, all - вся история
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%d, scope=%s", req.ProviderID, req.Scope)

	now := s.timeProvider.Now()

	filter, err := s.buildScopeFilter(req.ProviderID, req.Scope, now)
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid scope=%s for provider=%d", req.Scope, req.ProviderID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings, now), nil
}

// CancelAsCustomer отменяет бронирование от имени клиента
// Повторная отмена и отмена завершенного бронирования не являются ошибкой:
// бронирование возвращается без изменений
func (s *Service) CancelAsCustomer(ctx context.Context, bookingID, customerID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelAsCustomer: cancelling booking=%d by customer=%d", bookingID, customerID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != customerID {
		s.logger.Warn("CancelAsCustomer: access denied for customer=%d to booking=%d", customerID, bookingID)
		return nil, ErrAccessDenied
	}

	booking, changed, err := s.cancel(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Уведомляем провайдера об отмене
	if changed {
		if provider, perr := s.providerRepo.GetByID(ctx, booking.ProviderID); perr == nil {
			if providerUser, uerr := s.userRepo.GetByID(ctx, provider.UserID); uerr == nil {
				s.notifier.BookingCancelled(ctx, providerUser, booking)
			}
		}
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// CancelAsProvider отменяет бронирование от имени провайдера
func (s *Service) CancelAsProvider(ctx context.Context, bookingID, providerID int64) (*models.BookingResponse, error) {
	s.logger.Info("CancelAsProvider: cancelling booking=%d by provider=%d", bookingID, providerID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ProviderID != providerID {
		s.logger.Warn("CancelAsProvider: access denied for provider=%d to booking=%d", providerID, bookingID)
		return nil, ErrAccessDenied
	}

	booking, changed, err := s.cancel(ctx, booking)
	if err != nil {
		return nil, err
	}

	// Уведомляем клиента об отмене
	if changed {
		if customer, uerr := s.userRepo.GetByID(ctx, booking.CustomerID); uerr == nil {
			s.notifier.BookingCancelled(ctx, customer, booking)
		}
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

func (s *Service) getBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// cancel переводит бронирование в cancelled и возвращает признак изменения
// Повторная отмена и отмена завершенного бронирования являются no-op
func (s *Service) cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, bool, error) {
	if !booking.CanBeCancelled() {
		s.logger.Info("cancel: booking=%d in status=%s, nothing to do", booking.ID, booking.Status)
		return booking, false, nil
	}

	// Завершенное бронирование уже участвует в биллинге и отмене не подлежит
	if booking.IsFinishedBy(s.timeProvider.Now()) {
		s.logger.Info("cancel: booking=%d already finished, nothing to do", booking.ID)
		return booking, false, nil
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID); err != nil {
		s.logger.Error("cancel: repository error for booking=%d: %v", booking.ID, err)
		return nil, false, fmt.Errorf("%w: cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("cancel: reload error for booking=%d: %v", booking.ID, err)
		return nil, false, fmt.Errorf("%w: cancel - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("cancel: booking=%d cancelled", booking.ID)
	return cancelled, true, nil
}

func (s *Service) buildScopeFilter(providerID int64, scope string, now time.Time) (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{ProviderID: providerID}

	switch scope {
	case ScopeToday:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		filter.StartTimeFrom = &dayStart
		filter.StartTimeBefore = &dayEnd
	case ScopeUpcoming:
		from := now
		status := domain.StatusConfirmed
		filter.StartTimeFrom = &from
		filter.Status = &status
	case ScopeAll, "":
		// Без ограничений
	default:
		return filter, ErrInvalidScope
	}

	return filter, nil
}
