package notifications

import (
	"context"
	"fmt"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// Service диспетчер уведомлений: push через Expo и WhatsApp через Twilio
// Все отправки best-effort: ошибки логируются и не прерывают бизнес-операцию
type Service struct {
	pushClient     ExpoPushClient
	whatsappClient WhatsAppClient
	logger         Logger
}

// NewService создает новый экземпляр диспетчера уведомлений
func NewService(pushClient ExpoPushClient, whatsappClient WhatsAppClient, logger Logger) *Service {
	return &Service{
		pushClient:     pushClient,
		whatsappClient: whatsappClient,
		logger:         logger,
	}
}

// BookingConfirmed уведомляет клиента и провайдера о новом бронировании
func (s *Service) BookingConfirmed(ctx context.Context, customer, providerUser *domain.User, booking *domain.Booking) {
	when := booking.StartTime.Format(domain.DateTimeFormat)

	s.notify(ctx, customer,
		"Booking confirmed",
		fmt.Sprintf("Your booking for %s on %s is confirmed.", booking.ServiceName, when),
	)
	s.notify(ctx, providerUser,
		"New booking",
		fmt.Sprintf("New booking for %s on %s.", booking.ServiceName, when),
	)
}

// BookingCancelled уведомляет другую сторону об отмене бронирования
func (s *Service) BookingCancelled(ctx context.Context, recipient *domain.User, booking *domain.Booking) {
	when := booking.StartTime.Format(domain.DateTimeFormat)

	s.notify(ctx, recipient,
		"Booking cancelled",
		fmt.Sprintf("Booking for %s on %s was cancelled.", booking.ServiceName, when),
	)
}

// BookingReminder напоминает клиенту о бронировании за час до начала
func (s *Service) BookingReminder(ctx context.Context, customer *domain.User, booking *domain.Booking) {
	s.notify(ctx, customer,
		"Upcoming booking",
		fmt.Sprintf("Reminder: %s starts at %s.", booking.ServiceName, booking.StartTime.Format(domain.TimeFormat)),
	)
}

// NewBill уведомляет провайдера о выставленном счете
func (s *Service) NewBill(ctx context.Context, providerUser *domain.User, bill *domain.Bill) {
	s.notify(ctx, providerUser,
		"New platform bill",
		fmt.Sprintf("Your bill for %s is %.2f, due %s.",
			bill.Month.Format("January 2006"), bill.Fee, bill.DueDate.Format(domain.DateFormat)),
	)
}

// notify доставляет сообщение по всем доступным каналам получателя
func (s *Service) notify(ctx context.Context, user *domain.User, title, body string) {
	if user == nil {
		return
	}

	delivered := false

	if user.ExpoPushToken != nil && *user.ExpoPushToken != "" {
		if err := s.pushClient.Send(ctx, *user.ExpoPushToken, title, body); err != nil {
			s.logger.Warn("notify: push delivery failed for user=%d: %v", user.ID, err)
		} else {
			delivered = true
		}
	}

	if user.Whatsapp != nil && *user.Whatsapp != "" {
		if err := s.whatsappClient.SendWhatsApp(ctx, *user.Whatsapp, title+": "+body); err != nil {
			s.logger.Warn("notify: whatsapp delivery failed for user=%d: %v", user.ID, err)
		} else {
			delivered = true
		}
	}

	if !delivered {
		s.logger.Info("notify: no channel reached user=%d, title=%q", user.ID, title)
	}
}
