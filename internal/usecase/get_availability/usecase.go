package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
)

// UseCase use case построения календаря доступности услуги
type UseCase struct {
	serviceRepo      ServiceRepository
	workingHoursRepo WorkingHoursRepository
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	workingHoursRepo WorkingHoursRepository,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:      serviceRepo,
		workingHoursRepo: workingHoursRepo,
		bookingRepo:      bookingRepo,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute строит календарь свободных слотов услуги на горизонт в днях
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: provider=%d, service=%d, days=%d", req.ProviderID, req.ServiceID, req.Days)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	days := req.Days
	if days == 0 {
		days = domain.DefaultAvailabilityHorizonDays
	}

	// 2. Получаем текущее локальное время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Услуга должна принадлежать указанному провайдеру
	if service.ProviderID != req.ProviderID {
		uc.logger.Warn("GetAvailability: service id=%d does not belong to provider=%d", req.ServiceID, req.ProviderID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем недельное расписание провайдера
	// У нового провайдера расписания еще нет: лениво создаем 7 закрытых дней
	rules, err := uc.workingHoursRepo.GetByProviderID(ctx, service.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get working hours for provider=%d: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	if len(rules) == 0 {
		if err := uc.workingHoursRepo.CreateDefaults(ctx, service.ProviderID); err != nil {
			uc.logger.Error("GetAvailability: failed to create default working hours for provider=%d: %v", service.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to create default working hours: %v", ErrInternal, err)
		}
		rules, err = uc.workingHoursRepo.GetByProviderID(ctx, service.ProviderID)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to reload working hours for provider=%d: %v", service.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to reload working hours: %v", ErrInternal, err)
		}
		uc.logger.Info("GetAvailability: default working hours created for provider=%d", service.ProviderID)
	}

	// 5. Получаем бронирования провайдера, попадающие в окно календаря
	// Конфликт считается по всем услугам провайдера: календарь у него один
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := windowStart.AddDate(0, 0, days)

	bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID:      service.ProviderID,
		StartTimeBefore: &windowEnd,
		EndTimeAfter:    &windowStart,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for provider=%d: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Обходим дни горизонта и собираем свободные слоты
	byWeekday := rulesByWeekday(rules)

	response := &Response{
		ServiceID:       service.ID,
		ProviderID:      service.ProviderID,
		DurationMinutes: service.DurationMinutes,
		Days:            make([]*Day, 0, days),
	}

	for i := 0; i < days; i++ {
		date := windowStart.AddDate(0, 0, i)
		rule := byWeekday[int(date.Weekday())]

		slots := buildDaySlots(date, rule, service.DurationMinutes, bookings, now)
		if len(slots) == 0 {
			continue
		}

		day := &Day{
			Date:  date.Format(domain.DateFormat),
			Slots: make([]string, 0, len(slots)),
		}
		for _, slot := range slots {
			day.Slots = append(day.Slots, slot.Format(domain.TimeFormat))
		}
		response.Days = append(response.Days, day)
	}

	uc.logger.Info("GetAvailability: service=%d has %d days with free slots", service.ID, len(response.Days))
	return response, nil
}
