package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	"github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule/models"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/types"
)

// Service сервис для работы с расписанием провайдеров
type Service struct {
	workingHoursRepo WorkingHoursRepository
	providerRepo     ProviderRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	workingHoursRepo WorkingHoursRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		providerRepo:     providerRepo,
		logger:           logger,
	}
}

// GetWorkingHours получает недельное расписание провайдера
// Если расписание еще не задано, создаются 7 закрытых дней по умолчанию
func (s *Service) GetWorkingHours(ctx context.Context, providerID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: fetching schedule for provider=%d", providerID)

	if err := s.checkProvider(ctx, providerID); err != nil {
		return nil, err
	}

	rules, err := s.getOrCreate(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainRules(providerID, rules), nil
}

// ReplaceWorkingHours заменяет недельное расписание провайдера
// Для открытых дней начало должно быть строго раньше конца
func (s *Service) ReplaceWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("ReplaceWorkingHours: updating schedule for provider=%d, days=%d", req.ProviderID, len(req.Days))

	if err := s.checkProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	rules := make([]*domain.WorkingHoursRule, 0, len(req.Days))
	for _, day := range req.Days {
		rule, err := s.toDomainRule(req.ProviderID, day)
		if err != nil {
			s.logger.Warn("ReplaceWorkingHours: invalid day rule for provider=%d, weekday=%d: %v", req.ProviderID, day.Weekday, err)
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := s.workingHoursRepo.ReplaceAll(ctx, req.ProviderID, rules); err != nil {
		s.logger.Error("ReplaceWorkingHours: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	stored, err := s.getOrCreate(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ReplaceWorkingHours: schedule updated for provider=%d", req.ProviderID)
	return models.FromDomainRules(req.ProviderID, stored), nil
}

// GetUsableRules возвращает domain-правила провайдера для расчета доступности
// Закрытые и некорректные дни не отфильтровываются: это решает вызывающая сторона
func (s *Service) GetUsableRules(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error) {
	return s.getOrCreate(ctx, providerID)
}

func (s *Service) getOrCreate(ctx context.Context, providerID int64) ([]*domain.WorkingHoursRule, error) {
	rules, err := s.workingHoursRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		s.logger.Error("getOrCreate: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: getOrCreate - repository error: %v", ErrInternal, err)
	}

	if len(rules) > 0 {
		return rules, nil
	}

	// Ленивая инициализация: 7 закрытых дней
	if err := s.workingHoursRepo.CreateDefaults(ctx, providerID); err != nil {
		s.logger.Error("getOrCreate: failed to create defaults for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: getOrCreate - create defaults: %v", ErrInternal, err)
	}

	rules, err = s.workingHoursRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("%w: getOrCreate - reload after defaults: %v", ErrInternal, err)
	}

	s.logger.Info("getOrCreate: default schedule created for provider=%d", providerID)
	return rules, nil
}

func (s *Service) toDomainRule(providerID int64, day *models.WorkingHoursDay) (*domain.WorkingHoursRule, error) {
	if day.Weekday < 0 || day.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	rule := &domain.WorkingHoursRule{
		ProviderID: providerID,
		Weekday:    day.Weekday,
		IsClosed:   day.IsClosed,
	}

	if day.IsClosed {
		return rule, nil
	}

	if day.StartTime == nil || day.EndTime == nil {
		return nil, ErrInvalidTimeFormat
	}

	start, err := types.NewTimeStringFromString(*day.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	end, err := types.NewTimeStringFromString(*day.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}

	if !start.IsBefore(end) {
		return nil, ErrInvalidTimeRange
	}

	rule.StartTime = &start
	rule.EndTime = &end
	return rule, nil
}

func (s *Service) checkProvider(ctx context.Context, providerID int64) error {
	if _, err := s.providerRepo.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return ErrProviderNotFound
		}
		return fmt.Errorf("%w: checkProvider - repository error: %v", ErrInternal, err)
	}
	return nil
}
