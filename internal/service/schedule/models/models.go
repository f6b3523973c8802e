package models

import (
	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// WorkingHoursDay правило рабочих часов на день недели
// Weekday: 0 - воскресенье ... 6 - суббота
type WorkingHoursDay struct {
	Weekday   int     `json:"weekday"`
	IsClosed  bool    `json:"isClosed"`
	StartTime *string `json:"startTime,omitempty"` // "09:00"
	EndTime   *string `json:"endTime,omitempty"`   // "17:00"
}

// WorkingHoursResponse расписание провайдера на неделю
type WorkingHoursResponse struct {
	ProviderID int64              `json:"providerId"`
	Days       []*WorkingHoursDay `json:"days"`
}

// UpdateWorkingHoursRequest запрос на замену расписания
type UpdateWorkingHoursRequest struct {
	ProviderID int64              `json:"providerId"`
	Days       []*WorkingHoursDay `json:"days"`
}

// FromDomainRules конвертирует domain-правила в response
func FromDomainRules(providerID int64, rules []*domain.WorkingHoursRule) *WorkingHoursResponse {
	days := make([]*WorkingHoursDay, 0, len(rules))
	for _, rule := range rules {
		day := &WorkingHoursDay{
			Weekday:  rule.Weekday,
			IsClosed: rule.IsClosed,
		}
		if rule.StartTime != nil {
			start := rule.StartTime.String()
			day.StartTime = &start
		}
		if rule.EndTime != nil {
			end := rule.EndTime.String()
			day.EndTime = &end
		}
		days = append(days, day)
	}
	return &WorkingHoursResponse{
		ProviderID: providerID,
		Days:       days,
	}
}
