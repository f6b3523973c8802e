package domain

import (
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/pkg/types"
)

// WorkingHoursRule правило рабочих часов провайдера на один день недели
// Ровно одна строка на пару (провайдер, день недели)
type WorkingHoursRule struct {
	ID         int64
	ProviderID int64
	Weekday    int // 0 = воскресенье ... 6 = суббота, как в time.Weekday
	IsClosed   bool
	StartTime  *types.TimeString // обязательны, если день открыт
	EndTime    *types.TimeString
}

// IsUsable returns true if the rule describes an open day with a valid window
// Некорректные строки времени не ошибка: такой день просто пропускается
func (w *WorkingHoursRule) IsUsable() bool {
	if w.IsClosed || w.StartTime == nil || w.EndTime == nil {
		return false
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(*w.EndTime)
}

// DayAvailability доступные слоты на один календарный день
// Дни без слотов в выдачу не попадают
type DayAvailability struct {
	Date  time.Time   // календарная дата (время обнулено)
	Slots []time.Time // локальные naive-времена начала слотов, по возрастанию
}
