package domain

import "time"

// Bill месячный счет провайдера за комиссию платформы
// Ровно один счет на пару (провайдер, месяц) — upsert, дубликаты запрещены
type Bill struct {
	ID         int64
	ProviderID int64
	Month      time.Time // первое число месяца
	Total      float64   // выручка по завершенным бронированиям за месяц
	Fee        float64   // Total * service_charge_percentage / 100
	IsPaid     bool
	DueDate    time.Time // 15-е число следующего месяца
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOverdue returns true if the bill is unpaid past its due date
func (b *Bill) IsOverdue(now time.Time) bool {
	return !b.IsPaid && b.DueDate.Before(now)
}

// BillCredit ручная корректировка задолженности провайдера
// Журнал только добавляется, записи не изменяются и не удаляются
type BillCredit struct {
	ID         int64
	ProviderID int64
	Amount     float64
	CreatedAt  time.Time
}

// Promotion лимит бесплатных бронирований провайдера
type Promotion struct {
	ID                int64
	ProviderID        int64
	FreeBookingsTotal int
	FreeBookingsUsed  int
}

// HasFreeBookings returns true if the promotion still has unused free bookings
func (p *Promotion) HasFreeBookings() bool {
	return p.FreeBookingsUsed < p.FreeBookingsTotal
}

// ClampUsed прижимает счетчик использованных к новому лимиту
// Used никогда не превышает Total
func (p *Promotion) ClampUsed() {
	if p.FreeBookingsUsed > p.FreeBookingsTotal {
		p.FreeBookingsUsed = p.FreeBookingsTotal
	}
}

// PlatformSettings платформенные настройки биллинга
type PlatformSettings struct {
	ID                      int64
	ServiceChargePercentage float64
}

// ClampServiceCharge обрезает процент комиссии до диапазона [0, 100]
func ClampServiceCharge(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
