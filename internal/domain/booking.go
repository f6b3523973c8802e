package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a customer's reservation of a provider time slot
type Booking struct {
	ID         int64
	CustomerID int64
	ProviderID int64 // денормализовано из услуги: календарь у провайдера общий
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time // фиксируется при создании; поздние правки услуги не меняют историю
	Status     BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	FeeExempt    bool // бронирование покрыто промо-акцией, комиссия не начисляется

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies provider time
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusPending
}

// IsFinishedBy returns true if the booking has already ended at the given moment
// Статус "completed" вычисляемый: отдельного перехода в БД нет
func (b *Booking) IsFinishedBy(now time.Time) bool {
	return !b.EndTime.After(now)
}

// Overlaps returns true if [start, end) intersects the booking interval
// Граничащие интервалы пересечением не считаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// ProviderBookingsFilter фильтр для выборки бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64      // Обязательный параметр
	StartTimeFrom   *time.Time // Нижняя граница start_time (опционально)
	StartTimeBefore *time.Time // Верхняя граница start_time, не включается (опционально)
	EndTimeAfter    *time.Time // Только бронирования, заканчивающиеся после указанного момента
	Status          *BookingStatus
	ForUpdate       bool // Блокировать строки в рамках активной транзакции
}
