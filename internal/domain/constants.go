package domain

// Default configuration values
const (
	DefaultAvailabilityHorizonDays = 14
	DefaultServiceChargePct        = 10.0
	BillDueDayOfMonth              = 15

	// Дефолтные рабочие часы для лениво создаваемых правил (все дни закрыты)
	DefaultWorkingHoursStart = "09:00"
	DefaultWorkingHoursEnd   = "17:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxAvailabilityHorizon    = 365
	MaxServiceNameLength      = 200
	WeekdayCount              = 7
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // naive local timestamp
)

// ActiveStatuses статусы бронирований, занимающих время провайдера
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
