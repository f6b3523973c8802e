package get_availability

// Request модель запроса доступных слотов
type Request struct {
	ProviderID int64 // ID провайдера, которому должна принадлежать услуга
	ServiceID  int64 // ID услуги
	Days       int   // Горизонт календаря в днях, 0 - значение по умолчанию
}

// Day доступные слоты одного календарного дня
type Day struct {
	Date  string   `json:"date"`  // "2025-10-15"
	Slots []string `json:"slots"` // ["09:00", "10:00", ...]
}

// Response модель ответа с календарем доступности
// Дни без единого свободного слота в календарь не попадают
type Response struct {
	ServiceID       int64  `json:"serviceId"`
	ProviderID      int64  `json:"providerId"`
	DurationMinutes int    `json:"durationMinutes"`
	Days            []*Day `json:"days"`
}
