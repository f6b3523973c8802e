package create_booking

import "time"

// Request модель запроса на создание бронирования
// StartTime - наивное локальное время начала слота
type Request struct {
	CustomerID int64     // ID клиента
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Начало слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	CustomerID int64     // ID клиента
	ProviderID int64     // ID провайдера
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Начало слота
	EndTime    time.Time // Конец слота
	Status     string    // Статус бронирования

	// Денормализованный снимок услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	FeeExempt    bool    // Бронирование покрыто промо-акцией

	CreatedAt time.Time // Время создания
}
