package domain

import "time"

// User учетная запись платформы (клиент, провайдер или администратор)
// Аутентификация выполняется на уровне шлюза; здесь нужны только
// контактные данные для уведомлений и флаги ролей
type User struct {
	ID            int64
	Email         string
	FullName      string
	Phone         string
	Whatsapp      *string // формат whatsapp:+592xxxxxxx
	ExpoPushToken *string
	IsProvider    bool
	IsAdmin       bool
	CreatedAt     time.Time
}

// Provider исполнитель услуг
type Provider struct {
	ID            int64
	UserID        int64
	Bio           string
	AccountNumber string // детерминированный номер счета ACC-XXXXXXXX
}

// Service услуга провайдера
// DurationMinutes задает фиксированную длину слота для этой услуги
type Service struct {
	ID              int64
	ProviderID      int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}
