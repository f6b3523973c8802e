package generate_bills

import "time"

// Request модель запроса на генерацию счетов
// Month - любой момент внутри целевого месяца; нулевое значение - текущий месяц
type Request struct {
	Month time.Time
}

// Response сводка прогона генерации счетов
type Response struct {
	Month   string `json:"month"` // "2025-10"
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}
