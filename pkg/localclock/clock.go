package localclock

import (
	"fmt"
	"time"
)

// Clock отдает текущее локальное гражданское время платформы в naive-виде
// (без привязки к зоне). Все даты и времена в БД хранятся naive в этой же
// зоне, поэтому сравнения остаются согласованными
type Clock struct {
	loc *time.Location
}

// New создает Clock для указанной IANA-зоны (например "America/Guyana")
func New(tzName string) (*Clock, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("localclock: load location %q: %w", tzName, err)
	}
	return &Clock{loc: loc}, nil
}

// Now возвращает текущее локальное время с отброшенной зоной
// Результат имеет location UTC, но его компоненты (год, час, минута)
// соответствуют локальной стене часов платформы
func (c *Clock) Now() time.Time {
	now := time.Now().In(c.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
}
