package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время внутри дня в формате "HH:MM" (например "09:00")
// Используется для рабочих часов и границ слотов
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")
)

const timeLayout = "15:04"

// parseClock строго парсит "HH:MM"
// time.Parse принимает "9:00" без ведущего нуля, поэтому длина проверяется отдельно
func parseClock(s string) (time.Time, error) {
	if len(s) != len(timeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed, nil
}

// NewTimeString создает TimeString из time.Time (отбрасывает дату)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseClock(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseClock(string(t))
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала дня
// "24:00" трактуется как конец дня (1440 минут)
func (t TimeString) Minutes() (int, error) {
	if t == "24:00" {
		return 24 * 60, nil
	}
	parsed, err := parseClock(string(t))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на m минут вперед
// Выход за границу суток считается ошибкой
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += m
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes is out of day range", ErrInvalidTimeString, string(t), m)
	}
	// 24:00 представляем как конец дня
	if total == 24*60 {
		return TimeString("24:00"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// At совмещает время внутри дня с календарной датой
func (t TimeString) At(date time.Time) (time.Time, error) {
	total, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, date.Location()), nil
}
