package get_availability

import (
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// buildDaySlots строит свободные слоты одного календарного дня
// Слоты идут с шагом длительности услуги от начала рабочего дня;
// слот попадает в результат, только если целиком помещается до конца дня.
// Слоты, начинающиеся не позже now, отбрасываются без сдвига сетки.
// Закрытый или некорректно заданный день слотов не дает
func buildDaySlots(date time.Time, rule *domain.WorkingHoursRule, durationMinutes int, bookings []*domain.Booking, now time.Time) []time.Time {
	if rule == nil || !rule.IsUsable() {
		return nil
	}

	dayStart, err := rule.StartTime.At(date)
	if err != nil {
		return nil
	}
	dayEnd, err := rule.EndTime.At(date)
	if err != nil {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute

	var slots []time.Time
	for slotStart := dayStart; !slotStart.Add(duration).After(dayEnd); slotStart = slotStart.Add(duration) {
		if !slotStart.After(now) {
			continue
		}
		if hasConflict(slotStart, slotStart.Add(duration), bookings) {
			continue
		}
		slots = append(slots, slotStart)
	}

	return slots
}

// hasConflict проверяет пересечение слота с активными бронированиями
// Интервалы полуоткрытые: бронирование, заканчивающееся в начале слота, не мешает
func hasConflict(start, end time.Time, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// rulesByWeekday раскладывает правила недели по дню: 0 - воскресенье ... 6 - суббота
func rulesByWeekday(rules []*domain.WorkingHoursRule) map[int]*domain.WorkingHoursRule {
	byDay := make(map[int]*domain.WorkingHoursRule, domain.WeekdayCount)
	for _, rule := range rules {
		byDay[rule.Weekday] = rule
	}
	return byDay
}
