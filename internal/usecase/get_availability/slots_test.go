package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/types"
)

func openRule(weekday int, start, end string) *domain.WorkingHoursRule {
	s := types.TimeString(start)
	e := types.TimeString(end)
	return &domain.WorkingHoursRule{
		ProviderID: 1,
		Weekday:    weekday,
		IsClosed:   false,
		StartTime:  &s,
		EndTime:    &e,
	}
}

func slotTimes(t *testing.T, date time.Time, hhmm ...string) []time.Time {
	t.Helper()
	result := make([]time.Time, 0, len(hhmm))
	for _, v := range hhmm {
		at, err := types.TimeString(v).At(date)
		require.NoError(t, err)
		result = append(result, at)
	}
	return result
}

func TestBuildDaySlots_GridFromDayStart(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	// 09:00-17:00, слот 90 минут: последний помещающийся слот начинается в 15:00
	slots := buildDaySlots(date, openRule(1, "09:00", "17:00"), 90, nil, now)

	assert.Equal(t, slotTimes(t, date, "09:00", "10:30", "12:00", "13:30", "15:00"), slots)
}

func TestBuildDaySlots_PastSlotsDroppedWithoutShiftingGrid(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	// 10:07 текущего дня: слоты 09:00 и 10:30 из сетки 90 минут,
	// первый уже в прошлом, второй остается на месте сетки
	now := time.Date(2026, 3, 9, 10, 7, 0, 0, time.UTC)

	slots := buildDaySlots(date, openRule(1, "09:00", "17:00"), 90, nil, now)

	assert.Equal(t, slotTimes(t, date, "10:30", "12:00", "13:30", "15:00"), slots)
}

func TestBuildDaySlots_SlotStartingNowIsDropped(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	slots := buildDaySlots(date, openRule(1, "09:00", "12:00"), 60, nil, now)

	// Слот ровно в now бронировать уже нельзя
	assert.Equal(t, slotTimes(t, date, "10:00", "11:00"), slots)
}

func TestBuildDaySlots_ConflictsRemoveOverlappingSlots(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	bookedStart := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusConfirmed,
			StartTime: bookedStart,
			EndTime:   bookedStart.Add(90 * time.Minute),
		},
	}

	slots := buildDaySlots(date, openRule(1, "09:00", "17:00"), 90, bookings, now)

	// Бронирование 10:30-12:00 выбивает только слот 10:30:
	// интервалы полуоткрытые, слот 12:00 остается свободным
	assert.Equal(t, slotTimes(t, date, "09:00", "12:00", "13:30", "15:00"), slots)
}

func TestBuildDaySlots_BackToBackBookingDoesNotConflict(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	// Бронирование заканчивается ровно в 10:00: слот 10:00 свободен
	bookings := []*domain.Booking{
		{
			Status:    domain.StatusConfirmed,
			StartTime: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		},
	}

	slots := buildDaySlots(date, openRule(1, "09:00", "12:00"), 60, bookings, now)

	assert.Equal(t, slotTimes(t, date, "10:00", "11:00"), slots)
}

func TestBuildDaySlots_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	bookings := []*domain.Booking{
		{
			Status:    domain.StatusCancelled,
			StartTime: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		},
	}

	slots := buildDaySlots(date, openRule(1, "09:00", "11:00"), 60, bookings, now)

	assert.Equal(t, slotTimes(t, date, "09:00", "10:00"), slots)
}

func TestBuildDaySlots_ClosedOrBrokenDaysYieldNothing(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	closed := openRule(1, "09:00", "17:00")
	closed.IsClosed = true
	assert.Nil(t, buildDaySlots(date, closed, 60, nil, now))

	// Отсутствие правила на день
	assert.Nil(t, buildDaySlots(date, nil, 60, nil, now))

	// Начало не раньше конца
	assert.Nil(t, buildDaySlots(date, openRule(1, "17:00", "09:00"), 60, nil, now))

	// Некорректная строка времени
	broken := openRule(1, "9am", "17:00")
	assert.Nil(t, buildDaySlots(date, broken, 60, nil, now))
}

func TestBuildDaySlots_SlotMustFitEntirely(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := date.Add(-24 * time.Hour)

	// Окно 09:00-10:30, слот 60 минут: второй слот 10:00-11:00 не помещается
	slots := buildDaySlots(date, openRule(1, "09:00", "10:30"), 60, nil, now)

	assert.Equal(t, slotTimes(t, date, "09:00"), slots)
}

func TestRulesByWeekday(t *testing.T) {
	rules := []*domain.WorkingHoursRule{
		openRule(0, "09:00", "17:00"),
		openRule(3, "10:00", "16:00"),
	}

	byDay := rulesByWeekday(rules)

	require.Len(t, byDay, 2)
	assert.Equal(t, rules[0], byDay[0])
	assert.Equal(t, rules[1], byDay[3])
	assert.Nil(t, byDay[1])
}
