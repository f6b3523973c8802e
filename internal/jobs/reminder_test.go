package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

type fakeLogger struct{}

func (fakeLogger) Info(string, ...interface{})  {}
func (fakeLogger) Warn(string, ...interface{})  {}
func (fakeLogger) Error(string, ...interface{}) {}

type stubTime struct{ now time.Time }

func (s stubTime) Now() time.Time { return s.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
	from, to time.Time
}

func (f *fakeBookingRepo) GetConfirmedStartingBetween(_ context.Context, from, to time.Time) ([]*domain.Booking, error) {
	f.from = from
	f.to = to
	return f.bookings, nil
}

type fakeUserRepo struct{ users map[int64]*domain.User }

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

type fakeNotifier struct{ reminded []int64 }

func (f *fakeNotifier) BookingReminder(_ context.Context, _ *domain.User, booking *domain.Booking) {
	f.reminded = append(f.reminded, booking.ID)
}

func TestReminderJob_RunOnce(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, CustomerID: 100, StartTime: now.Add(time.Hour)},
		{ID: 2, CustomerID: 200, StartTime: now.Add(time.Hour)},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		100: {ID: 100},
		// клиент 200 не находится: его напоминание пропускается
	}}
	notifier := &fakeNotifier{}

	job := NewReminderJob(repo, users, notifier, stubTime{now: now}, time.Minute, fakeLogger{})
	job.RunOnce(context.Background())

	// Окно выборки: час вперед с минутным допуском в обе стороны
	assert.Equal(t, now.Add(59*time.Minute), repo.from)
	assert.Equal(t, now.Add(61*time.Minute), repo.to)

	require.Len(t, notifier.reminded, 1)
	assert.Equal(t, int64(1), notifier.reminded[0])
}

func TestReminderJob_SkipsWhilePreviousRunActive(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, CustomerID: 100, StartTime: now.Add(time.Hour)},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{100: {ID: 100}}}
	notifier := &fakeNotifier{}

	job := NewReminderJob(repo, users, notifier, stubTime{now: now}, time.Minute, fakeLogger{})

	// Имитируем незавершенный предыдущий проход
	job.running.Store(true)
	job.RunOnce(context.Background())
	assert.Empty(t, notifier.reminded)

	job.running.Store(false)
	job.RunOnce(context.Background())
	assert.Len(t, notifier.reminded, 1)
}
