package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/domain"
)

// Окно напоминаний: бронирования, начинающиеся примерно через час
// Минутный допуск в обе стороны покрывает дрейф тикера
const (
	reminderLead      = time.Hour
	reminderTolerance = time.Minute
)

// ReminderJob рассылает напоминания о бронированиях за час до начала
type ReminderJob struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	notifier     Notifier
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger

	running atomic.Bool
}

// NewReminderJob создает новый экземпляр задачи напоминаний
func NewReminderJob(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	interval time.Duration,
	logger Logger,
) *ReminderJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderJob{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		timeProvider: timeProvider,
		interval:     interval,
		logger:       logger,
	}
}

// Start запускает цикл напоминаний до отмены контекста
func (j *ReminderJob) Start(ctx context.Context) {
	j.logger.Info("ReminderJob: started, interval=%s", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("ReminderJob: stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход окна напоминаний
// Если предыдущий проход еще не закончился, новый пропускается
func (j *ReminderJob) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("ReminderJob: previous run still in progress, skipping")
		return
	}
	defer j.running.Store(false)

	now := j.timeProvider.Now()
	from := now.Add(reminderLead - reminderTolerance)
	to := now.Add(reminderLead + reminderTolerance)

	bookings, err := j.bookingRepo.GetConfirmedStartingBetween(ctx, from, to)
	if err != nil {
		j.logger.Error("ReminderJob: failed to get upcoming bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		j.remind(ctx, booking)
	}

	if len(bookings) > 0 {
		j.logger.Info("ReminderJob: sent %d reminders", len(bookings))
	}
}

func (j *ReminderJob) remind(ctx context.Context, booking *domain.Booking) {
	customer, err := j.userRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		j.logger.Warn("ReminderJob: failed to load customer=%d for booking=%d: %v", booking.CustomerID, booking.ID, err)
		return
	}

	j.notifier.BookingReminder(ctx, customer, booking)
}
