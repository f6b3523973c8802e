package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bookitgy/BookitGY-Marketplace/internal/usecase/generate_bills"
)

// BillingJob периодически прогоняет генерацию счетов за текущий месяц
// Генерация идемпотентна, поэтому частые прогоны безопасны
type BillingJob struct {
	generator    BillsGenerator
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger

	running atomic.Bool
}

// NewBillingJob создает новый экземпляр задачи биллинга
func NewBillingJob(
	generator BillsGenerator,
	timeProvider TimeProvider,
	interval time.Duration,
	logger Logger,
) *BillingJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BillingJob{
		generator:    generator,
		timeProvider: timeProvider,
		interval:     interval,
		logger:       logger,
	}
}

// Start запускает цикл биллинга до отмены контекста
func (j *BillingJob) Start(ctx context.Context) {
	j.logger.Info("BillingJob: started, interval=%s", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("BillingJob: stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один прогон генерации счетов
func (j *BillingJob) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("BillingJob: previous run still in progress, skipping")
		return
	}
	defer j.running.Store(false)

	result, err := j.generator.Execute(ctx, &generate_bills.Request{Month: j.timeProvider.Now()})
	if err != nil {
		j.logger.Error("BillingJob: bills generation failed: %v", err)
		return
	}

	j.logger.Info("BillingJob: month=%s created=%d updated=%d skipped=%d",
		result.Month, result.Created, result.Updated, result.Skipped)
}
