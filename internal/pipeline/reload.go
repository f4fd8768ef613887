package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Reloader re-runs Pipeline.Load on a fixed interval.
type Reloader struct {
	pipeline  *Pipeline
	interval  time.Duration
	logger    *slog.Logger
	scheduler *gocron.Scheduler
}

// NewReloader creates a Reloader. It does nothing until Start is called.
func NewReloader(p *Pipeline, interval time.Duration, logger *slog.Logger) *Reloader {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Reloader{pipeline: p, interval: interval, logger: logger, scheduler: s}
}

// Start schedules reloads. The first one fires one interval from now.
func (r *Reloader) Start(ctx context.Context) error {
	_, err := r.scheduler.Every(r.interval).WaitForSchedule().Do(func() {
		r.reload(ctx)
	})
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.logger.Info("reload scheduled", "interval", r.interval)
	return nil
}

// Stop halts the schedule and waits for a running reload to finish.
func (r *Reloader) Stop() {
	r.scheduler.Stop()
}

func (r *Reloader) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.pipeline.Load(ctx); err != nil {
		r.logger.Error("reload failed, keeping previous table", "error", err)
	}
}
