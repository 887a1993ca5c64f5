package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/observability"
)

// Prober checks that the remote source answers for a year.
type Prober interface {
	Probe(ctx context.Context, year int) error
}

// Scheduler periodically probes the remote weather source and publishes the
// result on the source_up gauge. It never touches request state.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	year      int
	interval  time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// New creates a new Scheduler. A zero year disables probing.
func New(prober Prober, year int, interval time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		prober:    prober,
		year:      year,
		interval:  interval,
		metrics:   metrics,
		logger:    logger,
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.year <= 0 || s.prober == nil {
		s.logger.Info("scheduler: source probe disabled")
		return nil
	}

	if _, err := s.scheduler.Every(s.interval).Do(s.probe); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: source probe started", "year", s.year, "every", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.prober.Probe(ctx, s.year); err != nil {
		s.metrics.SourceUp.Set(0)
		s.logger.Warn("scheduler: remote source probe failed", "year", s.year, "error", err)
		return
	}
	s.metrics.SourceUp.Set(1)
	s.logger.Debug("scheduler: remote source probe ok", "year", s.year)
}
