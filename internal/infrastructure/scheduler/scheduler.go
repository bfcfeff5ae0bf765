package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"laboratorio_dental/internal/infrastructure/logging"
)

// Job is a periodic task. It returns how many records it affected.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int, error)
}

// Scheduler runs each job once at start and then on every tick until ctx is done.
// A failed run is logged and retried on the next tick.
type Scheduler struct {
	logger *slog.Logger
	jobs   []Job
	wg     sync.WaitGroup
}

func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger, jobs: jobs}
}

// Start launches one goroutine per job and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Run == nil || job.Interval <= 0 {
			s.logger.Warn("job disabled", slog.String("job", job.Name))
			continue
		}
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.loop(ctx, job)
		}(job)
	}
}

// Wait blocks until every job goroutine has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	logger := s.logger.With(slog.String("job", job.Name))
	ctx = logging.WithLogger(ctx, logger)

	s.runOnce(ctx, logger, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx, logger, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, logger *slog.Logger, job Job) {
	start := time.Now()
	n, err := job.Run(ctx)
	if err != nil {
		logger.Error("job failed", slog.String("error", err.Error()), slog.Duration("elapsed", time.Since(start)))
		return
	}
	logger.Info("job finished", slog.Int("affected", n), slog.Duration("elapsed", time.Since(start)))
}
