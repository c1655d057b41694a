package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"radarrtagger/internal/logging"
)

const (
	DefaultInterval = 20 * time.Minute
	DefaultBackoff  = 5 * time.Minute
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs a job until its context is canceled.
type Scheduler struct {
	Interval time.Duration
	Backoff  time.Duration
	Clock    Clock
	Logger   *slog.Logger

	// OnWait, when set, is called with the time of the next run before each
	// wait.
	OnWait func(next time.Time, err error)
}

// Run calls job, then waits Interval after success or Backoff after an error,
// and repeats. It returns nil once ctx is done.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if job == nil {
		return errors.New("scheduler: job is required")
	}
	clock := s.Clock
	if clock == nil {
		clock = RealClock{}
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	backoff := s.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := job(ctx)
		if ctx.Err() != nil {
			return nil
		}
		wait := interval
		if err != nil {
			wait = backoff
			logger.Error("cycle failed; backing off",
				logging.Error(err),
				logging.Duration("retry_in", backoff),
			)
		}

		if s.OnWait != nil {
			s.OnWait(clock.Now().Add(wait), err)
		}
		if err == nil {
			logger.Info("sleeping until next cycle", logging.Duration("interval", wait))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-clock.After(wait):
		}
	}
}
