package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"radarrtagger/internal/config"
	"radarrtagger/internal/logging"
	"radarrtagger/internal/notifications"
	"radarrtagger/internal/reconcile"
	"radarrtagger/internal/scheduler"
	"radarrtagger/internal/services"
)

// Cycler runs one reconciliation cycle.
type Cycler interface {
	RunCycle(ctx context.Context) (reconcile.Result, error)
}

// Daemon runs reconciliation cycles on a schedule and enforces single-instance
// execution.
type Daemon struct {
	cfg        *config.Config
	baseLogger *slog.Logger
	logger     *slog.Logger
	cycler     Cycler
	notifier   notifications.Service
	clock      scheduler.Clock
	newID      func() string

	lockPath string
	lock     *flock.Flock

	mu     sync.Mutex
	status Status
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool       `json:"running"`
	StartedAt      time.Time  `json:"started_at,omitzero"`
	Cycles         int        `json:"cycles"`
	FailedCycles   int        `json:"failed_cycles"`
	TotalUpdated   int        `json:"total_updated"`
	LastCycleID    string     `json:"last_cycle_id,omitempty"`
	LastRun        time.Time  `json:"last_run,omitzero"`
	LastError      string     `json:"last_error,omitempty"`
	NextRun        time.Time  `json:"next_run,omitzero"`
	LastResult     *CycleInfo `json:"last_result,omitempty"`
	LockFilePath   string     `json:"lock_file"`
	ScoreThreshold int        `json:"score_threshold"`
}

// CycleInfo is the serialisable summary of a finished cycle.
type CycleInfo struct {
	CycleID        string  `json:"cycle_id"`
	Movies         int     `json:"movies"`
	Changed        int     `json:"changed"`
	Updated        int     `json:"updated"`
	UpdateFailures int     `json:"update_failures"`
	FileErrors     int     `json:"file_errors"`
	TagsCreated    int     `json:"tags_created"`
	DurationSecs   float64 `json:"duration_seconds"`
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithClock overrides the scheduler clock.
func WithClock(clock scheduler.Clock) Option {
	return func(d *Daemon) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithIDGenerator overrides cycle id generation.
func WithIDGenerator(fn func() string) Option {
	return func(d *Daemon) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, cycler Cycler, notifier notifications.Service, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || cycler == nil {
		return nil, errors.New("daemon requires config and cycler")
	}
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:        cfg,
		baseLogger: logger,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		cycler:     cycler,
		notifier:   notifier,
		clock:      scheduler.RealClock{},
		newID:      uuid.NewString,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.status.LockFilePath = lockPath
	d.status.ScoreThreshold = cfg.Tagging.ScoreThreshold
	return d, nil
}

// Run acquires the lock, serves the status endpoint when configured, and runs
// cycles until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.cfg.EnsureDirectories(); err != nil {
		return err
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another radarr-tagger instance is already running")
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	d.mu.Lock()
	if d.status.Running {
		d.mu.Unlock()
		return errors.New("daemon already running")
	}
	d.status.Running = true
	d.status.StartedAt = d.clock.Now()
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.status.Running = false
		d.status.NextRun = time.Time{}
		d.mu.Unlock()
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv, err := newAPIServer(d.cfg, d, logging.NewComponentLogger(d.baseLogger, "api-server"))
	if err != nil {
		return err
	}
	if err := srv.start(runCtx); err != nil {
		return err
	}
	defer srv.stop()

	d.logger.Info("radarr tagger started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", d.cfg.Interval()),
		logging.Int("score_threshold", d.cfg.Tagging.ScoreThreshold),
	)

	sched := &scheduler.Scheduler{
		Interval: d.cfg.Interval(),
		Backoff:  d.cfg.ErrorRetry(),
		Clock:    d.clock,
		Logger:   d.logger,
		OnWait: func(next time.Time, _ error) {
			d.mu.Lock()
			d.status.NextRun = next
			d.mu.Unlock()
		},
	}
	err = sched.Run(runCtx, func(ctx context.Context) error {
		_, err := d.RunCycle(ctx)
		return err
	})
	d.logger.Info("radarr tagger stopped")
	return err
}

// RunCycle runs one cycle under a fresh correlation id, records it in the
// status snapshot, and publishes notifications.
func (d *Daemon) RunCycle(ctx context.Context) (reconcile.Result, error) {
	cycleID := d.newID()
	ctx = services.WithCycleID(ctx, cycleID)
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("starting tag update cycle")

	result, err := d.cycler.RunCycle(ctx)
	if result.CycleID == "" {
		result.CycleID = cycleID
	}
	d.record(result, err)

	if ctx.Err() != nil {
		return result, err
	}
	if err != nil {
		d.publish(ctx, notifications.EventCycleFailed, notifications.Payload{
			"error":   err,
			"retryIn": d.cfg.ErrorRetry(),
		})
		return result, err
	}
	d.publish(ctx, notifications.EventTagsUpdated, notifications.Payload{
		"updated": result.Updated,
		"movies":  result.Movies,
		"failed":  result.UpdateFailures,
	})
	return result, nil
}

func (d *Daemon) record(result reconcile.Result, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status.Cycles++
	d.status.LastCycleID = result.CycleID
	d.status.LastRun = d.clock.Now()
	d.status.TotalUpdated += result.Updated
	d.status.LastResult = &CycleInfo{
		CycleID:        result.CycleID,
		Movies:         result.Movies,
		Changed:        result.Changed,
		Updated:        result.Updated,
		UpdateFailures: result.UpdateFailures,
		FileErrors:     result.FileErrors,
		TagsCreated:    result.TagsCreated,
		DurationSecs:   result.Duration.Seconds(),
	}
	if err != nil {
		d.status.FailedCycles++
		d.status.LastError = err.Error()
		return
	}
	d.status.LastError = ""
}

func (d *Daemon) publish(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if err := d.notifier.Publish(ctx, event, payload); err != nil {
		logging.WithContext(ctx, d.logger).Warn("notification failed",
			logging.String("event", string(event)),
			logging.Error(err),
		)
	}
}

// Status returns a copy of the current runtime snapshot.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	status := d.status
	if d.status.LastResult != nil {
		info := *d.status.LastResult
		status.LastResult = &info
	}
	return status
}
