package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/marine-forecast/internal/weather"
)

const refreshTag = "forecast-refresh"

var (
	// ErrNotRunning is returned by TriggerNow before Start or after Stop.
	ErrNotRunning = errors.New("scheduler is not running")
	// ErrStopped is returned by Start once the scheduler has been stopped.
	ErrStopped = errors.New("scheduler has been stopped")
)

// Refresher is the pipeline the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (weather.Snapshot, error)
}

// Status describes the outcome of past refresh runs.
type Status struct {
	Runs        int       `json:"runs"`
	LastRun     time.Time `json:"lastRun,omitempty"`
	LastSuccess time.Time `json:"lastSuccess,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
}

// Options configure the refresh schedule.
type Options struct {
	Interval time.Duration
	// Cron takes precedence over Interval when set.
	Cron string
	// Timeout bounds a single refresh run.
	Timeout time.Duration
}

// Scheduler periodically refreshes the forecast snapshot. It cannot be
// restarted once stopped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	opts      Options

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	status  Status
	running bool
}

// New creates a new Scheduler.
func New(refresher Refresher, opts Options) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow run delays the next one instead of overlapping with it.
	s.SingletonModeAll()

	if opts.Interval <= 0 {
		opts.Interval = time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.ctx.Err() != nil {
		return ErrStopped
	}

	var job *gocron.Scheduler
	if s.opts.Cron != "" {
		job = s.scheduler.Cron(s.opts.Cron).StartImmediately()
	} else {
		job = s.scheduler.Every(s.opts.Interval)
	}

	if _, err := job.Tag(refreshTag).Do(s.runJob); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.running = true
	log.Info().
		Dur("interval", s.opts.Interval).
		Str("cron", s.opts.Cron).
		Msg("scheduler: started")
	return nil
}

// Stop cancels any in-flight run and stops future ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	s.mu.Unlock()

	s.cancel()
	// In-flight jobs take mu to record their status, so it must not be held here.
	if wasRunning {
		s.scheduler.Stop()
	}
	log.Info().Msg("scheduler: stopped")
}

// TriggerNow runs the refresh job out of schedule. It does not wait for the run.
func (s *Scheduler) TriggerNow() error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	return s.scheduler.RunByTag(refreshTag)
}

// RunOnce performs a single refresh synchronously and records its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	logger.Info().Msg("scheduler: running forecast refresh")
	start := time.Now()
	started := start.UTC()

	snapshot, err := s.refresher.Refresh(ctx)

	s.mu.Lock()
	s.status.Runs++
	s.status.LastRun = started
	if err != nil {
		s.status.LastError = err.Error()
	} else {
		s.status.LastError = ""
		s.status.LastSuccess = started
	}
	s.mu.Unlock()

	if err != nil {
		// Keep the last good snapshot; the next tick tries again.
		logger.Error().Err(err).Msg("scheduler: refresh failed; keeping last good snapshot")
		return err
	}

	logger.Info().
		Str("snapshot_id", snapshot.ID.String()).
		Str("spot", snapshot.Spot).
		Int("slots", len(snapshot.Series)).
		Dur("took", time.Since(start)).
		Msg("scheduler: completed forecast refresh")
	return nil
}

// Status returns a copy of the refresh bookkeeping.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Running reports whether the schedule is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runJob() {
	_ = s.RunOnce(s.ctx)
}
