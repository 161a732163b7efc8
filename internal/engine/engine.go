package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dreamcodec/internal/config"
	"dreamcodec/internal/encoders"
	"dreamcodec/internal/hardware"
	"dreamcodec/internal/logging"
	"dreamcodec/internal/notifications"
	"dreamcodec/internal/preferences"
	"dreamcodec/internal/queue"
	"dreamcodec/internal/worker"
)

// EncoderSource supplies the probed encoder list. Implementations wrap
// the conversion tool's capability listing; failures fall back to the
// built-in default set.
type EncoderSource func(ctx context.Context) ([]encoders.Encoder, error)

// Engine coordinates the conversion workflow: intake drain, parameter
// resolution, bounded-concurrency dispatch, and progress reconciliation.
type Engine struct {
	cfg       *config.Config
	store     *queue.Store
	worker    worker.Worker
	monitor   *hardware.Monitor
	prefStore *preferences.Store
	notifier  notifications.Service
	logger    *slog.Logger

	encoderSource EncoderSource
	pollInterval  time.Duration

	mu            sync.Mutex
	jobs          []*Job
	maxConcurrent int

	pollCancel context.CancelFunc
	pollWG     sync.WaitGroup

	batchActive    bool
	batchStart     time.Time
	batchCompleted int
	batchFailed    int
}

// Option configures optional Engine behavior.
type Option func(*Engine)

// WithEncoderSource overrides how the engine discovers encoders.
func WithEncoderSource(source EncoderSource) Option {
	return func(e *Engine) {
		e.encoderSource = source
	}
}

// WithPollInterval overrides the progress poll cadence. A non-positive
// interval disables the background poller; reconciliation then only
// happens through explicit PollOnce calls.
func WithPollInterval(interval time.Duration) Option {
	return func(e *Engine) {
		e.pollInterval = interval
	}
}

// WithNotifier overrides the notification service (used in tests).
func WithNotifier(notifier notifications.Service) Option {
	return func(e *Engine) {
		e.notifier = notifier
	}
}

// New constructs the orchestration engine.
func New(cfg *config.Config, store *queue.Store, w worker.Worker, monitor *hardware.Monitor, prefStore *preferences.Store, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		store:     store,
		worker:    w,
		monitor:   monitor,
		prefStore: prefStore,
		notifier:  notifications.NewService(cfg),
		logger:    logging.NewComponentLogger(logger, "engine"),
		encoderSource: func(context.Context) ([]encoders.Encoder, error) {
			return encoders.DefaultSet(), nil
		},
		pollInterval:  time.Duration(cfg.Workflow.PollInterval) * time.Second,
		maxConcurrent: prefStore.Load().MaxConcurrent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stop halts the background poller and waits for it to exit. Running
// worker tasks are not cancelled.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.pollCancel
	e.pollCancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.pollWG.Wait()
}

// Snapshot returns copies of all tracked jobs in dispatch order.
func (e *Engine) Snapshot() []Job {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Job, 0, len(e.jobs))
	for _, job := range e.jobs {
		out = append(out, job.clone())
	}
	return out
}

// StatusCounts summarizes the tracked jobs by status.
func (e *Engine) StatusCounts() Counts {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.countsLocked()
}

func (e *Engine) countsLocked() Counts {
	var counts Counts
	for _, job := range e.jobs {
		switch job.Status {
		case StatusPending:
			counts.Pending++
		case StatusConverting:
			counts.Converting++
		case StatusCompleted:
			counts.Completed++
		case StatusFailed:
			counts.Failed++
		case StatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// MaxConcurrent returns the current concurrency cap.
func (e *Engine) MaxConcurrent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxConcurrent
}

// SetMaxConcurrent persists the new cap and fills any newly freed
// slots. Lowering the cap never cancels running jobs; it only throttles
// future dispatch.
func (e *Engine) SetMaxConcurrent(ctx context.Context, n int) error {
	prefs := e.prefStore.Load()
	prefs.MaxConcurrent = n
	prefs = prefs.Normalize()
	if err := e.prefStore.Save(prefs); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxConcurrent = prefs.MaxConcurrent
	e.schedulePassLocked(ctx)
	e.ensurePollerLocked()
	return nil
}

// Cancel requests cancellation of one job. A pending job is cancelled
// immediately; a converting job is forwarded to the worker and reaches
// its terminal state once a later poll observes the cancellation.
func (e *Engine) Cancel(ctx context.Context, jobID string) error {
	e.mu.Lock()
	var target *Job
	for _, job := range e.jobs {
		if job.ID == jobID {
			target = job
			break
		}
	}
	if target == nil {
		e.mu.Unlock()
		return ErrJobNotFound
	}

	switch target.Status {
	case StatusPending:
		target.Status = StatusCancelled
		e.logger.Info("job cancelled before start",
			logging.String(logging.FieldJobID, target.ID),
			logging.String("input", target.InputPath))
		e.mu.Unlock()
		return nil
	case StatusConverting:
		taskID := target.ID
		e.mu.Unlock()
		return e.worker.Cancel(ctx, taskID)
	default:
		e.mu.Unlock()
		return nil
	}
}
