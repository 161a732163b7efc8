package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"dreamcodec/internal/config"
	"dreamcodec/internal/engine"
	"dreamcodec/internal/logging"
)

// ErrAlreadyRunning indicates another engine instance holds the lock.
var ErrAlreadyRunning = errors.New("another dreamcodec instance is already running")

// Runner ties an engine session to an exclusive file lock.
type Runner struct {
	engine   *engine.Engine
	logger   *slog.Logger
	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// NewRunner constructs a runner for the given engine.
func NewRunner(cfg *config.Config, eng *engine.Engine, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || eng == nil {
		return nil, errors.New("runner requires config and engine")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.StateDir, "dreamcodec.lock")
	return &Runner{
		engine:   eng,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock. The engine itself starts work on
// the first committed batch.
func (r *Runner) Start() error {
	if r.running.Load() {
		return errors.New("runner already started")
	}

	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}

	r.running.Store(true)
	r.logger.Info("engine session started", logging.String("lock", r.lockPath))
	return nil
}

// Stop halts the engine poller and releases the lock.
func (r *Runner) Stop() {
	if !r.running.Load() {
		return
	}
	r.engine.Stop()
	if err := r.lock.Unlock(); err != nil {
		r.logger.Warn("failed to release instance lock", logging.Error(err))
	}
	r.running.Store(false)
	r.logger.Info("engine session stopped")
}

// LockPath returns the lock file location.
func (r *Runner) LockPath() string { return r.lockPath }
