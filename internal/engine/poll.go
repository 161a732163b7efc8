package engine

import (
	"context"
	"fmt"
	"time"

	"dreamcodec/internal/logging"
	"dreamcodec/internal/worker"
)

var nowFunc = time.Now

// ensurePollerLocked starts the background poll loop if it is not
// running and any job still needs observation. The loop stops itself
// once the active set drains; a later batch restarts it.
func (e *Engine) ensurePollerLocked() {
	if e.pollInterval <= 0 || e.pollCancel != nil {
		return
	}
	if !e.countsLocked().Active() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.pollCancel = cancel
	e.pollWG.Add(1)
	go e.pollLoop(ctx, cancel)
}

func (e *Engine) pollLoop(ctx context.Context, cancel context.CancelFunc) {
	defer e.pollWG.Done()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.PollOnce(ctx) {
				continue
			}
			e.mu.Lock()
			if e.countsLocked().Active() {
				// A batch was committed between the drain decision
				// and teardown; this loop stays responsible for it.
				e.mu.Unlock()
				continue
			}
			if e.pollCancel != nil {
				e.pollCancel = nil
				cancel()
			}
			e.mu.Unlock()
			return
		}
	}
}

type pollResult struct {
	progress *worker.TaskProgress
	err      error
}

// PollOnce runs one reconciliation pass: query the worker for every
// converting job, fold the answers into job state, requeue jobs that
// failed or were cancelled, and fill freed slots. It reports whether
// any job still needs polling or scheduling.
func (e *Engine) PollOnce(ctx context.Context) bool {
	e.mu.Lock()
	taskIDs := make([]string, 0, len(e.jobs))
	for _, job := range e.jobs {
		if job.Status == StatusConverting {
			taskIDs = append(taskIDs, job.ID)
		}
	}
	e.mu.Unlock()

	results := make(map[string]pollResult, len(taskIDs))
	for _, taskID := range taskIDs {
		progress, err := e.worker.Progress(ctx, taskID)
		results[taskID] = pollResult{progress: progress, err: err}
	}

	e.mu.Lock()
	requeued, requeueErr := e.reconcileLocked(results)
	e.schedulePassLocked(ctx)

	counts := e.countsLocked()
	batchDone := e.batchActive && !counts.Active()
	var (
		completed int
		failed    int
		elapsed   time.Duration
	)
	if batchDone {
		e.batchActive = false
		completed = e.batchCompleted
		failed = e.batchFailed
		elapsed = nowFunc().Sub(e.batchStart)
	}
	e.mu.Unlock()

	if requeueErr != nil {
		if err := e.notifier.NotifyError(ctx, requeueErr, "returning jobs to the queue"); err != nil {
			e.logger.Warn("error notification failed", logging.Error(err))
		}
	}
	if requeued > 0 {
		e.logger.Info("jobs returned to queue", logging.Int("count", requeued))
		if err := e.notifier.NotifyJobsRequeued(ctx, requeued); err != nil {
			e.logger.Warn("requeue notification failed", logging.Error(err))
		}
	}
	if batchDone {
		e.logger.Info("batch finished",
			logging.Int("completed", completed),
			logging.Int("failed", failed),
			logging.Duration("duration", elapsed))
		if err := e.notifier.NotifyBatchCompleted(ctx, completed, failed, elapsed); err != nil {
			e.logger.Warn("batch completion notification failed", logging.Error(err))
		}
	}
	return counts.Active()
}

// reconcileLocked applies one pass of poll results. Jobs that failed or
// were cancelled leave the collection and return to the intake queue as
// fresh entries; the count of requeued jobs is returned, along with any
// persistence error from the requeue itself.
func (e *Engine) reconcileLocked(results map[string]pollResult) (int, error) {
	var requeue []*Job
	for _, job := range e.jobs {
		if job.Status != StatusConverting {
			continue
		}
		result, polled := results[job.ID]
		if !polled {
			continue
		}

		if result.err != nil {
			// A poll failure never silently drops a job.
			job.Status = StatusFailed
			job.FailureMessage = result.err.Error()
			e.auditTerminalLocked(job)
			requeue = append(requeue, job)
			continue
		}
		progress := result.progress
		if progress == nil {
			// Not yet observable; leave the job unchanged.
			continue
		}

		reported := progress.Percentage
		if reported > 100 {
			reported = 100
		}
		if reported > job.ProgressPercent {
			job.ProgressPercent = reported
		}

		switch progress.Status {
		case worker.StatusCompleted:
			job.Status = StatusCompleted
			job.ProgressPercent = 100
			e.batchCompleted++
			e.auditTerminalLocked(job)
		case worker.StatusFailed:
			job.Status = StatusFailed
			job.FailureMessage = worker.DeriveFailureMessage(progress)
			e.auditTerminalLocked(job)
			requeue = append(requeue, job)
		case worker.StatusCancelled:
			job.Status = StatusCancelled
			e.auditTerminalLocked(job)
			requeue = append(requeue, job)
		}
	}

	if len(requeue) == 0 {
		return 0, nil
	}

	e.batchFailed += len(requeue)
	drop := make(map[string]struct{}, len(requeue))
	paths := make([]string, 0, len(requeue))
	for _, job := range requeue {
		drop[job.ID] = struct{}{}
		paths = append(paths, job.InputPath)
	}

	kept := e.jobs[:0]
	for _, job := range e.jobs {
		if _, gone := drop[job.ID]; !gone {
			kept = append(kept, job)
		}
	}
	e.jobs = kept

	added, skipped, err := e.store.Enqueue(context.Background(), paths)
	if err != nil {
		e.logger.Error("failed to requeue jobs",
			logging.Int("count", len(paths)),
			logging.Error(err))
		return 0, fmt.Errorf("requeue %d jobs: %w", len(paths), err)
	}
	if skipped > 0 {
		e.logger.Debug("requeue skipped duplicate paths", logging.Int("skipped", skipped))
	}
	return added, nil
}

// auditTerminalLocked records a terminal transition exactly once; it is
// only reachable from the single mutation site of each transition.
func (e *Engine) auditTerminalLocked(job *Job) {
	attrs := []logging.Attr{
		logging.String(logging.FieldJobID, job.ID),
		logging.String("input", job.InputPath),
		logging.String("status", string(job.Status)),
	}
	if job.FailureMessage != "" {
		attrs = append(attrs, logging.String("failure", job.FailureMessage))
	}
	e.logger.Info("job reached terminal state", logging.Args(attrs...)...)
}
