package engine

import (
	"context"

	"dreamcodec/internal/logging"
	"dreamcodec/internal/worker"
)

// schedulePassLocked fills free slots with pending jobs in queue order.
// A start failure marks that one job Failed and moves on; it is
// terminal unless the user manually requeues the file. Invoking the
// pass with no free slots or no pending jobs is a no-op.
func (e *Engine) schedulePassLocked(ctx context.Context) {
	free := e.maxConcurrent - e.countsLocked().Converting
	if free <= 0 {
		return
	}

	for _, job := range e.jobs {
		if free <= 0 {
			return
		}
		if job.Status != StatusPending {
			continue
		}

		taskID, err := e.worker.Start(ctx, worker.StartRequest{
			InputPath:      job.InputPath,
			OutputPath:     job.OutputPath,
			Encoder:        job.Params.Encoder,
			GPUDeviceIndex: job.Params.GPUDeviceIndex,
			CPUThreadCap:   job.Params.CPUThreadCap,
			Preset:         job.Params.Preset,
		})
		if err != nil {
			job.Status = StatusFailed
			job.FailureMessage = err.Error()
			e.batchFailed++
			e.logger.Error("worker rejected job start",
				logging.String(logging.FieldJobID, job.ID),
				logging.String("input", job.InputPath),
				logging.Error(err))
			continue
		}

		// The worker task id becomes the job's id; progress and
		// identity carry over from the pending entry.
		e.logger.Info("job started",
			logging.String(logging.FieldJobID, job.ID),
			logging.String(logging.FieldTaskID, taskID),
			logging.String("input", job.InputPath),
			logging.String("encoder", job.Params.Encoder))
		job.ID = taskID
		job.Status = StatusConverting
		free--
	}
}
