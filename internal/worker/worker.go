package worker

import "context"

// TaskStatus is the worker-reported state of one conversion task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusCancelled TaskStatus = "cancelled"
)

// Terminal reports whether the status ends the task.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// StartRequest carries everything the worker needs to begin a
// conversion. Optional fields are nil when the parameter does not apply
// to the chosen encoder.
type StartRequest struct {
	InputPath      string
	OutputPath     string
	Encoder        string
	GPUDeviceIndex *int
	CPUThreadCap   *int
	Preset         string
}

// TaskProgress is one progress observation for a task.
type TaskProgress struct {
	Status       TaskStatus
	Percentage   float64
	Log          []string
	ErrorMessage string
}

// Worker is the external conversion collaborator. Start returns the
// worker-assigned task identifier; a start failure is scoped to the one
// task, never fatal to the caller. Progress returns (nil, nil) when the
// task is not yet observable, which is distinct from a transport error.
// Cancel is fire-and-forget; its effect is observed on a later poll.
type Worker interface {
	Start(ctx context.Context, req StartRequest) (string, error)
	Progress(ctx context.Context, taskID string) (*TaskProgress, error)
	Cancel(ctx context.Context, taskID string) error
}
