package testsupport

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"dreamcodec/internal/worker"
)

// FakeWorker is a scriptable in-memory conversion worker. Tests script
// start failures, progress payloads, and poll errors per input path or
// task id, then observe what the engine did with them.
type FakeWorker struct {
	mu        sync.Mutex
	tasks     map[string]*fakeTask
	byInput   map[string]string
	startErrs map[string]error
	started   []worker.StartRequest
	cancelled []string
}

type fakeTask struct {
	request  worker.StartRequest
	progress *worker.TaskProgress
	pollErr  error
}

// NewFakeWorker returns an empty fake. Started tasks begin as running
// at zero percent until a test scripts otherwise.
func NewFakeWorker() *FakeWorker {
	return &FakeWorker{
		tasks:     make(map[string]*fakeTask),
		byInput:   make(map[string]string),
		startErrs: make(map[string]error),
	}
}

// FailStart scripts a start failure for the given input path.
func (f *FakeWorker) FailStart(inputPath string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startErrs[inputPath] = err
}

// Start registers a task and returns a fresh task identifier.
func (f *FakeWorker) Start(_ context.Context, req worker.StartRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.startErrs[req.InputPath]; err != nil {
		return "", err
	}

	taskID := uuid.NewString()
	f.tasks[taskID] = &fakeTask{
		request:  req,
		progress: &worker.TaskProgress{Status: worker.StatusRunning},
	}
	f.byInput[req.InputPath] = taskID
	f.started = append(f.started, req)
	return taskID, nil
}

// Progress returns the scripted payload for the task. A task scripted
// with SetUnobservable yields (nil, nil).
func (f *FakeWorker) Progress(_ context.Context, taskID string) (*worker.TaskProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("unknown task %s", taskID)
	}
	if task.pollErr != nil {
		return nil, task.pollErr
	}
	if task.progress == nil {
		return nil, nil
	}
	clone := *task.progress
	clone.Log = append([]string(nil), task.progress.Log...)
	return &clone, nil
}

// Cancel records the request and scripts the task to report cancelled
// on the next poll, mirroring an asynchronous worker.
func (f *FakeWorker) Cancel(_ context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelled = append(f.cancelled, taskID)
	if task, ok := f.tasks[taskID]; ok {
		task.progress = &worker.TaskProgress{Status: worker.StatusCancelled}
		task.pollErr = nil
	}
	return nil
}

// SetProgress scripts the next poll result for the task.
func (f *FakeWorker) SetProgress(taskID string, progress *worker.TaskProgress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task, ok := f.tasks[taskID]; ok {
		task.progress = progress
		task.pollErr = nil
	}
}

// SetUnobservable makes polls for the task return (nil, nil).
func (f *FakeWorker) SetUnobservable(taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task, ok := f.tasks[taskID]; ok {
		task.progress = nil
		task.pollErr = nil
	}
}

// SetPollError makes polls for the task fail with the given error.
func (f *FakeWorker) SetPollError(taskID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task, ok := f.tasks[taskID]; ok {
		task.pollErr = err
	}
}

// TaskFor returns the task id assigned to the given input path.
func (f *FakeWorker) TaskFor(inputPath string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	taskID, ok := f.byInput[inputPath]
	return taskID, ok
}

// Started returns a copy of every start request seen, in order.
func (f *FakeWorker) Started() []worker.StartRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]worker.StartRequest(nil), f.started...)
}

// Cancelled returns the task ids cancel was called for.
func (f *FakeWorker) Cancelled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancelled...)
}
