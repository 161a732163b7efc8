package engine

// JobStatus tracks one job through its lifecycle.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusConverting JobStatus = "converting"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status ends the job.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Params are the resolved conversion parameters attached to a job at
// commit time. Immutable once set.
type Params struct {
	Encoder        string
	GPUDeviceIndex *int
	CPUThreadCap   *int
	Preset         string
}

// Job is one file's conversion request. The ID starts as a fresh UUID
// and is replaced with the worker-assigned task id on promotion; the
// logical job and its progress carry over.
type Job struct {
	ID              string
	InputPath       string
	OutputPath      string
	DisplayTitle    string
	Status          JobStatus
	ProgressPercent float64
	FailureMessage  string
	Params          Params
}

// clone returns a copy safe to hand outside the engine lock.
func (j *Job) clone() Job {
	copied := *j
	if j.Params.GPUDeviceIndex != nil {
		v := *j.Params.GPUDeviceIndex
		copied.Params.GPUDeviceIndex = &v
	}
	if j.Params.CPUThreadCap != nil {
		v := *j.Params.CPUThreadCap
		copied.Params.CPUThreadCap = &v
	}
	return copied
}

// Counts summarizes the job collection by status.
type Counts struct {
	Pending    int
	Converting int
	Completed  int
	Failed     int
	Cancelled  int
}

// Total returns the number of tracked jobs.
func (c Counts) Total() int {
	return c.Pending + c.Converting + c.Completed + c.Failed + c.Cancelled
}

// Active reports whether any job still needs scheduling or polling.
func (c Counts) Active() bool {
	return c.Pending > 0 || c.Converting > 0
}
