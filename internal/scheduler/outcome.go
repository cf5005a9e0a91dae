package scheduler

import "time"

// Task pairs one input file with its planned output path. Tasks are immutable
// once discovered and consumed exactly once by a worker.
type Task struct {
	Input  string
	Output string
}

// Status classifies how a task ended.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome records the result of processing one task. Exactly one outcome
// exists per dispatched task; none are dropped or duplicated.
type Outcome struct {
	Task     Task
	Status   Status
	Err      error
	Bytes    int64
	Duration time.Duration
}

// Failed reports whether the task ended in failure.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailure
}
