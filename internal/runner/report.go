package runner

import (
	"time"

	"smudge/internal/scheduler"
)

// Failure records one task that did not produce an output.
type Failure struct {
	Input  string
	Reason string
}

// Report aggregates the result of one run. Exactly one outcome backs each
// discovered file, so Discovered == Succeeded + Failed always holds for a
// completed run.
type Report struct {
	RunID      string
	InputDir   string
	OutputDir  string
	Workers    int
	Discovered int
	Succeeded  int
	Failed     int
	Failures   []Failure
	// Planned holds the would-be tasks of a dry run; empty otherwise.
	Planned      []scheduler.Task
	BytesWritten int64
	Elapsed      time.Duration
}

// AllSucceeded reports whether every discovered file transformed cleanly.
func (r *Report) AllSucceeded() bool {
	return r.Failed == 0
}

func (r *Report) addOutcome(outcome scheduler.Outcome) {
	if outcome.Failed() {
		r.Failed++
		reason := "unknown failure"
		if outcome.Err != nil {
			reason = outcome.Err.Error()
		}
		r.Failures = append(r.Failures, Failure{Input: outcome.Task.Input, Reason: reason})
		return
	}
	r.Succeeded++
	r.BytesWritten += outcome.Bytes
}
