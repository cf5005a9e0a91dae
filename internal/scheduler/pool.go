package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"smudge/internal/logging"
)

// Transformer is the external collaborator that turns one input file into one
// output file. Calls are synchronous, may be slow, and may fail per file.
type Transformer interface {
	Transform(ctx context.Context, inputPath, outputPath string) error
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(ctx context.Context, inputPath, outputPath string) error

func (f TransformerFunc) Transform(ctx context.Context, inputPath, outputPath string) error {
	return f(ctx, inputPath, outputPath)
}

// Pool dispatches tasks to a fixed number of workers.
type Pool struct {
	workers     int
	transformer Transformer
	logger      *slog.Logger
	onOutcome   func(Outcome)
}

// Option customizes pool construction.
type Option func(*Pool)

// WithOutcomeHook registers a callback invoked for every outcome as it is
// produced. The callback runs on the collector goroutine, never concurrently
// with itself.
func WithOutcomeHook(fn func(Outcome)) Option {
	return func(p *Pool) { p.onOutcome = fn }
}

// NewPool builds a pool with the given concurrency limit. Workers must be
// positive; the transformer is required.
func NewPool(workers int, transformer Transformer, logger *slog.Logger, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", workers)
	}
	if transformer == nil {
		return nil, fmt.Errorf("transformer is required")
	}
	p := &Pool{
		workers:     workers,
		transformer: transformer,
		logger:      logging.NewComponentLogger(logger, "scheduler"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Process runs every task through the pool and returns one outcome per task,
// in completion order. It blocks until all workers have joined; no task is
// left mid-flight. Cancellation is cooperative: once ctx is done, workers
// stop pulling and the remaining queued tasks are recorded as failures with
// the context error, keeping the one-outcome-per-task invariant intact.
func (p *Pool) Process(ctx context.Context, tasks []Task) []Outcome {
	if len(tasks) == 0 {
		return nil
	}

	queue := make(chan Task)
	results := make(chan Outcome)

	var collector sync.WaitGroup
	collector.Add(1)
	outcomes := make([]Outcome, 0, len(tasks))
	go func() {
		defer collector.Done()
		for outcome := range results {
			if p.onOutcome != nil {
				p.onOutcome(outcome)
			}
			outcomes = append(outcomes, outcome)
		}
	}()

	var group errgroup.Group
	for i := 0; i < p.workers; i++ {
		worker := i
		group.Go(func() error {
			p.runWorker(ctx, worker, queue, results)
			return nil
		})
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			results <- Outcome{Task: task, Status: StatusFailure, Err: err}
			continue
		}
		select {
		case queue <- task:
		case <-ctx.Done():
			results <- Outcome{Task: task, Status: StatusFailure, Err: ctx.Err()}
		}
	}
	close(queue)

	_ = group.Wait()
	close(results)
	collector.Wait()

	return outcomes
}

func (p *Pool) runWorker(ctx context.Context, id int, queue <-chan Task, results chan<- Outcome) {
	for task := range queue {
		results <- p.runTask(ctx, id, task)
	}
}

// runTask is the per-task isolation boundary: transform errors and panics
// both come back as Failure outcomes and never escape the worker.
func (p *Pool) runTask(ctx context.Context, worker int, task Task) (outcome Outcome) {
	start := time.Now()
	outcome = Outcome{Task: task, Status: StatusSuccess}

	defer func() {
		outcome.Duration = time.Since(start)
		if r := recover(); r != nil {
			outcome.Status = StatusFailure
			outcome.Err = fmt.Errorf("transform panic: %v", r)
			p.logger.Error("transform panicked",
				logging.String(logging.FieldEventType, "task_panic"),
				logging.String(logging.FieldInput, task.Input),
				logging.Any("panic", r),
			)
		}
	}()

	p.logger.Debug("task started",
		logging.Int("worker", worker),
		logging.String(logging.FieldInput, task.Input),
		logging.String(logging.FieldOutput, task.Output),
	)

	if err := p.transformer.Transform(ctx, task.Input, task.Output); err != nil {
		outcome.Status = StatusFailure
		outcome.Err = err
		p.logger.Warn("task failed",
			logging.String(logging.FieldEventType, "task_failure"),
			logging.String(logging.FieldInput, task.Input),
			logging.Error(err),
		)
		return outcome
	}

	if info, err := os.Stat(task.Output); err == nil {
		outcome.Bytes = info.Size()
	}
	p.logger.Debug("task finished",
		logging.Int("worker", worker),
		logging.String(logging.FieldInput, task.Input),
		logging.Duration("elapsed", time.Since(start)),
	)
	return outcome
}
