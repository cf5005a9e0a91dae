package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smudge/internal/blur"
	"smudge/internal/config"
	"smudge/internal/discover"
	"smudge/internal/logging"
	"smudge/internal/naming"
	"smudge/internal/scheduler"
	"smudge/internal/workdir"
)

// Runner executes one batch run against a validated configuration.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	transformer scheduler.Transformer
	onOutcome   func(scheduler.Outcome)
	dryRun      bool
}

// Option customizes runner construction.
type Option func(*Runner)

// WithTransformer swaps the transform collaborator. Used by tests and by
// callers that want something other than the built-in blur.
func WithTransformer(t scheduler.Transformer) Option {
	return func(r *Runner) { r.transformer = t }
}

// WithOutcomeHook forwards every outcome as it is produced, e.g. to a
// progress bar. The hook runs on a single goroutine.
func WithOutcomeHook(fn func(scheduler.Outcome)) Option {
	return func(r *Runner) { r.onOutcome = fn }
}

// WithDryRun discovers and plans but locks, clears, and writes nothing.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) { r.dryRun = enabled }
}

// New builds a runner. The default transformer is constructed lazily in Run
// from the blur settings unless WithTransformer overrides it.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	r := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run performs the batch: ensure output directory consistency, discover
// tasks, dispatch them, and aggregate outcomes. The returned error is
// non-nil only for fatal setup failures; per-file failures are reported
// through the Report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:     uuid.NewString(),
		InputDir:  r.cfg.Paths.InputDir,
		OutputDir: r.cfg.Paths.OutputDir,
		Workers:   r.cfg.Run.Workers,
	}
	logger := r.logger.With(logging.String(logging.FieldRunID, report.RunID))

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("input_dir", r.cfg.Paths.InputDir),
		logging.String("output_dir", r.cfg.Paths.OutputDir),
		logging.Int("workers", r.cfg.Run.Workers),
		logging.Bool("recursive", r.cfg.Run.Recursive),
		logging.Bool("dry_run", r.dryRun),
	)

	if r.dryRun {
		tasks, err := r.plan(logger)
		if err != nil {
			return nil, err
		}
		report.Discovered = len(tasks)
		report.Planned = tasks
		report.Elapsed = time.Since(start)
		logger.Info("dry run complete",
			logging.String(logging.FieldEventType, "run_dry"),
			logging.Int("discovered", report.Discovered),
		)
		return report, nil
	}

	lock, err := workdir.Acquire(r.cfg.Paths.OutputDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock", logging.Error(err))
		}
	}()

	if err := workdir.EnsureClean(r.cfg.Paths.OutputDir); err != nil {
		return nil, fmt.Errorf("prepare output directory: %w", err)
	}

	tasks, err := r.plan(logger)
	if err != nil {
		return nil, err
	}
	report.Discovered = len(tasks)

	transformer, err := r.resolveTransformer()
	if err != nil {
		return nil, err
	}

	pool, err := scheduler.NewPool(r.cfg.Run.Workers, transformer, logger,
		scheduler.WithOutcomeHook(func(outcome scheduler.Outcome) {
			if r.onOutcome != nil {
				r.onOutcome(outcome)
			}
		}))
	if err != nil {
		return nil, fmt.Errorf("build worker pool: %w", err)
	}

	for _, outcome := range pool.Process(ctx, tasks) {
		report.addOutcome(outcome)
	}
	report.Elapsed = time.Since(start)

	logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("discovered", report.Discovered),
		logging.Int("succeeded", report.Succeeded),
		logging.Int("failed", report.Failed),
		logging.Int64("bytes_written", report.BytesWritten),
		logging.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// plan discovers eligible inputs and assigns each a collision-free output
// path in discovery order.
func (r *Runner) plan(logger *slog.Logger) ([]scheduler.Task, error) {
	inputs, err := discover.Files(r.cfg.Paths.InputDir, discover.Options{
		Recursive:  r.cfg.Run.Recursive,
		Extensions: r.cfg.Run.Extensions,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("discover tasks: %w", err)
	}

	resolver := naming.Resolver{
		OutputDir: r.cfg.Paths.OutputDir,
		Suffix:    r.cfg.Output.Suffix,
		Ext:       "." + r.cfg.Output.Format,
	}
	outputs := resolver.Plan(inputs)
	tasks := make([]scheduler.Task, len(inputs))
	for i := range inputs {
		tasks[i] = scheduler.Task{Input: inputs[i], Output: outputs[i]}
	}
	return tasks, nil
}

func (r *Runner) resolveTransformer() (scheduler.Transformer, error) {
	if r.transformer != nil {
		return r.transformer, nil
	}
	proc, err := blur.NewProcessor(r.cfg.Blur.KernelSize, r.cfg.Blur.Sigma, r.cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("build blur transform: %w", err)
	}
	return proc, nil
}
