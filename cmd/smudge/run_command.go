package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"smudge/internal/config"
	"smudge/internal/logging"
	"smudge/internal/runner"
	"smudge/internal/scheduler"
)

// errPartialFailure marks a run that finished but left some files
// untransformed; main maps it to exit status 2.
var errPartialFailure = errors.New("completed with failures")

func newRunCommand(configFlag *string) *cobra.Command {
	var (
		inputFlag     string
		outputFlag    string
		workersFlag   int
		recursiveFlag bool
		extFlag       []string
		dryRunFlag    bool
		logLevelFlag  string
		logFormatFlag string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Blur every image in the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag, func(c *config.Config) {
				if inputFlag != "" {
					c.Paths.InputDir = inputFlag
				}
				if outputFlag != "" {
					c.Paths.OutputDir = outputFlag
				}
				if workersFlag > 0 {
					c.Run.Workers = workersFlag
				}
				if cmd.Flags().Changed("recursive") {
					c.Run.Recursive = recursiveFlag
				}
				if len(extFlag) > 0 {
					c.Run.Extensions = extFlag
				}
				if logLevelFlag != "" {
					c.Logging.Level = logLevelFlag
				}
				if logFormatFlag != "" {
					c.Logging.Format = logFormatFlag
				}
			})
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []runner.Option{runner.WithDryRun(dryRunFlag)}
			var bar *progressbar.ProgressBar
			if !dryRunFlag && isatty.IsTerminal(os.Stdout.Fd()) {
				bar = progressbar.Default(-1, "blurring")
				opts = append(opts, runner.WithOutcomeHook(func(scheduler.Outcome) {
					_ = bar.Add(1)
				}))
			}

			r, err := runner.New(cfg, logger, opts...)
			if err != nil {
				return err
			}

			report, err := r.Run(ctx)
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}

			if dryRunFlag {
				fmt.Fprintln(cmd.OutOrStdout(), renderPlan(report))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))
			if !report.AllSucceeded() {
				return fmt.Errorf("%w: %d of %d files", errPartialFailure, report.Failed, report.Discovered)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input directory (overrides config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Concurrency limit (overrides config)")
	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Walk input subdirectories")
	cmd.Flags().StringSliceVar(&extFlag, "ext", nil, "Only process these extensions (e.g. --ext png,jpg)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Plan the run without touching any files")
	cmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormatFlag, "log-format", "", "Log format: console or json")

	return cmd
}

// loadConfig loads the file config, applies CLI overrides, and re-normalizes
// and validates so overrides get the same treatment as file values.
func loadConfig(path string, override func(*config.Config)) (*config.Config, error) {
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Normalize(); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
