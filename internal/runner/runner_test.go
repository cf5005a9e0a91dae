package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"smudge/internal/logging"
	"smudge/internal/runner"
	"smudge/internal/scheduler"
	"smudge/internal/testsupport"
)

// touchTransformer creates the output file without real image work.
type touchTransformer struct {
	calls     atomic.Int64
	failInput string
}

func (s *touchTransformer) Transform(_ context.Context, input, output string) error {
	s.calls.Add(1)
	if s.failInput != "" && input == s.failInput {
		return errors.New("unreadable pixel data")
	}
	return os.WriteFile(output, []byte("blurred"), 0o644)
}

func TestRunShallowSkipsSubdirectoryAndTransformsAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for i := 0; i < 5; i++ {
		testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "img"+string(rune('a'+i))+".png"), 32)
	}
	nested := filepath.Join(cfg.Paths.InputDir, "nested", "deep.png")
	testsupport.WriteFile(t, nested, 32)

	tr := &touchTransformer{}
	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(tr))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Discovered != 5 || report.Succeeded != 5 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !report.AllSucceeded() {
		t.Fatal("expected AllSucceeded")
	}

	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 outputs, got %d", len(entries))
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), "-filtered.png") {
			t.Fatalf("unexpected output name %q", entry.Name())
		}
	}
	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("input subdirectory should be untouched: %v", err)
	}
}

func TestRunClearsStaleOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "only.png"), 32)
	for _, stale := range []string{"old1.png", "old2.png", "old3.png"} {
		testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, stale), 8)
	}

	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(&touchTransformer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "only-filtered.png" {
		t.Fatalf("stale files should be gone, got %v", entries)
	}
}

func TestRunSecondPassOwnsOutputDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := filepath.Join(cfg.Paths.InputDir, "first.png")
	testsupport.WriteFile(t, first, 32)

	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(&touchTransformer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	// Change the input set; the second run's outputs must fully replace the
	// first run's.
	if err := os.Remove(first); err != nil {
		t.Fatalf("remove input: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "second.png"), 32)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "second-filtered.png" {
		t.Fatalf("expected only second run outputs, got %v", entries)
	}
}

func TestRunReportsPartialFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	var inputs []string
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		path := filepath.Join(cfg.Paths.InputDir, name)
		testsupport.WriteFile(t, path, 32)
		inputs = append(inputs, path)
	}

	tr := &touchTransformer{failInput: inputs[1]}
	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(tr))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failed != 1 || report.Succeeded != 3 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("expected one recorded failure, got %v", report.Failures)
	}
	failure := report.Failures[0]
	if failure.Input != inputs[1] {
		t.Fatalf("wrong failing input: %q", failure.Input)
	}
	if !strings.Contains(failure.Reason, "unreadable") {
		t.Fatalf("failure reason not recorded: %q", failure.Reason)
	}
}

func TestRunFatalOnMissingInputDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// InputDir is never created.
	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(&touchTransformer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("expected fatal error for missing input directory")
	}
}

func TestRunRecursiveDisambiguatesDuplicateNames(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRecursive(true))
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "a", "img.png"), 32)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "b", "img.png"), 32)

	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(&touchTransformer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Succeeded != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("duplicate base names must not overwrite each other, got %v", entries)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "img.png"), 32)

	tr := &touchTransformer{}
	r, err := runner.New(cfg, logging.NewNop(), runner.WithTransformer(tr), runner.WithDryRun(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Discovered != 1 || len(report.Planned) != 1 {
		t.Fatalf("unexpected dry-run report: %+v", report)
	}
	if tr.calls.Load() != 0 {
		t.Fatal("dry run must not invoke the transformer")
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the output directory")
	}
}

func TestRunOutcomeHookObservesEveryTask(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, name), 32)
	}

	var seen atomic.Int64
	r, err := runner.New(cfg, logging.NewNop(),
		runner.WithTransformer(&touchTransformer{}),
		runner.WithOutcomeHook(func(scheduler.Outcome) { seen.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen.Load() != 3 {
		t.Fatalf("hook saw %d outcomes, want 3", seen.Load())
	}
}

func TestRunWithRealBlurEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.InputDir, "photo.png"), 16, 16)

	r, err := runner.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.AllSucceeded() || report.Succeeded != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.BytesWritten == 0 {
		t.Fatal("expected bytes written to be recorded")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "photo-filtered.png")); err != nil {
		t.Fatalf("expected blurred output: %v", err)
	}
}
