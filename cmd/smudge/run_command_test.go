package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smudge/internal/testsupport"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommandBlursDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	inDir := filepath.Join(base, "in")
	outDir := filepath.Join(base, "out")
	testsupport.WritePNG(t, filepath.Join(inDir, "one.png"), 8, 8)
	testsupport.WritePNG(t, filepath.Join(inDir, "two.png"), 8, 8)

	out, err := executeCommand(t,
		"run", "-i", inDir, "-o", outDir, "-w", "2", "--log-level", "error")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Succeeded") {
		t.Fatalf("expected summary table, got:\n%s", out)
	}

	for _, name := range []string{"one-filtered.png", "two-filtered.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
}

func TestRunCommandReportsPartialFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	inDir := filepath.Join(base, "in")
	outDir := filepath.Join(base, "out")
	testsupport.WritePNG(t, filepath.Join(inDir, "good.png"), 8, 8)
	testsupport.WriteFile(t, filepath.Join(inDir, "bad.png"), 64)

	out, err := executeCommand(t,
		"run", "-i", inDir, "-o", outDir, "--log-level", "error")
	if err == nil {
		t.Fatalf("expected partial failure error, output:\n%s", out)
	}
	if !errors.Is(err, errPartialFailure) {
		t.Fatalf("expected errPartialFailure, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "good-filtered.png")); statErr != nil {
		t.Fatalf("sibling file should still succeed: %v", statErr)
	}
}

func TestRunCommandDryRunWritesNothing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()
	inDir := filepath.Join(base, "in")
	outDir := filepath.Join(base, "out")
	testsupport.WritePNG(t, filepath.Join(inDir, "one.png"), 8, 8)

	out, err := executeCommand(t,
		"run", "-i", inDir, "-o", outDir, "--dry-run", "--log-level", "error")
	if err != nil {
		t.Fatalf("dry run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "would be processed") {
		t.Fatalf("expected plan output, got:\n%s", out)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the output directory")
	}
}

func TestRunCommandMissingInputIsFatal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := t.TempDir()

	_, err := executeCommand(t,
		"run", "-i", filepath.Join(base, "absent"), "-o", filepath.Join(base, "out"),
		"--log-level", "error")
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if errors.Is(err, errPartialFailure) {
		t.Fatalf("fatal abort must not look like partial failure: %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := executeCommand(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := executeCommand(t, "--config", path, "config", "init"); err == nil {
		t.Fatal("expected init to refuse overwriting without --force")
	}

	out, err = executeCommand(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "kernel_size") {
		t.Fatalf("expected effective config dump, got:\n%s", out)
	}

	out, err = executeCommand(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v\n%s", err, out)
	}
	if !strings.Contains(out, "present") {
		t.Fatalf("expected resolved path status, got:\n%s", out)
	}
}
