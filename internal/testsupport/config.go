package testsupport

import (
	"path/filepath"
	"testing"

	"smudge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a normalized, validated config seeded with unique temp
// directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "input")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Run.Workers = 2
	cfg.Blur.KernelSize = 3

	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the concurrency limit on the test config.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) { c.Run.Workers = n }
}

// WithRecursive toggles recursive discovery on the test config.
func WithRecursive(enabled bool) ConfigOption {
	return func(c *config.Config) { c.Run.Recursive = enabled }
}

// WithExtensions sets the discovery extension filter on the test config.
func WithExtensions(exts ...string) ConfigOption {
	return func(c *config.Config) { c.Run.Extensions = exts }
}
