package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Lock guards an output directory for the duration of one run.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes a non-blocking exclusive lock for the given output directory.
// The lock file lives next to the directory (<dir>.lock), not inside it, so
// clearing the directory cannot disturb it. A held lock means another run is
// already using the directory.
func Acquire(dir string) (*Lock, error) {
	trimmed := strings.TrimRight(dir, string(os.PathSeparator))
	if trimmed == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	lockPath := trimmed + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("output directory %s is in use by another run (lock %s held)", dir, lockPath)
	}
	return &Lock{path: lockPath, fl: fl}, nil
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release run lock %s: %w", l.path, err)
	}
	_ = os.Remove(l.path)
	l.fl = nil
	return nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// EnsureClean guarantees dir exists and contains no regular files. Immediate
// regular files are deleted; subdirectories and their contents are kept. Any
// I/O failure is returned as-is so the caller can abort before dispatching
// work against an inconsistent directory.
func EnsureClean(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read output directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale output %s: %w", path, err)
		}
	}
	return nil
}
