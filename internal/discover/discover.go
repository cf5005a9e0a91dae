package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"smudge/internal/logging"
)

// Options controls discovery behavior.
type Options struct {
	// Recursive walks subdirectories as well; otherwise only immediate
	// entries of the root are considered.
	Recursive bool
	// Extensions restricts candidates to the given lowercase dotted
	// extensions (".png", ".jpg"). Empty means every regular file is a
	// candidate and the transform decides what it can decode.
	Extensions []string
	Logger     *slog.Logger
}

// Files returns the candidate file paths under root. Only regular files are
// eligible. The root must be a readable directory.
func Files(root string, opts Options) ([]string, error) {
	logger := logging.NewComponentLogger(opts.Logger, "discover")

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	if opts.Recursive {
		return walk(root, opts, logger)
	}
	return list(root, opts, logger)
}

func list(root string, opts Options, logger *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", root, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		fi, err := entry.Info()
		if err != nil {
			logger.Warn("skipping unreadable entry",
				logging.String(logging.FieldInput, path),
				logging.Error(err),
			)
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		if eligible(entry.Name(), opts.Extensions) {
			files = append(files, path)
		}
	}
	return files, nil
}

func walk(root string, opts Options, logger *slog.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("walk input directory %s: %w", root, err)
			}
			logger.Warn("skipping unreadable entry",
				logging.String(logging.FieldInput, path),
				logging.Error(err),
			)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		fi, err := entry.Info()
		if err != nil {
			logger.Warn("skipping unreadable entry",
				logging.String(logging.FieldInput, path),
				logging.Error(err),
			)
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		if eligible(entry.Name(), opts.Extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func eligible(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
