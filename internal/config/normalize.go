package config

import (
	"runtime"
	"strings"
)

// Normalize expands path fields, lowercases extension filters, and resolves
// zero-valued settings to their computed defaults. It must run before
// Validate.
func (c *Config) Normalize() error {
	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return err
	}

	if c.Run.Workers == 0 {
		c.Run.Workers = runtime.NumCPU()
	}

	c.Run.Extensions = normalizeExtensions(c.Run.Extensions)
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Blur.Sigma == 0 {
		c.Blur.Sigma = float64(c.Blur.KernelSize) / 3.0
	}
	return nil
}

// normalizeExtensions lowercases entries and guarantees a leading dot.
// Empty entries are dropped; an empty result means "accept every file".
func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
