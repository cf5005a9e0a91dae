package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateBlur(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.input_dir: the output directory is cleared before each run")
	}
	return nil
}

func (c *Config) validateRun() error {
	if c.Run.Workers < 1 {
		return errors.New("run.workers must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Suffix == "" {
		return errors.New("output.suffix must be set")
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain path separators: %q", c.Output.Suffix)
	}
	switch c.Output.Format {
	case "png", "jpeg":
		return nil
	case "jpg":
		c.Output.Format = "jpeg"
		return nil
	default:
		return fmt.Errorf("output.format must be png or jpeg, got %q", c.Output.Format)
	}
}

func (c *Config) validateBlur() error {
	if c.Blur.KernelSize < 3 {
		return errors.New("blur.kernel_size must be at least 3")
	}
	if c.Blur.KernelSize%2 == 0 {
		return fmt.Errorf("blur.kernel_size must be odd so the kernel has a center pixel, got %d", c.Blur.KernelSize)
	}
	if c.Blur.Sigma <= 0 {
		return errors.New("blur.sigma must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
