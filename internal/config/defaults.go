package config

const (
	defaultInputDir     = "~/smudge/input"
	defaultOutputDir    = "~/smudge/output"
	defaultOutputSuffix = "-filtered"
	defaultOutputFormat = "png"
	defaultKernelSize   = 21
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
//
// Run.Workers defaults to zero, which Normalize resolves to the host CPU
// count. Blur.Sigma defaults to zero, which resolves to kernel_size/3, the
// usual radius-derived value.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Output: Output{
			Suffix: defaultOutputSuffix,
			Format: defaultOutputFormat,
		},
		Blur: Blur{
			KernelSize: defaultKernelSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
