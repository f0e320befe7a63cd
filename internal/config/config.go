// Package config resolves the calculator's runtime configuration from
// command-line flags, BIGCALC_* environment variables and an optional TOML
// file, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "BIGCALC_"

// Default values for the configuration.
const (
	DefaultRadix   = 10
	DefaultTimeout = 5 * time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Radix is the radix operands are parsed in.
	Radix int
	// OutputRadix is the radix results are printed in.
	OutputRadix int
	// Rounds is the number of random Miller-Rabin witnesses; zero selects
	// the size-dependent default.
	Rounds int
	// Workers bounds the concurrency of range scans; zero means automatic.
	Workers int
	// Timeout is the maximum duration of a single command.
	Timeout time.Duration
	// Verbose prints full results instead of truncated ones.
	Verbose bool
	// Quiet prints bare results only, for scripting.
	Quiet bool
	// NoColor disables ANSI styling.
	NoColor bool
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string
	// SessionFile is the default path for REPL save/load.
	SessionFile string
	// ConfigFile is the TOML file read before environment overrides.
	ConfigFile string
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() AppConfig {
	return AppConfig{
		Radix:       DefaultRadix,
		OutputRadix: DefaultRadix,
		Timeout:     DefaultTimeout,
		LogLevel:    zerolog.LevelWarnValue,
	}
}

// RegisterFlags binds every configuration field to a flag of fs. The flag
// defaults are taken from cfg.
func RegisterFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.IntVarP(&cfg.Radix, "radix", "r", cfg.Radix, "radix of input operands (2-36)")
	fs.IntVar(&cfg.OutputRadix, "output-radix", cfg.OutputRadix, "radix of printed results (2-36)")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "random Miller-Rabin rounds (0 = size-dependent default)")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "concurrent workers for range scans (0 = automatic)")
	fs.DurationVarP(&cfg.Timeout, "timeout", "t", cfg.Timeout, "maximum duration of a command")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "print full results")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print bare results only")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this file on exit")
	fs.StringVar(&cfg.SessionFile, "session", cfg.SessionFile, "default REPL session file")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", cfg.ConfigFile, "TOML configuration file")
}

// Resolve completes cfg, whose flag values have already been parsed from fs,
// with the configuration file and the environment. Values set explicitly on
// the command line are never overridden. The result is validated.
func Resolve(cfg *AppConfig, fs *pflag.FlagSet) error {
	if cfg.ConfigFile == "" && !fs.Changed("config") {
		cfg.ConfigFile = lookupEnv("CONFIG")
	}
	if cfg.ConfigFile != "" {
		if err := applyFile(cfg, fs, cfg.ConfigFile); err != nil {
			return err
		}
	}
	if err := applyEnvOverrides(cfg, fs); err != nil {
		return err
	}
	cfg.Workers = ApplyAdaptiveWorkers(cfg.Workers)
	return cfg.Validate()
}

// Validate checks the ranges of every field and reports the first violation
// as an apperrors.ConfigError.
func (c AppConfig) Validate() error {
	switch {
	case c.Radix < 2 || c.Radix > 36:
		return apperrors.NewConfigError("radix %d out of range [2, 36]", c.Radix)
	case c.OutputRadix < 2 || c.OutputRadix > 36:
		return apperrors.NewConfigError("output radix %d out of range [2, 36]", c.OutputRadix)
	case c.Rounds < 0:
		return apperrors.NewConfigError("rounds must be non-negative, got %d", c.Rounds)
	case c.Workers < 0:
		return apperrors.NewConfigError("workers must be non-negative, got %d", c.Workers)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	case c.Verbose && c.Quiet:
		return apperrors.NewConfigError("--verbose and --quiet are mutually exclusive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	return nil
}

// String summarizes the configuration for debug logging.
func (c AppConfig) String() string {
	return fmt.Sprintf("radix=%d output-radix=%d rounds=%d workers=%d timeout=%s log-level=%s",
		c.Radix, c.OutputRadix, c.Rounds, c.Workers, c.Timeout, c.LogLevel)
}
