// This file contains environment variable utilities for configuration override.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// lookupEnv returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or "" if it is not set.
func lookupEnv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	if fs == nil {
		return false
	}
	for _, name := range names {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			return true
		}
	}
	return false
}

// parseIntEnv parses a non-negative decimal integer that must fit an int.
func parseIntEnv(v string) (int, error) {
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[int](parsed)
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the BIGCALC_ prefix) to the CLI flag
// it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string) error
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		n, err := parseIntEnv(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
		return nil
	}
}

func stringOverride(dst func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*dst(c) = v
		return nil
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"RADIX", "radix", intOverride(func(c *AppConfig) *int { return &c.Radix })},
	{"OUTPUT_RADIX", "output-radix", intOverride(func(c *AppConfig) *int { return &c.OutputRadix })},
	{"ROUNDS", "rounds", intOverride(func(c *AppConfig) *int { return &c.Rounds })},
	{"WORKERS", "workers", intOverride(func(c *AppConfig) *int { return &c.Workers })},

	// Duration overrides
	{"TIMEOUT", "timeout", func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	}},

	// String overrides
	{"LOG_LEVEL", "log-level", stringOverride(func(c *AppConfig) *string { return &c.LogLevel })},
	{"METRICS_FILE", "metrics-file", stringOverride(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"SESSION", "session", stringOverride(func(c *AppConfig) *string { return &c.SessionFile })},

	// Boolean overrides
	{"VERBOSE", "verbose", boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", "quiet", boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", "no-color", boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > File > Defaults.
//
// Supported environment variables (all prefixed with BIGCALC_):
//   - RADIX, OUTPUT_RADIX, ROUNDS, WORKERS, TIMEOUT, LOG_LEVEL,
//     METRICS_FILE, SESSION, VERBOSE, QUIET, NO_COLOR, CONFIG
//
// A malformed numeric or duration value is a configuration error rather
// than being silently ignored.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flag) {
			continue
		}
		val := lookupEnv(o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.envKey, val, err)
		}
	}
	return nil
}
