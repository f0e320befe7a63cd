package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// fileConfig mirrors AppConfig with TOML keys. Timeout is kept as a string so
// that it can be written as "30s" in the file.
type fileConfig struct {
	Radix       int    `toml:"radix"`
	OutputRadix int    `toml:"output_radix"`
	Rounds      int    `toml:"rounds"`
	Workers     int    `toml:"workers"`
	Timeout     string `toml:"timeout"`
	Verbose     bool   `toml:"verbose"`
	Quiet       bool   `toml:"quiet"`
	NoColor     bool   `toml:"no_color"`
	LogLevel    string `toml:"log_level"`
	MetricsFile string `toml:"metrics_file"`
	SessionFile string `toml:"session"`
}

// applyFile loads path and copies every key it defines into cfg, unless the
// corresponding flag was set explicitly. Unknown keys are rejected.
func applyFile(cfg *AppConfig, fs *pflag.FlagSet, path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return apperrors.NewConfigError("%s: failed to parse TOML: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return apperrors.NewConfigError("%s: unknown key %q", path, undecoded[0].String())
	}

	set := func(key, flag string, apply func()) {
		if meta.IsDefined(key) && !isFlagSetAny(fs, flag) {
			apply()
		}
	}
	set("radix", "radix", func() { cfg.Radix = fc.Radix })
	set("output_radix", "output-radix", func() { cfg.OutputRadix = fc.OutputRadix })
	set("rounds", "rounds", func() { cfg.Rounds = fc.Rounds })
	set("workers", "workers", func() { cfg.Workers = fc.Workers })
	set("verbose", "verbose", func() { cfg.Verbose = fc.Verbose })
	set("quiet", "quiet", func() { cfg.Quiet = fc.Quiet })
	set("no_color", "no-color", func() { cfg.NoColor = fc.NoColor })
	set("log_level", "log-level", func() { cfg.LogLevel = fc.LogLevel })
	set("metrics_file", "metrics-file", func() { cfg.MetricsFile = fc.MetricsFile })
	set("session", "session", func() { cfg.SessionFile = fc.SessionFile })

	if meta.IsDefined("timeout") && !isFlagSetAny(fs, "timeout") {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("%s: invalid timeout %q: %v", path, fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}
