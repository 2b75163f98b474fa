// Package config loads voxtune settings from a YAML file with environment
// variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the YAML file, then
// VOXTUNE_* environment variables (for example VOXTUNE_HISTORY_MAX_ENTRIES
// or VOXTUNE_RANGES_PITCH_MAX).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "VOXTUNE_"

// Config contains all voxtune configuration options.
type Config struct {
	History HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Ranges  RangesConfig  `yaml:"ranges" envPrefix:"RANGES_"`
	Script  ScriptConfig  `yaml:"script" envPrefix:"SCRIPT_"`
}

// HistoryConfig controls the undo history.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries" env:"MAX_ENTRIES"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"` // text, logfmt or json
}

// Range bounds one synthesis parameter in the editor. Edits are snapped
// to multiples of Step when it is positive.
type Range struct {
	Min  float64 `yaml:"min" env:"MIN"`
	Max  float64 `yaml:"max" env:"MAX"`
	Step float64 `yaml:"step" env:"STEP"`
}

// RangesConfig holds the editor range of every synthesis parameter.
type RangesConfig struct {
	Pitch       Range `yaml:"pitch" envPrefix:"PITCH_"`
	Speed       Range `yaml:"speed" envPrefix:"SPEED_"`
	Intonation  Range `yaml:"intonation" envPrefix:"INTONATION_"`
	Volume      Range `yaml:"volume" envPrefix:"VOLUME_"`
	PreSilence  Range `yaml:"pre_silence" envPrefix:"PRE_SILENCE_"`
	PostSilence Range `yaml:"post_silence" envPrefix:"POST_SILENCE_"`
}

// ByName returns the ranges keyed by parameter name.
func (r RangesConfig) ByName() map[string]Range {
	return map[string]Range{
		"pitch":        r.Pitch,
		"speed":        r.Speed,
		"intonation":   r.Intonation,
		"volume":       r.Volume,
		"pre_silence":  r.PreSilence,
		"post_silence": r.PostSilence,
	}
}

// ScriptConfig limits edit scripts.
type ScriptConfig struct {
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
	MaxEdits int           `yaml:"max_edits" env:"MAX_EDITS"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Ranges: RangesConfig{
			Pitch:       Range{Min: -0.15, Max: 0.15, Step: 0.01},
			Speed:       Range{Min: 0.5, Max: 2.0, Step: 0.01},
			Intonation:  Range{Min: 0, Max: 2.0, Step: 0.01},
			Volume:      Range{Min: 0, Max: 2.0, Step: 0.01},
			PreSilence:  Range{Min: 0, Max: 1.5, Step: 0.01},
			PostSilence: Range{Min: 0, Max: 1.5, Step: 0.01},
		},
		Script: ScriptConfig{
			Timeout:  5 * time.Second,
			MaxEdits: 100_000,
		},
	}
}

// Load reads the configuration from path and the process environment.
// An empty path skips the file.
func Load(path string) (Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix})
}

// LoadWithEnv is like Load but reads overrides from environ instead of the
// process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func load(path string, opts env.Options) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Err: err}
		}
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("%w: history.max_entries must not be negative", ErrInvalidConfig)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	for name, r := range c.Ranges.ByName() {
		if r.Min > r.Max {
			return fmt.Errorf("%w: ranges.%s min %v exceeds max %v", ErrInvalidConfig, name, r.Min, r.Max)
		}
		if r.Step < 0 {
			return fmt.Errorf("%w: ranges.%s step must not be negative", ErrInvalidConfig, name)
		}
	}

	if c.Script.Timeout < 0 {
		return fmt.Errorf("%w: script.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Script.MaxEdits < 0 {
		return fmt.Errorf("%w: script.max_edits must not be negative", ErrInvalidConfig)
	}
	return nil
}
