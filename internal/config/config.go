// Package config loads the zxinglight command configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/thotypous/zxinglight/multi"
	"github.com/thotypous/zxinglight/symbology"
)

// Config is the complete command configuration.
type Config struct {
	// Format restricts decoding to one symbology, by name or id.
	Format    string `mapstructure:"format" yaml:"format"`
	TryHarder bool   `mapstructure:"try_harder" yaml:"try_harder"`
	Hybrid    bool   `mapstructure:"hybrid" yaml:"hybrid"`

	// MaxSize shrinks images whose longest edge is larger. 0 disables.
	MaxSize     int `mapstructure:"max_size" yaml:"max_size"`
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"` // console or json

	// MetricsFile receives Prometheus metrics in text format after the run.
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Format:      "all",
		MaxAttempts: multi.DefaultMaxAttempts,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// Symbology resolves Format.
func (c Config) Symbology() (symbology.ID, error) {
	if strings.EqualFold(strings.TrimSpace(c.Format), "all") {
		return symbology.All, nil
	}
	return symbology.ParseID(c.Format)
}

// Level resolves LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Symbology(); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	if c.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("max_size must not be negative, got %d", c.MaxSize))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// WriteYAML writes c in the format read from configuration files.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
