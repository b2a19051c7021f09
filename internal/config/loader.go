package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the base name of the config file, without extension.
	FileName = "zxinglight"

	// EnvPrefix prefixes environment variables, as in ZXINGLIGHT_TRY_HARDER.
	EnvPrefix = "ZXINGLIGHT"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"format":       "format",
	"try-harder":   "try_harder",
	"hybrid":       "hybrid",
	"max-size":     "max_size",
	"max-attempts": "max_attempts",
	"log-level":    "log_level",
	"log-format":   "log_format",
	"metrics-file": "metrics_file",
}

// Loader merges flags, environment, config file and defaults, in that order
// of precedence.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with its own viper instance.
func NewLoader() *Loader {
	l := &Loader{v: viper.New()}
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	defaults := DefaultConfig()
	l.v.SetDefault("format", defaults.Format)
	l.v.SetDefault("try_harder", defaults.TryHarder)
	l.v.SetDefault("hybrid", defaults.Hybrid)
	l.v.SetDefault("max_size", defaults.MaxSize)
	l.v.SetDefault("max_attempts", defaults.MaxAttempts)
	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("log_format", defaults.LogFormat)
	l.v.SetDefault("metrics_file", defaults.MetricsFile)
	return l
}

// BindFlags binds every known flag present in flags.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads configFile, or searches the standard locations when it is
// empty, then returns the validated configuration. A missing file in the
// standard locations is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(FileName)
		l.v.SetConfigType("yaml")
		l.addConfigPaths()
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the file read by Load, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		l.v.AddConfigPath(filepath.Join(configDir, FileName))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", FileName))
	}
}
