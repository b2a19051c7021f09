package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thotypous/zxinglight/symbology"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	id, err := cfg.Symbology()
	require.NoError(t, err)
	assert.Equal(t, symbology.All, id)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)
}

func TestValidateReportsEverything(t *testing.T) {
	cfg := Config{Format: "hanxin", MaxSize: -1, MaxAttempts: 0, LogLevel: "loud", LogFormat: "xml"}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"format", "max_size", "max_attempts", "log_level", "log_format"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.ErrorIs(t, err, symbology.ErrUnknownSymbology)
}

// isolate runs the test from an empty directory with no ZXINGLIGHT_ variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"FORMAT", "TRY_HARDER", "HYBRID", "MAX_SIZE", "MAX_ATTEMPTS", "LOG_LEVEL", "LOG_FORMAT", "METRICS_FILE"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: qr_code\nhybrid: true\nmax_size: 800\nlog_level: info\n"), 0o600))
	t.Setenv("ZXINGLIGHT_MAX_SIZE", "1024")
	t.Setenv("ZXINGLIGHT_TRY_HARDER", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "warn", "")
	flags.Bool("hybrid", false, "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(flags))
	cfg, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qr_code", cfg.Format)
	assert.True(t, cfg.Hybrid, "file beats an unset flag's default")
	assert.Equal(t, 1024, cfg.MaxSize, "env beats file")
	assert.True(t, cfg.TryHarder)
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats file")
	assert.Equal(t, path, l.ConfigFileUsed())
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("format: 12\n"), 0o600))

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	id, err := cfg.Symbology()
	require.NoError(t, err)
	assert.Equal(t, symbology.QRCode, id)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := NewLoader().Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_attempts: 0\n"), 0o600))
	_, err = NewLoader().Load(bad)
	assert.ErrorContains(t, err, "max_attempts")
}

func TestWriteYAMLLoadsBack(t *testing.T) {
	dir := isolate(t)
	want := DefaultConfig()
	want.Format = "qr_code"
	want.TryHarder = true
	want.MaxSize = 1200
	want.MetricsFile = "scan.prom"

	path := filepath.Join(dir, "written.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, want.WriteYAML(f))
	require.NoError(t, f.Close())

	got, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}
