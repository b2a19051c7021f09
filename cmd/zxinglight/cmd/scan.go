package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/thotypous/zxinglight"
	"github.com/thotypous/zxinglight/internal/config"
	"github.com/thotypous/zxinglight/internal/imageio"
	"github.com/thotypous/zxinglight/metrics"
	"github.com/thotypous/zxinglight/symbology"
)

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	level, _ := cfg.Level()
	if cfg.LogFormat == "json" {
		return zxinglight.NewLogger(w).Level(level)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Str("logger", zxinglight.LoggerName).
		Logger()
}

// scan decodes every path and prints what it finds. Files that cannot be
// read or contain no symbol are reported on stderr and fail the run.
func scan(stdout, stderr io.Writer, cfg *config.Config, paths []string) error {
	filter, err := cfg.Symbology()
	if err != nil {
		return err
	}

	var registry *prometheus.Registry
	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheus(registry)
	}

	decoder := zxinglight.New(
		zxinglight.WithLogger(newLogger(stderr, cfg)),
		zxinglight.WithRecorder(recorder),
		zxinglight.WithMaxAttempts(cfg.MaxAttempts),
	)
	req := zxinglight.Request{Hybrid: cfg.Hybrid, Filter: filter, TryHarder: cfg.TryHarder}

	failed := false
	for _, path := range paths {
		symbols, err := scanFile(decoder, path, cfg.MaxSize, req)
		if err != nil {
			fmt.Fprintf(stderr, "%s: error: %v\n", path, err)
			failed = true
			continue
		}
		if len(symbols) == 0 {
			fmt.Fprintf(stderr, "%s: no barcodes found\n", path)
			failed = true
			continue
		}
		for _, s := range symbols {
			if len(paths) > 1 {
				fmt.Fprintf(stdout, "%s: ", path)
			}
			fmt.Fprintf(stdout, "[%s] %s\n", s.Format, s.Text)
		}
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if failed {
		return &ExitError{Code: 1}
	}
	return nil
}

func scanFile(decoder *zxinglight.Decoder, path string, maxSize int, req zxinglight.Request) ([]symbology.Symbol, error) {
	img, err := imageio.Load(path, maxSize)
	if err != nil {
		return nil, err
	}
	out, err := decoder.Decode(zxinglight.NewImageBuffer(img.Pixels(), img.Width(), img.Height()), req)
	if err != nil {
		return nil, err
	}
	return out.Symbols, nil
}
