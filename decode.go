package zxinglight

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/thotypous/zxinglight/binarizer"
	"github.com/thotypous/zxinglight/metrics"
	"github.com/thotypous/zxinglight/multi"
	"github.com/thotypous/zxinglight/symbology"
)

// Request selects how one image is decoded.
type Request struct {
	// Hybrid selects local thresholding instead of one global black point.
	Hybrid bool

	// Filter restricts decoding to one symbology. symbology.All tries every
	// registered decoder.
	Filter symbology.ID

	TryHarder bool
}

// Outcome holds the symbols found in one image, in detection order.
type Outcome struct {
	Symbols []symbology.Symbol
}

// Texts returns the payload of every symbol. It is never nil.
func (o Outcome) Texts() []string {
	texts := make([]string, len(o.Symbols))
	for i, s := range o.Symbols {
		texts[i] = s.Text
	}
	return texts
}

// Decoder runs the decode pipeline. It is immutable once created and safe
// for concurrent use.
type Decoder struct {
	registry    *symbology.Registry
	logger      *zerolog.Logger
	recorder    metrics.Recorder
	maxAttempts int

	locator *multi.Locator
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger for contained failures. The default is
// DefaultLogger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Decoder) { d.logger = &logger }
}

// WithRecorder sets the metrics recorder. The default discards observations.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(d *Decoder) { d.recorder = recorder }
}

// WithRegistry replaces the default decoder set.
func WithRegistry(registry *symbology.Registry) Option {
	return func(d *Decoder) { d.registry = registry }
}

// WithMaxAttempts bounds the decode passes per image.
func WithMaxAttempts(n int) Option {
	return func(d *Decoder) { d.maxAttempts = n }
}

// New creates a Decoder.
func New(opts ...Option) *Decoder {
	d := &Decoder{maxAttempts: multi.DefaultMaxAttempts}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = symbology.DefaultRegistry()
	}
	if d.recorder == nil {
		d.recorder = metrics.Nop{}
	}
	if d.logger == nil {
		logger := DefaultLogger()
		d.logger = &logger
	}
	reader := symbology.NewReader(d.registry, symbology.WithFailureHook(d.contain))
	d.locator = multi.NewLocator(reader, d.maxAttempts)
	return d
}

// Decode returns every symbol found in img.
//
// Only misuse is reported as an error: an invalid image layout or a filter
// no decoder supports, both matching ErrCallerMisuse. Any other failure,
// including a panic inside a decoder, is logged and yields fewer symbols.
func (d *Decoder) Decode(img ImageBuffer, req Request) (out Outcome, err error) {
	if err := img.Validate(); err != nil {
		return Outcome{}, misuse("decode", err)
	}
	cfg, err := symbology.NewConfig(req.Filter, req.TryHarder)
	if err != nil {
		return Outcome{}, misuse("decode", err)
	}
	if cfg.Filter != symbology.All && !d.registry.Supports(cfg.Filter) {
		return Outcome{}, misuse("decode", fmt.Errorf("%w: no registered decoder for %s", ErrUnknownSymbology, cfg.Filter))
	}

	strategy := binarizer.StrategyFor(req.Hybrid)
	start := time.Now()
	out = Outcome{Symbols: []symbology.Symbol{}}
	defer func() {
		if v := recover(); v != nil {
			d.contain("pipeline", &symbology.PanicError{Decoder: "pipeline", Value: v})
			out, err = Outcome{Symbols: []symbology.Symbol{}}, nil
		}
		d.recorder.ObserveDecode(strategy.String(), len(out.Symbols), time.Since(start))
	}()

	bitmap, err := binarizer.Binarize(strategy, img.luminance())
	if err != nil {
		d.contain("binarizer", err)
		return out, nil
	}
	symbols, err := d.locator.DecodeAll(bitmap, cfg)
	if err != nil {
		d.contain("locator", err)
	}
	for _, s := range symbols {
		out.Symbols = append(out.Symbols, s.Translate(img.Left, img.Top))
	}
	return out, nil
}

// contain logs and records a failure that does not reach the caller.
func (d *Decoder) contain(source string, err error) {
	category := Classify(err)
	d.recorder.ObserveFailure(source, string(category))

	var event *zerolog.Event
	switch category {
	case CategoryNotFound:
		event = d.logger.Debug()
	case CategoryChecksum, CategoryFormat:
		event = d.logger.Warn()
	default:
		event = d.logger.Error()
	}
	event.Str("decoder", source).Str("category", string(category)).Err(err).Msg("decode attempt failed")
}
