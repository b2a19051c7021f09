package symbology

import (
	"fmt"

	zxinggo "github.com/ericlevine/zxinggo"
)

// FailureHook observes every failed decode attempt. err is never nil.
type FailureHook func(decoder string, err error)

// Reader tries the registered decoders in priority order and returns the
// first symbol found. It holds no per-call state and is safe for concurrent
// use.
type Reader struct {
	registry  *Registry
	onFailure FailureHook
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithFailureHook reports each failed attempt to hook.
func WithFailureHook(hook FailureHook) ReaderOption {
	return func(r *Reader) { r.onFailure = hook }
}

// NewReader creates a Reader over registry. A nil registry uses
// DefaultRegistry.
func NewReader(registry *Registry, opts ...ReaderOption) *Reader {
	if registry == nil {
		registry = DefaultRegistry()
	}
	r := &Reader{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DecodeOne returns the first symbol accepted by cfg, or ErrNotFound.
func (r *Reader) DecodeOne(bitmap *zxinggo.BinaryBitmap, cfg Config) (*Symbol, error) {
	decoders, err := r.registry.Select(cfg)
	if err != nil {
		return nil, err
	}
	for _, d := range decoders {
		result, err := attempt(d, bitmap, cfg)
		if err != nil {
			r.fail(d, err)
			continue
		}
		sym := NewSymbol(result)
		if !cfg.Accepts(sym.Format) {
			r.fail(d, fmt.Errorf("%s decoded %s outside filter %s: %w", d.Name(), result.Format, cfg.Filter, ErrNotFound))
			continue
		}
		return &sym, nil
	}
	return nil, ErrNotFound
}

func (r *Reader) fail(d Decoder, err error) {
	if r.onFailure != nil {
		r.onFailure(d.Name(), err)
	}
}

// attempt runs one decoder, converting a panic into a *PanicError so a
// malformed image cannot take down the caller.
func attempt(d Decoder, bitmap *zxinggo.BinaryBitmap, cfg Config) (result *zxinggo.Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			result = nil
			err = &PanicError{Decoder: d.Name(), Value: v}
		}
	}()
	result, err = d.Decode(bitmap, cfg)
	if err == nil && result == nil {
		err = ErrNotFound
	}
	return result, err
}
