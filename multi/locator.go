// Package multi finds every symbol in an image by decoding repeatedly and
// blanking out each symbol once it has been read.
package multi

import (
	"errors"
	"fmt"
	"image"

	zxinggo "github.com/ericlevine/zxinggo"

	"github.com/thotypous/zxinglight/binarizer"
	"github.com/thotypous/zxinglight/symbology"
)

// DefaultMaxAttempts bounds the decode passes over one image.
const DefaultMaxAttempts = 16

// SingleReader decodes at most one symbol from a bitmap.
type SingleReader interface {
	DecodeOne(bitmap *zxinggo.BinaryBitmap, cfg symbology.Config) (*symbology.Symbol, error)
}

// Locator drives a SingleReader over an image until no further symbol is
// found. It is safe for concurrent use when its reader is.
type Locator struct {
	reader      SingleReader
	maxAttempts int
}

// NewLocator creates a Locator. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewLocator(reader SingleReader, maxAttempts int) *Locator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Locator{reader: reader, maxAttempts: maxAttempts}
}

// MaxAttempts returns the pass limit.
func (l *Locator) MaxAttempts() int { return l.maxAttempts }

// DecodeAll returns the distinct symbols in bitmap in detection order.
//
// After each pass the symbol's footprint is painted white and the image is
// binarized again, so the next pass can only find something else. Locating
// stops when a pass finds nothing, when a symbol has no footprint or one
// already masked, or after MaxAttempts passes.
//
// The error is nil when locating ran out of symbols. Otherwise it reports
// why locating stopped early; the symbols found so far are still returned.
func (l *Locator) DecodeAll(bitmap *binarizer.Bitmap, cfg symbology.Config) ([]symbology.Symbol, error) {
	var (
		symbols []symbology.Symbol
		masks   []image.Rectangle
		current = bitmap
	)
	for pass := 0; pass < l.maxAttempts; pass++ {
		sym, err := l.reader.DecodeOne(current.BinaryBitmap, cfg)
		if errors.Is(err, symbology.ErrNotFound) {
			return symbols, nil
		}
		if err != nil {
			return symbols, fmt.Errorf("pass %d: %w", pass, err)
		}
		if !duplicate(symbols, *sym) {
			symbols = append(symbols, *sym)
		}

		matrix, err := current.BlackMatrix()
		if err != nil {
			return symbols, fmt.Errorf("pass %d: %w", pass, err)
		}
		region := footprint(*sym, matrix)
		if region.Empty() || covered(region, masks) {
			return symbols, nil
		}
		masks = append(masks, region)
		if current, err = bitmap.Masked(masks...); err != nil {
			return symbols, fmt.Errorf("mask %v: %w", region, err)
		}
	}
	return symbols, nil
}

func duplicate(symbols []symbology.Symbol, sym symbology.Symbol) bool {
	for _, s := range symbols {
		if s.Same(sym) {
			return true
		}
	}
	return false
}
