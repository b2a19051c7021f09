// Package binarizer converts greyscale luminance into black/white bitmaps.
package binarizer

import (
	"fmt"
	"strings"

	zxinggo "github.com/ericlevine/zxinggo"
)

// Strategy selects the thresholding algorithm.
type Strategy int

const (
	// StrategyGlobalHistogram picks one black point for the whole image. Fast,
	// but weak under uneven lighting.
	StrategyGlobalHistogram Strategy = iota

	// StrategyHybrid thresholds 8x8 blocks against their neighbourhood. Slower,
	// robust to shadows and gradients.
	StrategyHybrid
)

// StrategyFor maps the boolean selector used by callers to a Strategy.
func StrategyFor(hybrid bool) Strategy {
	if hybrid {
		return StrategyHybrid
	}
	return StrategyGlobalHistogram
}

func (s Strategy) String() string {
	switch s {
	case StrategyGlobalHistogram:
		return "global_histogram"
	case StrategyHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy accepts "hybrid" and "global_histogram" (or "global").
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hybrid":
		return StrategyHybrid, nil
	case "global", "global_histogram", "globalhistogram", "histogram":
		return StrategyGlobalHistogram, nil
	}
	return 0, fmt.Errorf("unknown binarizer %q", name)
}

// New creates the binarizer for strategy over source.
func New(strategy Strategy, source zxinggo.LuminanceSource) (zxinggo.Binarizer, error) {
	switch strategy {
	case StrategyGlobalHistogram:
		return NewGlobalHistogram(source), nil
	case StrategyHybrid:
		return NewHybrid(source), nil
	}
	return nil, fmt.Errorf("unknown binarizer %v", strategy)
}
