package symbology

import zxinggo "github.com/ericlevine/zxinggo"

// Config narrows which symbologies are attempted and how much effort each
// attempt spends. The zero value tries every symbology at normal effort.
type Config struct {
	// Filter restricts decoding to one symbology; All consults every decoder.
	Filter ID

	// TryHarder trades latency for robustness: more scan lines, rotated
	// scans for 1-D codes and a denser finder-pattern search.
	TryHarder bool
}

// NewConfig builds a Config, rejecting filters that are not part of the
// enumeration or that have no decoder.
func NewConfig(filter ID, tryHarder bool) (Config, error) {
	if filter != All {
		if _, ok := filter.Format(); !ok {
			return Config{}, unknownError(filter)
		}
	}
	return Config{Filter: filter, TryHarder: tryHarder}, nil
}

// Accepts reports whether a symbol of the given id satisfies the filter.
func (c Config) Accepts(id ID) bool {
	return c.Filter == All || c.Filter == id
}

func (c Config) options() *zxinggo.DecodeOptions {
	opts := &zxinggo.DecodeOptions{TryHarder: c.TryHarder}
	if f, ok := c.Filter.Format(); ok {
		opts.PossibleFormats = []zxinggo.Format{f}
	}
	return opts
}
