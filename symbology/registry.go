package symbology

// Registry is an ordered set of decoders. The order is the priority in which
// decoders are consulted, so ambiguous data always resolves the same way.
type Registry struct {
	entries []entry
}

type entry struct {
	decoder Decoder
	// deferred entries run after all others when trying harder. 1-D row
	// scanning is cheap on clean images but slow with the extra rows and
	// rotation, so it goes last once the caller asks for more effort.
	deferred bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the decoders for every supported symbology in
// zxing's MultiFormatReader order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.AddDeferred(OneD())
	r.Add(QR())
	r.Add(DataMatrixDecoder())
	r.Add(AztecDecoder())
	r.Add(PDF417Decoder())
	r.Add(MaxiCodeDecoder())
	return r
}

// Add appends d at the lowest priority.
func (r *Registry) Add(d Decoder) {
	r.entries = append(r.entries, entry{decoder: d})
}

// AddDeferred appends d at the lowest priority for normal effort, and moves it
// behind every regular decoder when trying harder.
func (r *Registry) AddDeferred(d Decoder) {
	r.entries = append(r.entries, entry{decoder: d, deferred: true})
}

// Len returns the number of registered decoders.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Supports reports whether some registered decoder handles id. All is
// supported by any non-empty registry.
func (r *Registry) Supports(id ID) bool {
	if id == All {
		return len(r.entries) > 0
	}
	for _, e := range r.entries {
		if e.decoder.Supports(id) {
			return true
		}
	}
	return false
}

// Select returns the decoders to consult for cfg, in priority order. With a
// filter set exactly one decoder is returned: the first that supports it.
func (r *Registry) Select(cfg Config) ([]Decoder, error) {
	if cfg.Filter != All {
		for _, e := range r.entries {
			if e.decoder.Supports(cfg.Filter) {
				return []Decoder{e.decoder}, nil
			}
		}
		return nil, unknownError(cfg.Filter)
	}

	decoders := make([]Decoder, 0, len(r.entries))
	var deferred []Decoder
	for _, e := range r.entries {
		if cfg.TryHarder && e.deferred {
			deferred = append(deferred, e.decoder)
			continue
		}
		decoders = append(decoders, e.decoder)
	}
	return append(decoders, deferred...), nil
}
