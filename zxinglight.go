// Package zxinglight decodes 1-D and 2-D barcodes from raw greyscale pixel
// buffers.
//
// An image is binarized with one of two thresholding strategies and then
// decoded repeatedly, blanking out each symbol found, until no further symbol
// turns up. The per-symbology decoders come from github.com/ericlevine/zxinggo.
//
// Decoding failures never surface as errors. A blank, noisy or damaged image
// yields fewer symbols, and the reason is logged under the "zxinglight"
// logger. Errors are reserved for caller misuse and match ErrCallerMisuse.
package zxinglight

import (
	"sync"

	"github.com/thotypous/zxinglight/symbology"
)

var defaultDecoder = sync.OnceValue(func() *Decoder { return New() })

// ReadCodes decodes every symbol in a width x height image stored row-major,
// one byte per pixel. symbologyFilter is a symbology.ID, zero for all.
// The returned slice is empty, never nil, when nothing is found.
func ReadCodes(pixels []byte, width, height, symbologyFilter int, tryHarder, useHybridBinarizer bool) ([]string, error) {
	out, err := defaultDecoder().Decode(NewImageBuffer(pixels, width, height), Request{
		Hybrid:    useHybridBinarizer,
		Filter:    symbology.ID(symbologyFilter),
		TryHarder: tryHarder,
	})
	if err != nil {
		return nil, err
	}
	return out.Texts(), nil
}
