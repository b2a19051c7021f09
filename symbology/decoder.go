package symbology

import (
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/aztec"
	"github.com/ericlevine/zxinggo/datamatrix"
	"github.com/ericlevine/zxinggo/maxicode"
	"github.com/ericlevine/zxinggo/oned"
	"github.com/ericlevine/zxinggo/pdf417"
	"github.com/ericlevine/zxinggo/qrcode"
)

// Decoder is one symbology decoder, or a family of them sharing a scan
// strategy such as the row-scanning 1-D readers. Implementations must treat
// the bitmap as read-only.
type Decoder interface {
	// Name identifies the decoder in logs and metrics.
	Name() string

	// Supports reports whether the decoder can produce symbols of id.
	Supports(id ID) bool

	// Decode looks for one symbol accepted by cfg.
	Decode(bitmap *zxinggo.BinaryBitmap, cfg Config) (*zxinggo.Result, error)
}

// readerDecoder adapts the decoder library's Reader constructors. A fresh
// reader is built for each attempt so no state is carried between calls.
type readerDecoder struct {
	name      string
	ids       []ID
	newReader func(opts *zxinggo.DecodeOptions) zxinggo.Reader
}

// NewReaderDecoder wraps a decoder library Reader constructor as a Decoder
// covering ids.
func NewReaderDecoder(name string, ids []ID, newReader func(opts *zxinggo.DecodeOptions) zxinggo.Reader) Decoder {
	return &readerDecoder{name: name, ids: ids, newReader: newReader}
}

func (d *readerDecoder) Name() string { return d.name }

func (d *readerDecoder) Supports(id ID) bool {
	for _, supported := range d.ids {
		if supported == id {
			return true
		}
	}
	return false
}

func (d *readerDecoder) Decode(bitmap *zxinggo.BinaryBitmap, cfg Config) (*zxinggo.Result, error) {
	opts := cfg.options()
	return d.newReader(opts).Decode(bitmap, opts)
}

// linearIDs lists the 1-D symbologies in the order the row decoder tries them.
var linearIDs = []ID{EAN13, UPCA, EAN8, UPCE, Code39, Code93, Code128, ITF, Codabar, RSS14, RSSExpanded}

// OneD returns the row-scanning decoder for every 1-D symbology.
func OneD() Decoder {
	return NewReaderDecoder("oned", linearIDs, func(opts *zxinggo.DecodeOptions) zxinggo.Reader {
		return oned.NewMultiFormatOneDReader(opts)
	})
}

// QR returns the QR Code decoder.
func QR() Decoder {
	return NewReaderDecoder("qrcode", []ID{QRCode}, func(*zxinggo.DecodeOptions) zxinggo.Reader {
		return qrcode.NewReader()
	})
}

// DataMatrixDecoder returns the Data Matrix decoder.
func DataMatrixDecoder() Decoder {
	return NewReaderDecoder("datamatrix", []ID{DataMatrix}, func(*zxinggo.DecodeOptions) zxinggo.Reader {
		return datamatrix.NewReader()
	})
}

// AztecDecoder returns the Aztec decoder.
func AztecDecoder() Decoder {
	return NewReaderDecoder("aztec", []ID{Aztec}, func(*zxinggo.DecodeOptions) zxinggo.Reader {
		return aztec.NewReader()
	})
}

// PDF417Decoder returns the PDF417 decoder.
func PDF417Decoder() Decoder {
	return NewReaderDecoder("pdf417", []ID{PDF417}, func(*zxinggo.DecodeOptions) zxinggo.Reader {
		return pdf417.NewPDF417Reader()
	})
}

// MaxiCodeDecoder returns the MaxiCode decoder.
func MaxiCodeDecoder() Decoder {
	return NewReaderDecoder("maxicode", []ID{MaxiCode}, func(*zxinggo.DecodeOptions) zxinggo.Reader {
		return maxicode.NewReader()
	})
}
