// Package symbology identifies barcode formats and dispatches decode attempts
// to the per-format decoders.
package symbology

import (
	"strconv"
	"strings"

	zxinggo "github.com/ericlevine/zxinggo"
)

// ID is the stable integer identifier of a symbology shared with callers.
// Zero selects every supported symbology.
type ID int

const (
	All ID = iota
	Aztec
	Codabar
	Code39
	Code93
	Code128
	DataMatrix
	EAN8
	EAN13
	ITF
	MaxiCode
	PDF417
	QRCode
	RSS14
	RSSExpanded
	UPCA
	UPCE
	UPCEANExtension

	maxID = UPCEANExtension
)

var names = [...]string{
	All:             "ALL",
	Aztec:           "AZTEC",
	Codabar:         "CODABAR",
	Code39:          "CODE_39",
	Code93:          "CODE_93",
	Code128:         "CODE_128",
	DataMatrix:      "DATA_MATRIX",
	EAN8:            "EAN_8",
	EAN13:           "EAN_13",
	ITF:             "ITF",
	MaxiCode:        "MAXICODE",
	PDF417:          "PDF_417",
	QRCode:          "QR_CODE",
	RSS14:           "RSS_14",
	RSSExpanded:     "RSS_EXPANDED",
	UPCA:            "UPC_A",
	UPCE:            "UPC_E",
	UPCEANExtension: "UPC_EAN_EXTENSION",
}

// String returns the canonical name of the symbology.
func (id ID) String() string {
	if !id.Valid() {
		return "UNKNOWN(" + strconv.Itoa(int(id)) + ")"
	}
	return names[id]
}

// Valid reports whether id is part of the enumeration.
func (id ID) Valid() bool {
	return id >= All && id <= maxID
}

// Linear reports whether the symbology is a one-dimensional bar code.
func (id ID) Linear() bool {
	switch id {
	case Codabar, Code39, Code93, Code128, EAN8, EAN13, ITF, RSS14, RSSExpanded, UPCA, UPCE:
		return true
	}
	return false
}

// ParseID resolves a symbology from its name or its numeric id. Names are
// matched case-insensitively and with or without underscores, so "qr_code",
// "QR_CODE" and "qrcode" are equivalent.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return All, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		id := ID(n)
		if !id.Valid() {
			return All, unknownError(id)
		}
		return id, nil
	}
	key := normalizeName(s)
	for i, name := range names {
		if normalizeName(name) == key {
			return ID(i), nil
		}
	}
	return All, &UnknownError{Name: s}
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
}

var toFormat = map[ID]zxinggo.Format{
	Aztec:       zxinggo.FormatAztec,
	Codabar:     zxinggo.FormatCodabar,
	Code39:      zxinggo.FormatCode39,
	Code93:      zxinggo.FormatCode93,
	Code128:     zxinggo.FormatCode128,
	DataMatrix:  zxinggo.FormatDataMatrix,
	EAN8:        zxinggo.FormatEAN8,
	EAN13:       zxinggo.FormatEAN13,
	ITF:         zxinggo.FormatITF,
	MaxiCode:    zxinggo.FormatMaxiCode,
	PDF417:      zxinggo.FormatPDF417,
	QRCode:      zxinggo.FormatQRCode,
	RSS14:       zxinggo.FormatRSS14,
	RSSExpanded: zxinggo.FormatRSSExpanded,
	UPCA:        zxinggo.FormatUPCA,
	UPCE:        zxinggo.FormatUPCE,
}

// Format returns the decoder library's format for id. The second result is
// false for All and for ids the library cannot decode on their own.
func (id ID) Format() (zxinggo.Format, bool) {
	f, ok := toFormat[id]
	return f, ok
}

// FromFormat maps a decoder library format back to its stable id.
func FromFormat(f zxinggo.Format) (ID, bool) {
	for id, format := range toFormat {
		if format == f {
			return id, true
		}
	}
	return All, false
}
