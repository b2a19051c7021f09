package symbology

import (
	"errors"
	"testing"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableIDs(t *testing.T) {
	// Callers persist these numbers; they must never move.
	want := map[ID]int{
		All: 0, Aztec: 1, Codabar: 2, Code39: 3, Code93: 4, Code128: 5,
		DataMatrix: 6, EAN8: 7, EAN13: 8, ITF: 9, MaxiCode: 10, PDF417: 11,
		QRCode: 12, RSS14: 13, RSSExpanded: 14, UPCA: 15, UPCE: 16,
		UPCEANExtension: 17,
	}
	for id, n := range want {
		assert.Equal(t, n, int(id), id.String())
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]ID{
		"":            All,
		"0":           All,
		"all":         All,
		"qr_code":     QRCode,
		"QR_CODE":     QRCode,
		"qrcode":      QRCode,
		"ean13":       EAN13,
		"data-matrix": DataMatrix,
		" 5 ":         Code128,
		"pdf417":      PDF417,
	}
	for in, want := range cases {
		got, err := ParseID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"18", "-1", "hanxin"} {
		_, err := ParseID(in)
		assert.True(t, errors.Is(err, ErrUnknownSymbology), in)
	}
}

func TestFormatMapping(t *testing.T) {
	for id := All + 1; id <= maxID; id++ {
		f, ok := id.Format()
		if id == UPCEANExtension {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok, id.String())
		back, ok := FromFormat(f)
		require.True(t, ok)
		assert.Equal(t, id, back)
	}
	_, ok := All.Format()
	assert.False(t, ok)

	id, ok := FromFormat(zxinggo.FormatQRCode)
	assert.True(t, ok)
	assert.Equal(t, QRCode, id)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "QR_CODE", QRCode.String())
	assert.Equal(t, "UNKNOWN(42)", ID(42).String())
	assert.True(t, EAN13.Linear())
	assert.False(t, Aztec.Linear())
}
