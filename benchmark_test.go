package zxinglight_test

import (
	"image"
	"testing"

	zxinggo "github.com/ericlevine/zxinggo"

	"github.com/thotypous/zxinglight"
	"github.com/thotypous/zxinglight/internal/testimage"
)

var benchmarkSymbols = []struct {
	name    string
	content string
	format  zxinggo.Format
	width   int
	height  int
}{
	{"QRCode", "Hello, World! This is a QR code benchmark test.", zxinggo.FormatQRCode, 400, 400},
	{"DataMatrix", "Hello DataMatrix", zxinggo.FormatDataMatrix, 0, 0},
	{"Aztec", "Hello Aztec Code", zxinggo.FormatAztec, 0, 0},
	{"Code128", "Hello123", zxinggo.FormatCode128, 300, 100},
	{"EAN13", "5901234123457", zxinggo.FormatEAN13, 300, 100},
}

func BenchmarkDecode(b *testing.B) {
	d := quietDecoder()
	for _, tc := range benchmarkSymbols {
		c := testimage.New(480, 480)
		if _, err := c.Symbol(tc.content, tc.format, tc.width, tc.height, image.Pt(40, 40)); err != nil {
			b.Fatal(err)
		}
		img := zxinglight.NewImageBuffer(c.Pixels(), c.Width(), c.Height())
		for _, req := range []zxinglight.Request{{}, {Hybrid: true}, {Hybrid: true, TryHarder: true}} {
			name := tc.name + "/" + describe(req)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := d.Decode(img, req); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecodeTwoSymbols(b *testing.B) {
	d := quietDecoder()
	c := twoSymbols(b)
	img := zxinglight.NewImageBuffer(c.Pixels(), c.Width(), c.Height())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := d.Decode(img, zxinglight.Request{Hybrid: true})
		if err != nil {
			b.Fatal(err)
		}
		if len(out.Symbols) != 2 {
			b.Fatalf("found %d symbols", len(out.Symbols))
		}
	}
}

func describe(req zxinglight.Request) string {
	name := "global"
	if req.Hybrid {
		name = "hybrid"
	}
	if req.TryHarder {
		name += "+harder"
	}
	return name
}
