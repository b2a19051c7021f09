// Package testimage renders synthetic barcodes for tests.
package testimage

import (
	"fmt"
	"image"
	"image/png"
	"os"

	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"

	// Writers register themselves with zxinggo.Encode.
	_ "github.com/ericlevine/zxinggo/aztec"
	_ "github.com/ericlevine/zxinggo/datamatrix"
	_ "github.com/ericlevine/zxinggo/oned"
	_ "github.com/ericlevine/zxinggo/pdf417"
	_ "github.com/ericlevine/zxinggo/qrcode"
)

const white = 0xFF

// Canvas is a white greyscale image symbols are drawn on.
type Canvas struct {
	img *image.Gray
}

// New returns a white canvas.
func New(width, height int) *Canvas {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = white
	}
	return &Canvas{img: img}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Draw copies matrix onto the canvas with its top-left corner at at. Set
// bits are black. Pixels falling outside the canvas are dropped.
func (c *Canvas) Draw(matrix *bitutil.BitMatrix, at image.Point) {
	for y := 0; y < matrix.Height(); y++ {
		for x := 0; x < matrix.Width(); x++ {
			p := at.Add(image.Pt(x, y))
			if !p.In(c.img.Rect) {
				continue
			}
			v := byte(white)
			if matrix.Get(x, y) {
				v = 0
			}
			c.img.Pix[c.img.PixOffset(p.X, p.Y)] = v
		}
	}
}

// Symbol encodes contents and draws it at at. Width and height follow
// zxinggo.Encode: zero asks for the symbol's natural size.
func (c *Canvas) Symbol(contents string, format zxinggo.Format, width, height int, at image.Point) (image.Rectangle, error) {
	matrix, err := zxinggo.Encode(contents, format, width, height, nil)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("encode %s %q: %w", format, contents, err)
	}
	c.Draw(matrix, at)
	return image.Rect(0, 0, matrix.Width(), matrix.Height()).Add(at), nil
}

// Fill paints r with luminance v.
func (c *Canvas) Fill(r image.Rectangle, v byte) {
	r = r.Intersect(c.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.img.Pix[c.img.PixOffset(x, y)] = v
		}
	}
}

// Gradient overlays a horizontal lighting gradient: luminance is scaled from
// dark at the left edge to unchanged at the right edge.
func (c *Canvas) Gradient(dark float64) {
	w := c.Width()
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < w; x++ {
			i := c.img.PixOffset(x, y)
			scale := dark + (1-dark)*float64(x)/float64(max(w-1, 1))
			c.img.Pix[i] = byte(float64(c.img.Pix[i]) * scale)
		}
	}
}

// Pixels returns the canvas as a row-major buffer, one byte per pixel.
func (c *Canvas) Pixels() []byte {
	return append([]byte(nil), c.img.Pix...)
}

// Gray returns the canvas image. It is shared, not copied.
func (c *Canvas) Gray() *image.Gray { return c.img }

// WritePNG saves the canvas.
func (c *Canvas) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
