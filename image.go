package zxinglight

import (
	"fmt"
	"image"
	"math"

	zxinggo "github.com/ericlevine/zxinggo"
)

// ImageBuffer is a read-only view over a region of an 8-bit greyscale image
// stored row-major, one byte per pixel. The caller owns Pixels and must not
// modify it during a decode.
type ImageBuffer struct {
	Pixels        []byte
	Width, Height int

	// The region to decode, in image coordinates.
	Left, Top                 int
	RegionWidth, RegionHeight int
}

// NewImageBuffer returns a view covering the whole image.
func NewImageBuffer(pixels []byte, width, height int) ImageBuffer {
	return ImageBuffer{
		Pixels:       pixels,
		Width:        width,
		Height:       height,
		RegionWidth:  width,
		RegionHeight: height,
	}
}

// Region narrows the view to a rectangle. It does not validate; Validate
// reports a region that falls outside the image.
func (b ImageBuffer) Region(left, top, width, height int) ImageBuffer {
	b.Left, b.Top = left, top
	b.RegionWidth, b.RegionHeight = width, height
	return b
}

// Bounds returns the region in image coordinates.
func (b ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Left+b.RegionWidth, b.Top+b.RegionHeight)
}

// Validate checks the buffer layout. Every violation wraps
// ErrInsufficientImage.
func (b ImageBuffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInsufficientImage, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/b.Height {
		return fmt.Errorf("%w: dimensions %dx%d overflow", ErrInsufficientImage, b.Width, b.Height)
	}
	if len(b.Pixels) < b.Width*b.Height {
		return fmt.Errorf("%w: %d bytes for %dx%d pixels", ErrInsufficientImage, len(b.Pixels), b.Width, b.Height)
	}
	if b.RegionWidth <= 0 || b.RegionHeight <= 0 {
		return fmt.Errorf("%w: empty region %dx%d", ErrInsufficientImage, b.RegionWidth, b.RegionHeight)
	}
	if b.Left < 0 || b.Top < 0 || b.Left > b.Width-b.RegionWidth || b.Top > b.Height-b.RegionHeight {
		return fmt.Errorf("%w: region %v outside %dx%d", ErrInsufficientImage, b.Bounds(), b.Width, b.Height)
	}
	return nil
}

// Gray returns the region as an image sharing the caller's pixels. Its
// bounds start at the origin, so (0, 0) is the region's top-left pixel.
func (b ImageBuffer) Gray() *image.Gray {
	start := b.Top*b.Width + b.Left
	end := (b.Top+b.RegionHeight-1)*b.Width + b.Left + b.RegionWidth
	return &image.Gray{
		Pix:    b.Pixels[start:end:end],
		Stride: b.Width,
		Rect:   image.Rect(0, 0, b.RegionWidth, b.RegionHeight),
	}
}

func (b ImageBuffer) luminance() *zxinggo.ImageLuminanceSource {
	return zxinggo.NewGrayImageLuminanceSource(b.Gray())
}
