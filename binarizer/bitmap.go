package binarizer

import (
	"errors"
	"fmt"
	"image"

	zxinggo "github.com/ericlevine/zxinggo"
)

// ErrInsufficientImage is returned for an image with no pixels to binarize.
var ErrInsufficientImage = errors.New("insufficient image")

const background = 0xFF

// Bitmap is a binarized image. It remembers its luminance and strategy so
// that regions can be blanked out and the image binarized again.
type Bitmap struct {
	*zxinggo.BinaryBitmap
	strategy Strategy
	source   zxinggo.LuminanceSource
}

// Binarize thresholds source with strategy. The black matrix is computed
// before returning, so later reads only hit the cache.
func Binarize(strategy Strategy, source zxinggo.LuminanceSource) (*Bitmap, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no luminance source", ErrInsufficientImage)
	}
	if source.Width() <= 0 || source.Height() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInsufficientImage, source.Width(), source.Height())
	}
	b, err := New(strategy, source)
	if err != nil {
		return nil, err
	}
	bitmap := zxinggo.NewBinaryBitmap(b)
	if _, err := bitmap.BlackMatrix(); err != nil {
		return nil, fmt.Errorf("binarize %v: %w", strategy, err)
	}
	return &Bitmap{BinaryBitmap: bitmap, strategy: strategy, source: source}, nil
}

// Strategy returns the strategy the bitmap was built with.
func (b *Bitmap) Strategy() Strategy { return b.strategy }

// Bounds returns the rectangle covered by the bitmap.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width(), b.Height())
}

// Masked returns a new bitmap of the same strategy in which every rectangle
// is painted with background luminance before binarizing. Rectangles are
// clipped to the image. The receiver is not modified.
func (b *Bitmap) Masked(rects ...image.Rectangle) (*Bitmap, error) {
	width, height := b.source.Width(), b.source.Height()
	luminances := append([]byte(nil), b.source.Matrix()...)
	bounds := b.Bounds()
	for _, r := range rects {
		r = r.Intersect(bounds)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := luminances[y*width+r.Min.X : y*width+r.Max.X]
			for i := range row {
				row[i] = background
			}
		}
	}
	gray := &image.Gray{Pix: luminances, Stride: width, Rect: image.Rect(0, 0, width, height)}
	return Binarize(b.strategy, zxinggo.NewGrayImageLuminanceSource(gray))
}
