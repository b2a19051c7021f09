// Package imageio loads image files as greyscale pixel buffers.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/gen2brain/jpegn"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for data in no known image format.
var ErrUnsupported = errors.New("unsupported image format")

var jpegMagic = []byte{0xFF, 0xD8}

// Image is a decoded greyscale image.
type Image struct {
	Gray *image.Gray

	// Format is the name of the decoded format, such as "png".
	Format string

	// Scale is the factor the image was shrunk by to honour a size limit,
	// 1 when it was not resized.
	Scale float64
}

// Width returns the image width.
func (i *Image) Width() int { return i.Gray.Rect.Dx() }

// Height returns the image height.
func (i *Image) Height() int { return i.Gray.Rect.Dy() }

// Pixels returns the pixels row-major, one byte per pixel.
func (i *Image) Pixels() []byte { return i.Gray.Pix }

// Load reads and decodes the image at path. See Decode for maxSize.
func Load(path string, maxSize int) (*Image, error) {
	f, err := os.Open(path) //nolint:gosec // reading a user-supplied image is the point
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image in any supported format and converts it to
// greyscale. JPEG files are rotated according to their EXIF orientation.
// When maxSize > 0 an image whose longest edge exceeds maxSize is shrunk
// to fit.
func Decode(r io.Reader, maxSize int) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		img    image.Image
		format string
	)
	if bytes.HasPrefix(data, jpegMagic) {
		format = "jpeg"
		img, err = jpegn.Decode(bytes.NewReader(data), &jpegn.Options{AutoRotate: true})
	} else {
		img, format, err = image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupported
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	out := &Image{Format: format, Scale: 1}
	img, out.Scale = fit(img, maxSize)
	out.Gray = Grayscale(img)
	return out, nil
}

func fit(img image.Image, maxSize int) (image.Image, float64) {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSize <= 0 || longest <= maxSize {
		return img, 1
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Lanczos), float64(longest) / float64(maxSize)
}

// Grayscale converts img to a greyscale image with its origin at (0, 0).
// The luminance weights are the ones used by the zxing decoders, and fully
// transparent pixels become white.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) && g.Stride == b.Dx() {
		return g
	}
	lum := zxinggo.NewImageLuminanceSource(img)
	return &image.Gray{
		Pix:    lum.Matrix(),
		Stride: lum.Width(),
		Rect:   image.Rect(0, 0, lum.Width(), lum.Height()),
	}
}
