package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// halves is a 40x20 image, black on the left and white on the right.
func halves() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x < 20 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	encoders := map[string]func(io.Writer, image.Image) error{
		"png":  png.Encode,
		"bmp":  bmp.Encode,
		"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
		"gif":  func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) },
		"jpeg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, &jpeg.Options{Quality: 95}) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, halves()))

			img, err := Decode(&buf, 0)
			require.NoError(t, err)
			assert.Equal(t, name, img.Format)
			assert.Equal(t, 40, img.Width())
			assert.Equal(t, 20, img.Height())
			assert.Equal(t, 1.0, img.Scale)
			assert.Len(t, img.Pixels(), 40*20)
			assert.Less(t, img.Gray.GrayAt(5, 10).Y, uint8(40))
			assert.Greater(t, img.Gray.GrayAt(35, 10).Y, uint8(215))
		})
	}
}

func TestDecodeShrinksToMaxSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, halves()))

	img, err := Decode(&buf, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width())
	assert.Equal(t, 5, img.Height())
	assert.Equal(t, 4.0, img.Scale)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")), 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "halves.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, halves()))
	require.NoError(t, f.Close())

	img, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGrayscaleKeepsGrayImages(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 3))
	assert.Same(t, g, Grayscale(g))

	sub := g.SubImage(image.Rect(1, 1, 3, 3))
	out := Grayscale(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
}
