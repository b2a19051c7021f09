package symbology

import (
	"image"
	"math"

	zxinggo "github.com/ericlevine/zxinggo"
)

// Symbol is one decoded symbol.
type Symbol struct {
	Text   string
	Format ID

	// Points are the decoder's points of interest (finder pattern centres,
	// corners, or the ends of a 1-D scan line) in image coordinates.
	Points []image.Point

	// Bounds encloses Points. It is empty when the decoder reported none.
	Bounds image.Rectangle
}

// NewSymbol converts a decoder library result.
func NewSymbol(result *zxinggo.Result) Symbol {
	format, _ := FromFormat(result.Format)
	s := Symbol{Text: result.Text, Format: format}
	if len(result.Points) == 0 {
		return s
	}

	s.Points = make([]image.Point, len(result.Points))
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for i, p := range result.Points {
		pt := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
		s.Points[i] = pt
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	s.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	return s
}

// Same reports whether two symbols carry the same payload in the same format.
func (s Symbol) Same(other Symbol) bool {
	return s.Text == other.Text && s.Format == other.Format
}

// Translate returns a copy of s moved by (dx, dy).
func (s Symbol) Translate(dx, dy int) Symbol {
	if dx == 0 && dy == 0 {
		return s
	}
	if len(s.Points) == 0 {
		return s
	}
	d := image.Pt(dx, dy)
	points := make([]image.Point, len(s.Points))
	for i, p := range s.Points {
		points[i] = p.Add(d)
	}
	s.Points = points
	s.Bounds = s.Bounds.Add(d)
	return s
}
