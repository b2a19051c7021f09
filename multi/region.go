package multi

import (
	"image"

	"github.com/ericlevine/zxinggo/bitutil"

	"github.com/thotypous/zxinglight/symbology"
)

const (
	// minLinearPad covers the quiet zone and the outer halves of the start
	// and stop patterns, whose centres are the reported points.
	minLinearPad = 8
	// crossPad is added above and below the grown bars.
	crossPad = 2
	// agreement is the share of pixels, out of agreementBase, a neighbouring
	// line must have in common with the scan line to count as bar.
	agreement     = 90
	agreementBase = 100

	minMatrixPad = 4
)

// matrixPad is the padding, in percent of the point span, added around 2-D
// symbols. QR points are finder centres three and a half modules inside the
// edge, so it needs far more than symbologies that report their corners.
func matrixPad(id symbology.ID) int {
	if id == symbology.QRCode {
		return 55
	}
	return 15
}

// footprint returns the part of the image occupied by sym, clipped to the
// matrix. It is empty when the decoder reported no points.
func footprint(sym symbology.Symbol, matrix *bitutil.BitMatrix) image.Rectangle {
	if sym.Bounds.Empty() {
		return image.Rectangle{}
	}
	bounds := image.Rect(0, 0, matrix.Width(), matrix.Height())
	if sym.Format.Linear() {
		return growLinear(sym.Bounds, matrix).Intersect(bounds)
	}
	return padMatrix(sym.Bounds, matrixPad(sym.Format)).Intersect(bounds)
}

func padMatrix(r image.Rectangle, percent int) image.Rectangle {
	dx := max(minMatrixPad, r.Dx()*percent/100)
	dy := max(minMatrixPad, r.Dy()*percent/100)
	return image.Rect(r.Min.X-dx, r.Min.Y-dy, r.Max.X+dx, r.Max.Y+dy)
}

// scanAxis reads the matrix along a scan line, transposed for vertical scans
// so one routine handles both orientations.
type scanAxis struct {
	matrix   *bitutil.BitMatrix
	vertical bool
}

func (a scanAxis) get(along, across int) bool {
	if a.vertical {
		return a.matrix.Get(across, along)
	}
	return a.matrix.Get(along, across)
}

func (a scanAxis) lines() int {
	if a.vertical {
		return a.matrix.Width()
	}
	return a.matrix.Height()
}

func (a scanAxis) length() int {
	if a.vertical {
		return a.matrix.Height()
	}
	return a.matrix.Width()
}

// agrees reports whether line other matches line ref over [lo, hi).
func (a scanAxis) agrees(ref, other, lo, hi int) bool {
	same := 0
	for i := lo; i < hi; i++ {
		if a.get(i, ref) == a.get(i, other) {
			same++
		}
	}
	return same*agreementBase >= (hi-lo)*agreement
}

// growLinear turns the points of a 1-D symbol, which lie on its scan line,
// into the rectangle covered by its bars.
func growLinear(r image.Rectangle, matrix *bitutil.BitMatrix) image.Rectangle {
	a := scanAxis{matrix: matrix, vertical: r.Dy() > r.Dx()}
	lo, hi, ref := r.Min.X, r.Max.X, (r.Min.Y+r.Max.Y-1)/2
	if a.vertical {
		lo, hi, ref = r.Min.Y, r.Max.Y, (r.Min.X+r.Max.X-1)/2
	}
	lo, hi = max(lo, 0), min(hi, a.length())
	if ref < 0 || ref >= a.lines() || lo >= hi {
		return image.Rectangle{}
	}

	first, last := ref, ref
	for first > 0 && a.agrees(ref, first-1, lo, hi) {
		first--
	}
	for last < a.lines()-1 && a.agrees(ref, last+1, lo, hi) {
		last++
	}

	pad := max(minLinearPad, (hi-lo)/8)
	lo, hi = lo-pad, hi+pad
	first, last = first-crossPad, last+1+crossPad
	if a.vertical {
		return image.Rect(first, lo, last, hi)
	}
	return image.Rect(lo, first, hi, last)
}

// covered reports whether r lies entirely inside one of masks.
func covered(r image.Rectangle, masks []image.Rectangle) bool {
	for _, m := range masks {
		if r.In(m) {
			return true
		}
	}
	return false
}
