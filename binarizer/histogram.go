package binarizer

import (
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram binarizes with a single black point estimated from a
// luminance histogram. Rows are sharpened and get their own estimate; the
// full matrix uses one estimate sampled from the centre of the image.
//
// A near-uniform image has no meaningful black point and binarizes to all
// white rather than failing.
type GlobalHistogram struct {
	source     zxinggo.LuminanceSource
	luminances []byte
	buckets    [luminanceBuckets]int
	matrix     *bitutil.BitMatrix
	blackPoint int
}

// NewGlobalHistogram creates a GlobalHistogram binarizer over source.
func NewGlobalHistogram(source zxinggo.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source, blackPoint: -1}
}

// CreateBinarizer implements zxinggo.BinarizerFactory so rotated and cropped
// bitmaps keep the same strategy.
func (g *GlobalHistogram) CreateBinarizer(source zxinggo.LuminanceSource) zxinggo.Binarizer {
	return NewGlobalHistogram(source)
}

// LuminanceSource returns the underlying source.
func (g *GlobalHistogram) LuminanceSource() zxinggo.LuminanceSource { return g.source }

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackPoint returns the threshold chosen for the matrix, or -1 if the
// matrix has not been computed or the image is uniform.
func (g *GlobalHistogram) BlackPoint() int { return g.blackPoint }

// BlackRow binarizes row y with a [-1 4 -1] sharpening kernel.
func (g *GlobalHistogram) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	width := g.source.Width()
	if row == nil || row.Size() < width {
		row = bitutil.NewBitArray(width)
	} else {
		row.Clear()
	}

	g.grow(width)
	luminances := g.source.Row(y, g.luminances)
	if luminances == nil {
		return nil, zxinggo.ErrNotFound
	}
	g.resetBuckets()
	for x := 0; x < width; x++ {
		g.buckets[luminances[x]>>luminanceShift]++
	}
	blackPoint, ok := estimateBlackPoint(g.buckets[:])
	if !ok {
		return row, nil
	}

	if width < 3 {
		for x := 0; x < width; x++ {
			if int(luminances[x]) < blackPoint {
				row.Set(x)
			}
		}
		return row, nil
	}
	left, center := int(luminances[0]), int(luminances[1])
	for x := 1; x < width-1; x++ {
		right := int(luminances[x+1])
		if (center*4-left-right)/2 < blackPoint {
			row.Set(x)
		}
		left, center = center, right
	}
	return row, nil
}

// BlackMatrix binarizes the whole image. The histogram is sampled from four
// rows across the central three fifths, where a symbol is most likely.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	if g.matrix != nil {
		return g.matrix, nil
	}
	width, height := g.source.Width(), g.source.Height()
	matrix := bitutil.NewBitMatrixWithSize(width, height)

	g.grow(width)
	g.resetBuckets()
	for i := 1; i < 5; i++ {
		luminances := g.source.Row(height*i/5, g.luminances)
		if luminances == nil {
			continue
		}
		for x := width / 5; x < width*4/5; x++ {
			g.buckets[luminances[x]>>luminanceShift]++
		}
	}
	blackPoint, ok := estimateBlackPoint(g.buckets[:])
	if ok {
		g.blackPoint = blackPoint
		luminances := g.source.Matrix()
		for y := 0; y < height; y++ {
			offset := y * width
			for x := 0; x < width; x++ {
				if int(luminances[offset+x]) < blackPoint {
					matrix.Set(x, y)
				}
			}
		}
	}
	g.matrix = matrix
	return matrix, nil
}

func (g *GlobalHistogram) grow(size int) {
	if len(g.luminances) < size {
		g.luminances = make([]byte, size)
	}
}

func (g *GlobalHistogram) resetBuckets() {
	g.buckets = [luminanceBuckets]int{}
}

// estimateBlackPoint finds the two dominant peaks of the histogram and returns
// the deepest valley between them, favouring valleys nearer the white peak.
// It reports false when the peaks are too close to separate ink from paper.
func estimateBlackPoint(buckets []int) (int, bool) {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak, firstPeakSize := 0, 0
	for x, count := range buckets {
		if count > firstPeakSize {
			firstPeak, firstPeakSize = x, count
		}
		if count > maxBucketCount {
			maxBucketCount = count
		}
	}

	// The second peak is weighted by squared distance from the first so a
	// shoulder of the first peak does not win.
	secondPeak, secondPeakScore := 0, 0
	for x, count := range buckets {
		dist := x - firstPeak
		if score := count * dist * dist; score > secondPeakScore {
			secondPeak, secondPeakScore = x, score
		}
	}
	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}
	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, false
	}

	bestValley, bestValleyScore := secondPeak-1, -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley, bestValleyScore = x, score
		}
	}
	return bestValley << luminanceShift, true
}
