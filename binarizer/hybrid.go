package binarizer

import (
	zxinggo "github.com/ericlevine/zxinggo"
	"github.com/ericlevine/zxinggo/bitutil"
)

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	blockSizeMask    = blockSize - 1
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against the average black point of the
// surrounding 5x5 blocks. Images under 40 pixels in either dimension fall
// back to GlobalHistogram, as do rows requested through BlackRow.
type Hybrid struct {
	GlobalHistogram
	grid *blockGrid
}

// NewHybrid creates a Hybrid binarizer over source.
func NewHybrid(source zxinggo.LuminanceSource) *Hybrid {
	return &Hybrid{GlobalHistogram: *NewGlobalHistogram(source)}
}

// CreateBinarizer implements zxinggo.BinarizerFactory.
func (h *Hybrid) CreateBinarizer(source zxinggo.LuminanceSource) zxinggo.Binarizer {
	return NewHybrid(source)
}

// BlackMatrix binarizes the image with local thresholds.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	if h.matrix != nil {
		return h.matrix, nil
	}
	width, height := h.source.Width(), h.source.Height()
	if width < minimumDimension || height < minimumDimension {
		return h.GlobalHistogram.BlackMatrix()
	}

	luminances := h.source.Matrix()
	h.grid = newBlockGrid(luminances, width, height)
	h.matrix = h.grid.threshold(luminances)
	return h.matrix, nil
}

// BlackPoints returns a copy of the per-block black points, indexed
// [row][column]. It is nil until BlackMatrix has run on an image large
// enough for local thresholding.
func (h *Hybrid) BlackPoints() [][]int {
	if h.grid == nil {
		return nil
	}
	out := make([][]int, len(h.grid.blackPoints))
	for i, row := range h.grid.blackPoints {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// blockGrid holds the black point of every block. The last row and column
// of blocks are shifted inwards to stay inside the image, so they may
// overlap their neighbours.
type blockGrid struct {
	width, height int
	cols, rows    int
	blackPoints   [][]int
}

func newBlockGrid(luminances []byte, width, height int) *blockGrid {
	g := &blockGrid{
		width:  width,
		height: height,
		cols:   (width + blockSizeMask) >> blockSizePower,
		rows:   (height + blockSizeMask) >> blockSizePower,
	}
	g.blackPoints = make([][]int, g.rows)
	for row := range g.blackPoints {
		g.blackPoints[row] = make([]int, g.cols)
		for col := range g.blackPoints[row] {
			g.blackPoints[row][col] = g.measure(luminances, col, row)
		}
	}
	return g
}

// origin returns the top-left pixel of a block.
func (g *blockGrid) origin(col, row int) (x, y int) {
	return min(col<<blockSizePower, g.width-blockSize), min(row<<blockSizePower, g.height-blockSize)
}

// measure computes the black point of one block. Blocks with little
// contrast are assumed to be background: their black point is half their
// minimum, raised to the neighbours' estimate when that is brighter, so a
// white block inside a symbol does not turn black.
func (g *blockGrid) measure(luminances []byte, col, row int) int {
	x0, y0 := g.origin(col, row)
	sum, lo, hi := 0, 0xFF, 0
	for y := 0; y < blockSize; y++ {
		offset := (y0+y)*g.width + x0
		for x := 0; x < blockSize; x++ {
			p := int(luminances[offset+x])
			sum += p
			lo, hi = min(lo, p), max(hi, p)
		}
		// With enough contrast only the sum matters for the rest of the block.
		if hi-lo > minDynamicRange {
			for y++; y < blockSize; y++ {
				offset = (y0+y)*g.width + x0
				for x := 0; x < blockSize; x++ {
					sum += int(luminances[offset+x])
				}
			}
		}
	}

	if hi-lo > minDynamicRange {
		return sum >> (blockSizePower * 2)
	}
	average := lo / 2
	if row > 0 && col > 0 {
		bp := g.blackPoints
		neighbours := (bp[row-1][col] + 2*bp[row][col-1] + bp[row-1][col-1]) / 4
		if lo < neighbours {
			average = neighbours
		}
	}
	return average
}

func (g *blockGrid) threshold(luminances []byte) *bitutil.BitMatrix {
	matrix := bitutil.NewBitMatrixWithSize(g.width, g.height)
	for row := 0; row < g.rows; row++ {
		top := clampCenter(row, g.rows-3)
		for col := 0; col < g.cols; col++ {
			left := clampCenter(col, g.cols-3)
			sum := 0
			for dy := -2; dy <= 2; dy++ {
				points := g.blackPoints[top+dy]
				for dx := -2; dx <= 2; dx++ {
					sum += points[left+dx]
				}
			}
			x0, y0 := g.origin(col, row)
			thresholdBlock(luminances, x0, y0, sum/25, g.width, matrix)
		}
	}
	return matrix
}

// clampCenter keeps a 5x5 neighbourhood centred on value inside the grid.
func clampCenter(value, limit int) int {
	if value < 2 {
		return 2
	}
	return min(value, limit)
}

func thresholdBlock(luminances []byte, x0, y0, threshold, stride int, matrix *bitutil.BitMatrix) {
	for y := 0; y < blockSize; y++ {
		offset := (y0+y)*stride + x0
		for x := 0; x < blockSize; x++ {
			if int(luminances[offset+x]) <= threshold {
				matrix.Set(x0+x, y0+y)
			}
		}
	}
}
