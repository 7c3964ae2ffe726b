// Package extract reads the occupancy of the 8x8 board from a screenshot
// using a calibrated board rectangle.
package extract

import (
	"image"

	"blockassist/internal/board"
	"blockassist/internal/sampler"
	"blockassist/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// Params holds the cell classification constants.
type Params struct {
	// Cells darker than this mean brightness (0-255) are Filled. Filled
	// pieces render darker and more saturated than empty slots in the stock theme.
	BrightnessThreshold float64

	// Sample points lie on a (2*SampleRadius+1)^2 grid around the cell
	// center, SampleSpacing pixels apart.
	SampleRadius  int
	SampleSpacing int

	// Board rectangles narrower or shorter than this after clamping are
	// treated as uncalibrated.
	MinSide int
}

// DefaultParams returns the classification constants for the stock theme.
func DefaultParams() Params {
	return Params{
		BrightnessThreshold: 128,
		SampleRadius:        1,
		SampleSpacing:       2,
		MinSide:             board.Size,
	}
}

// WithBrightnessThreshold returns a copy of params with a different threshold.
func (p Params) WithBrightnessThreshold(threshold float64) Params {
	p.BrightnessThreshold = threshold
	return p
}

// Extractor classifies board cells.
type Extractor struct {
	params Params
}

// New creates an Extractor.
func New(params Params) *Extractor {
	return &Extractor{params: params}
}

// Extract samples the 64 cells of rect in img. It never fails: a nil image,
// or a rectangle smaller than MinSide once clamped to the image, yields an
// all-Empty matrix.
func (e *Extractor) Extract(img image.Image, rect geometry.ScreenRect) board.Matrix {
	var m board.Matrix

	w, h := sampler.Size(img)
	clamped := rect.Clamp(w, h)
	if clamped.Width() < e.params.MinSide || clamped.Height() < e.params.MinSide {
		return m
	}

	cellW := float64(clamped.Width()) / board.Size
	cellH := float64(clamped.Height()) / board.Size

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cx := int(float64(clamped.Left) + (float64(col)+0.5)*cellW)
			cy := int(float64(clamped.Top) + (float64(row)+0.5)*cellH)

			mean, ok := e.cellBrightness(img, cx, cy)
			if ok && mean < e.params.BrightnessThreshold {
				m[row][col] = board.Filled
			}
		}
	}

	return m
}

// CellCenter returns the sample center of (row, col) for rect clamped to a
// w x h image. Renderers use it to place markers exactly where the
// extractor looked.
func CellCenter(rect geometry.ScreenRect, w, h, row, col int) geometry.PointInt {
	clamped := rect.Clamp(w, h)
	cellW := float64(clamped.Width()) / board.Size
	cellH := float64(clamped.Height()) / board.Size
	return geometry.PointInt{
		X: int(float64(clamped.Left) + (float64(col)+0.5)*cellW),
		Y: int(float64(clamped.Top) + (float64(row)+0.5)*cellH),
	}
}

// cellBrightness averages the brightness of the sparse sample grid around
// (cx, cy). Points outside the image are skipped; false means none remained.
func (e *Extractor) cellBrightness(img image.Image, cx, cy int) (float64, bool) {
	r := e.params.SampleRadius
	step := e.params.SampleSpacing
	samples := make([]float64, 0, (2*r+1)*(2*r+1))

	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if v, ok := sampler.Brightness(img, cx+dx*step, cy+dy*step); ok {
				samples = append(samples, v)
			}
		}
	}
	if len(samples) == 0 {
		return 0, false
	}
	return stat.Mean(samples, nil), true
}

// Pieces returns the shape of the piece shown in each preview rectangle.
// Every piece is modeled as a single cell at offset (0,0); true shape
// recognition from the preview pixels is not implemented.
func Pieces(rects []geometry.ScreenRect) [][]board.Offset {
	pieces := make([][]board.Offset, 0, len(rects))
	for range rects {
		pieces = append(pieces, []board.Offset{{Row: 0, Col: 0}})
	}
	return pieces
}
