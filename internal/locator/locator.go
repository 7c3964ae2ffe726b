// Package locator finds the 8x8 puzzle board inside a raw screenshot.
//
// The screenshot is downscaled, converted to a brightness buffer, and every
// candidate square window is scored by how strongly brightness changes across
// the nine vertical and nine horizontal lines of an 8x8 grid laid over it.
// The best window above the acceptance threshold is mapped back to screenshot
// coordinates.
package locator

import (
	"image"

	"blockassist/internal/board"
	"blockassist/internal/sampler"
	"blockassist/pkg/geometry"

	"golang.org/x/image/draw"
)

// Params holds the tunable constants of the board search.
// See params.go for defaults.
type Params struct {
	MaxWidth        int       // Downscale cap in pixels
	SideFractions   []float64 // Candidate window sides, fractions of min(w, h)
	MinSideFraction float64   // Smallest plausible side
	MaxSideFraction float64   // Largest plausible side
	StepDivisor     int       // Scan step = width / StepDivisor
	MinStep         int       // Scan step floor in pixels
	ScoreThreshold  float64   // Best score below this means no board
}

// Result describes a located board.
type Result struct {
	Board  geometry.ScreenRect // Board bounds in screenshot coordinates
	Window geometry.ScaledRect // Winning window in downscaled coordinates
	Score  float64             // Grid score of the winning window
	Scale  geometry.Scale      // Downscale factor used for the scan
}

// Locator scans screenshots for the board.
type Locator struct {
	params Params
}

// New creates a Locator with the given parameters.
func New(params Params) *Locator {
	return &Locator{params: params}
}

// Params returns the parameters the locator was built with.
func (l *Locator) Params() Params {
	return l.params
}

// Locate finds the board in img. The second result is false when img is nil
// or no window scores at or above the threshold.
func (l *Locator) Locate(img image.Image) (Result, bool) {
	if img == nil {
		return Result{}, false
	}
	down, scale := Downscale(img, l.params.MaxWidth)
	gray := sampler.NewGray(down)

	window, score, ok := l.Scan(gray)
	if !ok || score < l.params.ScoreThreshold {
		return Result{Window: window, Score: score, Scale: scale}, false
	}

	return Result{
		Board:  scale.ToScreen(window),
		Window: window,
		Score:  score,
		Scale:  scale,
	}, true
}

// Locate finds the board using DefaultParams.
func Locate(img image.Image) (Result, bool) {
	return New(DefaultParams()).Locate(img)
}

// Scan slides every candidate square across gray and returns the highest
// scoring window. Sides are visited ascending, then y, then x; only a strictly
// greater score replaces the current best, so the first maximum wins.
// The third result is false when no window scored above zero.
func (l *Locator) Scan(gray *sampler.Gray) (geometry.ScaledRect, float64, bool) {
	if gray.Empty() {
		return geometry.ScaledRect{}, 0, false
	}
	w, h := gray.Width, gray.Height
	step := l.params.step(w)

	var best geometry.ScaledRect
	bestScore := 0.0
	found := false

	for _, side := range l.params.sides(w, h) {
		maxX := w - side - 1
		maxY := h - side - 1
		for y := 0; y <= maxY; y += step {
			for x := 0; x <= maxX; x += step {
				score := GridScore(gray, x, y, side, side)
				if score > bestScore {
					bestScore = score
					best = geometry.Scaled(x, y, x+side, y+side)
					found = true
				}
			}
		}
	}

	return best, bestScore, found
}

// GridScore measures how much the rw x rh window at (x0, y0) looks like an
// 8x8 grid. For each of the nine vertical lines it averages |left - right|
// brightness one pixel either side of the line over the window height, does
// the same for the nine horizontal lines, and normalizes the sum by rw + rh.
// The window must lie inside gray.
func GridScore(gray *sampler.Gray, x0, y0, rw, rh int) float64 {
	if rw <= 0 || rh <= 0 {
		return 0
	}

	var vScore float64
	for i := 0; i <= board.Size; i++ {
		x := x0 + i*rw/board.Size
		xL := max(x-1, x0)
		xR := min(x+1, x0+rw-1)
		sum := 0
		for y := y0; y < y0+rh; y++ {
			sum += absInt(gray.At(xL, y) - gray.At(xR, y))
		}
		vScore += float64(sum) / float64(rh)
	}

	var hScore float64
	for i := 0; i <= board.Size; i++ {
		y := y0 + i*rh/board.Size
		yT := max(y-1, y0)
		yB := min(y+1, y0+rh-1)
		sum := 0
		for x := x0; x < x0+rw; x++ {
			sum += absInt(gray.At(x, yT) - gray.At(x, yB))
		}
		hScore += float64(sum) / float64(rw)
	}

	return (vScore + hScore) / max(1.0, float64(rw+rh))
}

// Downscale shrinks img so its width does not exceed maxWidth, preserving the
// aspect ratio with bilinear filtering. Images already narrow enough are
// returned unchanged with a scale of 1.
func Downscale(img image.Image, maxWidth int) (image.Image, geometry.Scale) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxWidth <= 0 || w <= maxWidth {
		return img, 1
	}

	scale := float64(maxWidth) / float64(w)
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, geometry.Scale(scale)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
