// Package sampler provides brightness access over screenshot pixels.
//
// Coordinates passed to this package are relative to the image's bounds,
// so (0,0) is always the top-left pixel even for sub-images.
package sampler

import (
	"image"

	"blockassist/pkg/colorutil"
)

// Gray is a single-channel brightness buffer, one value per pixel in 0-255,
// computed as the integer mean (R+G+B)/3.
type Gray struct {
	Pix    []int // row-major
	Width  int
	Height int
}

// NewGray builds the brightness buffer for img. A nil image yields an empty buffer.
func NewGray(img image.Image) *Gray {
	if img == nil {
		return &Gray{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	g := &Gray{Pix: make([]int, w*h), Width: w, Height: h}

	idx := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, bl := colorutil.PixelRGB(img, x+b.Min.X, y+b.Min.Y)
			g.Pix[idx] = colorutil.Gray(r, gr, bl)
			idx++
		}
	}
	return g
}

// At returns the brightness at (x, y). The caller guarantees the point is in bounds.
func (g *Gray) At(x, y int) int {
	return g.Pix[y*g.Width+x]
}

// Empty reports whether the buffer holds no pixels.
func (g *Gray) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// Size returns the width and height of img, or zeros for a nil image.
func Size(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Brightness returns the mean of the R, G and B channels at (x, y).
// The second result is false when the point lies outside the image.
func Brightness(img image.Image, x, y int) (float64, bool) {
	w, h := Size(img)
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, false
	}
	b := img.Bounds()
	r, g, bl := colorutil.PixelRGB(img, x+b.Min.X, y+b.Min.Y)
	return colorutil.Brightness(r, g, bl), true
}
