// Package colorutil provides shared color utilities for the block assistant.
package colorutil

import (
	"image"
	"image/color"
)

// Overlay colors used by the renderers.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// RGB8 returns the 8-bit red, green and blue channels of a color.
func RGB8(c color.Color) (r, g, b int) {
	r32, g32, b32, _ := c.RGBA()
	return int(r32 >> 8), int(g32 >> 8), int(b32 >> 8)
}

// Gray returns the integer mean of the three channels, (R+G+B)/3, in 0-255.
func Gray(r, g, b int) int {
	return (r + g + b) / 3
}

// Brightness returns the floating-point mean of the three channels in 0-255.
func Brightness(r, g, b int) float64 {
	return float64(r+g+b) / 3
}

// PixelRGB returns the 8-bit channels at (x, y), reading *image.RGBA and
// *image.NRGBA directly and falling back to image.Image.At otherwise.
// Alpha is ignored for NRGBA so straight colors are returned unchanged.
func PixelRGB(img image.Image, x, y int) (r, g, b int) {
	switch m := img.(type) {
	case *image.RGBA:
		i := m.PixOffset(x, y)
		return int(m.Pix[i]), int(m.Pix[i+1]), int(m.Pix[i+2])
	case *image.NRGBA:
		i := m.PixOffset(x, y)
		return int(m.Pix[i]), int(m.Pix[i+1]), int(m.Pix[i+2])
	default:
		return RGB8(img.At(x, y))
	}
}
