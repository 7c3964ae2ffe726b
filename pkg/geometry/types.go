// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"fmt"
	"image"
)

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle given by its four integer bounds.
// Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// NewRect creates a new Rect.
func NewRect(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Valid reports whether left < right and top < bottom.
func (r Rect) Valid() bool {
	return r.Left < r.Right && r.Top < r.Bottom
}

// Center returns the integer center of the rectangle.
func (r Rect) Center() PointInt {
	return PointInt{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Clamp returns the rectangle with every bound coerced into [0,width] or [0,height].
// The result may be empty if the rectangle lies entirely outside.
func (r Rect) Clamp(width, height int) Rect {
	return Rect{
		Left:   clampInt(r.Left, 0, width),
		Top:    clampInt(r.Top, 0, height),
		Right:  clampInt(r.Right, 0, width),
		Bottom: clampInt(r.Bottom, 0, height),
	}
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// ScaledRect is a rectangle in downscaled-image coordinates.
type ScaledRect struct {
	Rect
}

// ScreenRect is a rectangle in original (full resolution) image coordinates.
type ScreenRect struct {
	Rect
}

// Screen tags r as original-image coordinates.
func Screen(left, top, right, bottom int) ScreenRect {
	return ScreenRect{Rect: NewRect(left, top, right, bottom)}
}

// Scaled tags r as downscaled-image coordinates.
func Scaled(left, top, right, bottom int) ScaledRect {
	return ScaledRect{Rect: NewRect(left, top, right, bottom)}
}

// Scale is the factor applied to an original image to produce its downscaled copy.
// A Scale of 1 means the image was used as-is.
type Scale float64

// ToScreen maps a downscaled rectangle back to original-image space.
// Coordinates are truncated toward zero.
func (s Scale) ToScreen(r ScaledRect) ScreenRect {
	inv := 1 / float64(s)
	return Screen(
		int(float64(r.Left)*inv),
		int(float64(r.Top)*inv),
		int(float64(r.Right)*inv),
		int(float64(r.Bottom)*inv),
	)
}

// ToScaled maps an original-image rectangle into downscaled space.
// Coordinates are rounded to the nearest pixel.
func (s Scale) ToScaled(r ScreenRect) ScaledRect {
	f := float64(s)
	return Scaled(
		roundInt(float64(r.Left)*f),
		roundInt(float64(r.Top)*f),
		roundInt(float64(r.Right)*f),
		roundInt(float64(r.Bottom)*f),
	)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
