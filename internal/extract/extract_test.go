package extract

import (
	"image"
	"image/color"
	"testing"

	"blockassist/internal/board"
	"blockassist/pkg/geometry"

	"github.com/stretchr/testify/require"
)

var (
	slot  = color.RGBA{R: 200, G: 210, B: 230, A: 255}
	block = color.RGBA{R: 30, G: 60, B: 150, A: 255}
)

// render paints m as an 8x8 board with the given cell size at (x0, y0)
// on a canvas of the slot color.
func render(w, h, x0, y0, cell int, m board.Matrix) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, slot)
		}
	}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if m[r][c] != board.Filled {
				continue
			}
			for y := y0 + r*cell; y < y0+(r+1)*cell; y++ {
				for x := x0 + c*cell; x < x0+(c+1)*cell; x++ {
					img.SetRGBA(x, y, block)
				}
			}
		}
	}
	return img
}

func TestExtractReadsRenderedBoard(t *testing.T) {
	want := board.FromRows([][]int{
		{1, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 1, 0, 0, 0, 0},
		{0, 0, 1, 1, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	})
	img := render(720, 1280, 40, 300, 80, want)

	got := New(DefaultParams()).Extract(img, geometry.Screen(40, 300, 680, 940))
	require.Equal(t, want, got)
	require.Equal(t, []int{7, 8}, board.DetectClearedLines(got).IDs())
}

func TestExtractDegenerateInputs(t *testing.T) {
	e := New(DefaultParams())
	tiny := image.NewRGBA(image.Rect(0, 0, 7, 7))

	tests := []struct {
		name string
		img  image.Image
		rect geometry.ScreenRect
	}{
		{"nil image", nil, geometry.Screen(0, 0, 100, 100)},
		{"image smaller than 8x8", tiny, geometry.Screen(0, 0, 7, 7)},
		{"rect outside image", render(100, 100, 0, 0, 10, board.Full()), geometry.Screen(200, 200, 400, 400)},
		{"inverted rect", render(100, 100, 0, 0, 10, board.Full()), geometry.Screen(80, 80, 0, 0)},
		{"too thin", render(100, 100, 0, 0, 10, board.Full()), geometry.Screen(0, 0, 100, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, board.Matrix{}, e.Extract(tt.img, tt.rect))
		})
	}
}

func TestExtractClampsOverhangingRect(t *testing.T) {
	img := render(80, 80, 0, 0, 10, board.Full())

	// The rect overhangs by 20 px on every side; after clamping it matches the image.
	got := New(DefaultParams()).Extract(img, geometry.Screen(-20, -20, 100, 100))
	require.Equal(t, board.Full(), got)
}

func TestExtractThreshold(t *testing.T) {
	paint := func(v uint8) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
			}
		}
		return img
	}
	rect := geometry.Screen(0, 0, 64, 64)
	e := New(DefaultParams())

	require.Equal(t, board.Full(), e.Extract(paint(127), rect))
	require.Equal(t, board.Matrix{}, e.Extract(paint(128), rect))

	dark := New(DefaultParams().WithBrightnessThreshold(60))
	require.Equal(t, board.Matrix{}, dark.Extract(paint(100), rect))
}

func TestCellCenter(t *testing.T) {
	rect := geometry.Screen(40, 300, 680, 940)
	require.Equal(t, geometry.PointInt{X: 80, Y: 340}, CellCenter(rect, 720, 1280, 0, 0))
	require.Equal(t, geometry.PointInt{X: 640, Y: 900}, CellCenter(rect, 720, 1280, 7, 7))
}

func TestPiecesAreSingleCells(t *testing.T) {
	rects := []geometry.ScreenRect{
		geometry.Screen(0, 0, 10, 10),
		geometry.Screen(20, 0, 30, 10),
		geometry.Screen(40, 0, 50, 10),
	}
	pieces := Pieces(rects)
	require.Len(t, pieces, 3)
	for _, p := range pieces {
		require.Equal(t, []board.Offset{{Row: 0, Col: 0}}, p)
	}
	require.Empty(t, Pieces(nil))
}
