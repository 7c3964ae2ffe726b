package vision

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gocv.io/x/gocv"

	"blockassist/internal/board"
	"blockassist/internal/overlay"
	"blockassist/pkg/colorutil"
	"blockassist/pkg/geometry"
)

// SnapshotSink writes each report's screenshot to Dir with the board, the
// piece regions and the suggested cells drawn on top.
type SnapshotSink struct {
	Dir string
}

// Render annotates r.Image and writes it as <id>.png. Reports without an
// image are skipped.
func (s SnapshotSink) Render(ctx context.Context, r overlay.Report) error {
	if r.Image == nil || r.Image.Bounds().Empty() {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	mat := imageToMat(r.Image)
	defer mat.Close()
	Annotate(&mat, r)

	name := r.ID
	if name == "" {
		name = "snapshot"
	}
	path := filepath.Join(s.Dir, name+".png")
	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to write snapshot %s", path)
	}
	return nil
}

// Band and grid shading strength over the screenshot.
const (
	gridAlpha = 0.4
	bandAlpha = 0.3
)

// orderColors colors placements by their 1-based order; later ones are white.
var orderColors = []color.RGBA{colorutil.Cyan, colorutil.Yellow, colorutil.Magenta}

func orderColor(order int) color.RGBA {
	if order < 1 || order > len(orderColors) {
		return colorutil.White
	}
	return orderColors[order-1]
}

// Annotate draws the report onto mat in place. Lines the suggestion
// completes get a red band over the board grid. Suggested cells are outlined
// in their placement's color with the order number inside.
func Annotate(mat *gocv.Mat, r overlay.Report) {
	cal := r.Calibration
	b := cal.Board.Image()

	for i, p := range cal.Pieces {
		gocv.Rectangle(mat, p.Image(), colorutil.Green, 1)
		label(mat, "P"+strconv.Itoa(i+1), p, colorutil.Green)
	}
	if b.Empty() {
		return
	}

	blend(mat, gridAlpha, func(m *gocv.Mat) {
		for i := 0; i <= board.Size; i++ {
			x, y := gridX(b, i), gridY(b, i)
			gocv.Line(m, image.Pt(x, b.Min.Y), image.Pt(x, b.Max.Y), colorutil.White, 2)
			gocv.Line(m, image.Pt(b.Min.X, y), image.Pt(b.Max.X, y), colorutil.White, 2)
		}
	})

	cleared := r.Suggestion.Cleared
	if cleared.Len() > 0 {
		blend(mat, bandAlpha, func(m *gocv.Mat) {
			for i := 0; i < board.Size; i++ {
				if cleared.Has(board.RowLine(i)) {
					gocv.Rectangle(m, image.Rect(b.Min.X, gridY(b, i), b.Max.X, gridY(b, i+1)), colorutil.Red, -1)
				}
				if cleared.Has(board.ColLine(i)) {
					gocv.Rectangle(m, image.Rect(gridX(b, i), b.Min.Y, gridX(b, i+1), b.Max.Y), colorutil.Red, -1)
				}
			}
		})
	}

	for _, p := range r.Suggestion.Placements {
		col := orderColor(p.Order)
		for _, off := range p.Cells {
			gocv.Rectangle(mat, cellRect(b, p.Row+off.Row, p.Col+off.Col), col, 4)
		}
		if len(p.Cells) == 0 {
			continue
		}
		first := cellRect(b, p.Row+p.Cells[0].Row, p.Col+p.Cells[0].Col)
		text := strconv.Itoa(p.Order)
		scale := max(float64(first.Dy())/30, 0.4)
		size := gocv.GetTextSize(text, gocv.FontHersheySimplex, scale, 1)
		c := image.Pt((first.Min.X+first.Max.X)/2, (first.Min.Y+first.Max.Y)/2)
		gocv.PutText(mat, text, image.Pt(c.X-size.X/2, c.Y+size.Y/2),
			gocv.FontHersheySimplex, scale, colorutil.White, 1)
	}
}

// blend draws onto a copy of mat and mixes the copy back in at alpha.
func blend(mat *gocv.Mat, alpha float64, draw func(*gocv.Mat)) {
	layer := mat.Clone()
	defer layer.Close()
	draw(&layer)
	gocv.AddWeighted(layer, alpha, *mat, 1-alpha, 0, mat)
}

// gridX and gridY return the i-th grid line of b, 0 through board.Size.
func gridX(b image.Rectangle, i int) int { return b.Min.X + i*b.Dx()/board.Size }
func gridY(b image.Rectangle, i int) int { return b.Min.Y + i*b.Dy()/board.Size }

func cellRect(b image.Rectangle, row, col int) image.Rectangle {
	return image.Rect(gridX(b, col), gridY(b, row), gridX(b, col+1), gridY(b, row+1))
}

func label(mat *gocv.Mat, text string, r geometry.ScreenRect, col color.RGBA) {
	pos := image.Point{X: r.Left, Y: r.Top - 5}
	if pos.Y < 15 {
		pos.Y = r.Bottom + 15
	}
	gocv.PutText(mat, text, pos, gocv.FontHersheyPlain, 1.0, col, 1)
}
