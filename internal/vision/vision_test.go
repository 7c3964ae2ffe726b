package vision

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"blockassist/internal/board"
	"blockassist/internal/calibration"
	"blockassist/internal/overlay"
	"blockassist/internal/solver"
	"blockassist/pkg/colorutil"
	"blockassist/pkg/geometry"
)

func TestMatRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.SetRGBA(10, 20, color.RGBA{R: 200, G: 10, B: 30, A: 255})
	src.SetRGBA(12, 21, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	mat := imageToMat(src)
	defer mat.Close()
	require.Equal(t, 3, mat.Cols())
	require.Equal(t, 2, mat.Rows())
	require.EqualValues(t, 30, mat.GetUCharAt(0, 0))

	got := matToImage(mat)
	require.Equal(t, image.Rect(0, 0, 3, 2), got.Bounds())
	require.Equal(t, color.RGBA{R: 200, G: 10, B: 30, A: 255}, got.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, got.RGBAAt(2, 1))
}

func TestSnapshotSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 0}})
	r := overlay.Report{
		ID:    "abc",
		Image: image.NewRGBA(image.Rect(0, 0, 120, 200)),
		Calibration: calibration.Calibration{
			Board:  geometry.Screen(20, 20, 100, 100),
			Pieces: []geometry.ScreenRect{geometry.Screen(20, 130, 45, 160)},
		},
		Matrix:     m,
		Suggestion: solver.Suggest(m, 3),
	}

	require.NoError(t, SnapshotSink{Dir: dir}.Render(context.Background(), r))
	info, err := os.Stat(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

// bgr reads the pixel at (x, y) as blue, green, red.
func bgr(mat gocv.Mat, x, y int) [3]uint8 {
	v := mat.GetVecbAt(y, x)
	return [3]uint8{v[0], v[1], v[2]}
}

func TestAnnotate(t *testing.T) {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 0}})
	r := overlay.Report{
		Calibration: calibration.Calibration{Board: geometry.Screen(20, 20, 100, 100)},
		Matrix:      m,
		Suggestion:  solver.Suggest(m, 3),
	}
	mat := imageToMat(image.NewRGBA(image.Rect(0, 0, 120, 200)))
	defer mat.Close()

	Annotate(&mat, r)

	// Placements go to (0,7), (1,0) and (1,1) in cyan, yellow and magenta.
	require.Equal(t, [3]uint8{255, 255, 0}, bgr(mat, 100, 20))
	require.Equal(t, [3]uint8{0, 255, 255}, bgr(mat, 20, 40))
	require.Equal(t, [3]uint8{255, 0, 255}, bgr(mat, 40, 40))

	// Row 0 is completed, so it is shaded red.
	band := bgr(mat, 35, 25)
	require.Zero(t, band[0])
	require.Zero(t, band[1])
	require.Positive(t, band[2])

	// Grid lines show over untouched cells, cell interiors stay dark.
	line := bgr(mat, 60, 95)
	require.Positive(t, line[0])
	require.Equal(t, line[0], line[2])
	require.Equal(t, [3]uint8{}, bgr(mat, 35, 85))
}

func TestOrderColor(t *testing.T) {
	require.Equal(t, colorutil.Cyan, orderColor(1))
	require.Equal(t, colorutil.Yellow, orderColor(2))
	require.Equal(t, colorutil.Magenta, orderColor(3))
	require.Equal(t, colorutil.White, orderColor(4))
	require.Equal(t, colorutil.White, orderColor(0))
}

func TestSnapshotSinkSkipsMissingImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	require.NoError(t, SnapshotSink{Dir: dir}.Render(context.Background(), overlay.Report{}))
	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}
