package locator

import "blockassist/pkg/geometry"

// PieceSlots is the number of piece previews rendered beneath the board.
const PieceSlots = 3

// EstimateRegions guesses the three piece-preview rectangles below a located
// board. It is pure geometry on the board rectangle and the screen size:
//
//   - the strip starts max(8% of board height, 24 px) below the board, but
//     never lower than 82% of the screen height
//   - the strip is max(14% of screen height, 18% of board height) tall and
//     stops 4 px above the screen bottom
//   - the board width is split into three equal slots separated by gaps of
//     4% of the board width, the last slot clamped to the board's right edge
func EstimateRegions(screenW, screenH int, boardRect geometry.ScreenRect) [PieceSlots]geometry.ScreenRect {
	bw := boardRect.Width()
	bh := boardRect.Height()

	top := min(
		screenH-int(float64(screenH)*0.18),
		max(boardRect.Bottom+int(float64(bh)*0.08), boardRect.Bottom+24),
	)
	height := max(int(float64(screenH)*0.14), int(float64(bh)*0.18))
	bottom := min(screenH-4, top+height)

	gap := int(float64(bw) * 0.04)
	cellW := (bw - gap*2) / 3

	r1 := geometry.Screen(boardRect.Left, top, boardRect.Left+cellW, bottom)
	r2 := geometry.Screen(r1.Right+gap, top, r1.Right+gap+cellW, bottom)
	r3 := geometry.Screen(r2.Right+gap, top, min(boardRect.Right, r2.Right+gap+cellW), bottom)

	return [PieceSlots]geometry.ScreenRect{r1, r2, r3}
}
