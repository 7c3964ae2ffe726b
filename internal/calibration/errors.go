package calibration

import "errors"

var (
	// ErrNotCalibrated indicates the store holds no board rectangle (board_left absent or -1).
	ErrNotCalibrated = errors.New("calibration: not calibrated")
	// ErrInvalidBoard indicates a board rectangle with left >= right or top >= bottom.
	ErrInvalidBoard = errors.New("calibration: board rectangle is empty or inverted")
	// ErrTooManyPieces indicates more piece rectangles than preview slots.
	ErrTooManyPieces = errors.New("calibration: more than 3 piece rectangles")
)
