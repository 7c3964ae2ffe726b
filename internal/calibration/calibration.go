// Package calibration stores the mapping from screenshot pixels to the board
// and the piece-preview regions.
//
// A calibration is persisted as a flat key to integer mapping:
//
//	board_left, board_top, board_right, board_bottom
//	piece0_left ... piece2_bottom
//
// A missing board_left, or the sentinel -1, means "not calibrated". Saving
// replaces the whole mapping; there is no versioning.
package calibration

import (
	"context"
	"fmt"

	"blockassist/pkg/geometry"
)

// MaxPieces is the number of piece-preview slots that can be stored.
const MaxPieces = 3

// Unset is the sentinel value of board_left in an uncalibrated store.
const Unset = -1

// Calibration is a board rectangle plus up to three piece rectangles,
// all in screenshot coordinates.
type Calibration struct {
	Board  geometry.ScreenRect   `json:"board"`
	Pieces []geometry.ScreenRect `json:"pieces,omitempty"`
}

// Validate checks the board rectangle and the piece count.
func (c Calibration) Validate() error {
	if !c.Board.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, c.Board.Rect)
	}
	if len(c.Pieces) > MaxPieces {
		return ErrTooManyPieces
	}
	return nil
}

// Store loads and saves calibrations.
type Store interface {
	// Load returns the current calibration, or ErrNotCalibrated.
	Load(ctx context.Context) (Calibration, error)
	// Save replaces the stored calibration.
	Save(ctx context.Context, c Calibration) error
}

var rectSides = [4]string{"left", "top", "right", "bottom"}

func rectKeys(prefix string) [4]string {
	var keys [4]string
	for i, side := range rectSides {
		keys[i] = prefix + "_" + side
	}
	return keys
}

func pieceKeyPrefix(i int) string {
	return fmt.Sprintf("piece%d", i)
}

// BoardLeftKey is the key whose absence marks an uncalibrated store.
const BoardLeftKey = "board_left"

// Encode flattens c into the persisted key to integer mapping.
func Encode(c Calibration) map[string]int {
	values := make(map[string]int, 4*(1+len(c.Pieces)))
	putRect(values, "board", c.Board.Rect)
	for i, p := range c.Pieces {
		if i >= MaxPieces {
			break
		}
		putRect(values, pieceKeyPrefix(i), p.Rect)
	}
	return values
}

// Decode rebuilds a calibration from the persisted mapping. Pieces are read
// in slot order and stop at the first slot with any key missing.
func Decode(values map[string]int) (Calibration, error) {
	left, ok := values[BoardLeftKey]
	if !ok || left == Unset {
		return Calibration{}, ErrNotCalibrated
	}
	boardRect, ok := getRect(values, "board")
	if !ok {
		return Calibration{}, ErrNotCalibrated
	}

	c := Calibration{Board: geometry.ScreenRect{Rect: boardRect}}
	for i := 0; i < MaxPieces; i++ {
		r, ok := getRect(values, pieceKeyPrefix(i))
		if !ok {
			break
		}
		c.Pieces = append(c.Pieces, geometry.ScreenRect{Rect: r})
	}
	return c, nil
}

func putRect(values map[string]int, prefix string, r geometry.Rect) {
	keys := rectKeys(prefix)
	values[keys[0]] = r.Left
	values[keys[1]] = r.Top
	values[keys[2]] = r.Right
	values[keys[3]] = r.Bottom
}

func getRect(values map[string]int, prefix string) (geometry.Rect, bool) {
	keys := rectKeys(prefix)
	var v [4]int
	for i, k := range keys {
		n, ok := values[k]
		if !ok {
			return geometry.Rect{}, false
		}
		v[i] = n
	}
	return geometry.NewRect(v[0], v[1], v[2], v[3]), true
}
