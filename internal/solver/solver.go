// Package solver suggests where to drop the next pieces on the board.
//
// The search is greedy with a single step of lookahead: each piece goes to
// the empty cell that clears the most lines right now, without regard for
// the pieces that follow. Pieces are modeled as one cell each.
package solver

import "blockassist/internal/board"

// DefaultPieces is the number of pieces offered per round.
const DefaultPieces = 3

// Placement is one suggested drop.
type Placement struct {
	Row   int            `json:"row"`   // Anchor row on the board
	Col   int            `json:"col"`   // Anchor column on the board
	Cells []board.Offset `json:"cells"` // Piece shape relative to the anchor
	Order int            `json:"order"` // 1-based order in which to apply the placement
	Score int            `json:"score"` // Lines full right after the drop, including ones already full
}

// Suggestion is the outcome of a search.
type Suggestion struct {
	Placements []Placement
	Cleared    board.LineSet // Lines full after all placements are applied
}

// Suggest picks up to pieces empty cells, one per piece, each maximizing the
// number of lines that would be full immediately after it is placed.
//
// Cells are scanned top-to-bottom, left-to-right and only a strictly higher
// score replaces the current choice, so ties go to the earliest cell. When
// the board has no empty cell left, the remaining pieces are dropped, so at
// most board.Size*board.Size placements come back. The caller's matrix is
// never modified.
func Suggest(m board.Matrix, pieces int) Suggestion {
	sim := m
	placements := make([]Placement, 0, min(max(pieces, 0), board.Size*board.Size))

	for i := 0; i < pieces; i++ {
		bestRow, bestCol := -1, -1
		bestScore := -1

		for r := 0; r < board.Size; r++ {
			for c := 0; c < board.Size; c++ {
				if sim[r][c] == board.Filled {
					continue
				}
				sim[r][c] = board.Filled
				score := board.DetectClearedLines(sim).Len()
				sim[r][c] = board.Empty

				if score > bestScore {
					bestScore = score
					bestRow, bestCol = r, c
				}
			}
		}

		// Any empty cell beats the -1 sentinel, so no choice means a full
		// board, and a full board stays full.
		if bestRow < 0 {
			break
		}

		sim[bestRow][bestCol] = board.Filled
		placements = append(placements, Placement{
			Row:   bestRow,
			Col:   bestCol,
			Cells: []board.Offset{{Row: 0, Col: 0}},
			Order: i + 1,
			Score: bestScore,
		})
	}

	return Suggestion{
		Placements: placements,
		Cleared:    board.DetectClearedLines(sim),
	}
}
