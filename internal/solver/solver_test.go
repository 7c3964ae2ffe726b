package solver

import (
	"math"
	"testing"

	"blockassist/internal/board"

	"github.com/stretchr/testify/require"
)

func anchors(ps []Placement) [][2]int {
	out := make([][2]int, len(ps))
	for i, p := range ps {
		out[i] = [2]int{p.Row, p.Col}
	}
	return out
}

func TestSuggestEmptyBoardFollowsScanOrder(t *testing.T) {
	s := Suggest(board.Matrix{}, 3)

	require.Equal(t, [][2]int{{0, 0}, {0, 1}, {0, 2}}, anchors(s.Placements))
	for i, p := range s.Placements {
		require.Equal(t, i+1, p.Order)
		require.Equal(t, []board.Offset{{Row: 0, Col: 0}}, p.Cells)
		require.Zero(t, p.Score)
	}
	require.Zero(t, s.Cleared.Len())
}

func TestSuggestCompletesRow(t *testing.T) {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 0}})

	s := Suggest(m, 1)
	require.Equal(t, [][2]int{{0, 7}}, anchors(s.Placements))
	require.Equal(t, 1, s.Placements[0].Score)
	require.Equal(t, []int{0}, s.Cleared.IDs())
}

func TestSuggestFullBoard(t *testing.T) {
	s := Suggest(board.Full(), 3)

	require.Empty(t, s.Placements)
	require.Equal(t, 16, s.Cleared.Len())
}

func TestSuggestSkipsOnceBoardFills(t *testing.T) {
	m := board.Full()
	m[3][4] = board.Empty
	m[6][1] = board.Empty

	s := Suggest(m, 3)
	require.Equal(t, [][2]int{{3, 4}, {6, 1}}, anchors(s.Placements))
	require.Equal(t, []int{1, 2}, []int{s.Placements[0].Order, s.Placements[1].Order})
	require.Equal(t, 16, s.Cleared.Len())
}

func TestSuggestPrefersCrossingCell(t *testing.T) {
	// Row 2 and column 5 each miss only (2,5); filling it clears both.
	m := board.Matrix{}
	for c := 0; c < board.Size; c++ {
		m[2][c] = board.Filled
	}
	for r := 0; r < board.Size; r++ {
		m[r][5] = board.Filled
	}
	m[2][5] = board.Empty
	m[0][0] = board.Filled

	s := Suggest(m, 2)
	require.Equal(t, [2]int{2, 5}, anchors(s.Placements)[0])
	require.Equal(t, 2, s.Placements[0].Score)
	// The second piece gains nothing and falls back to the first empty cell.
	require.Equal(t, [2]int{0, 1}, anchors(s.Placements)[1])
	require.Equal(t, 2, s.Placements[1].Score)
	require.ElementsMatch(t, []int{2, 13}, s.Cleared.IDs())
}

func TestSuggestDoesNotMutateInput(t *testing.T) {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 0}})
	orig := m

	Suggest(m, 3)
	require.Equal(t, orig, m)
}

func TestSuggestNonPositivePieces(t *testing.T) {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 1}})
	for _, n := range []int{0, -2} {
		s := Suggest(m, n)
		require.Empty(t, s.Placements)
		require.Equal(t, []int{0}, s.Cleared.IDs())
	}
}

func TestSuggestMonotonicity(t *testing.T) {
	m := board.FromRows([][]int{
		{1, 1, 1, 1, 1, 1, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	})

	s := Suggest(m, 3)
	require.Len(t, s.Placements, 3)
	for _, p := range s.Placements {
		require.GreaterOrEqual(t, p.Score, 0)
	}
	require.GreaterOrEqual(t, s.Cleared.Len(), s.Placements[0].Score)
}

func TestSuggestHugePieceCount(t *testing.T) {
	var s Suggestion
	require.NotPanics(t, func() { s = Suggest(board.Full(), math.MaxInt) })
	require.Empty(t, s.Placements)
	require.Equal(t, 2*board.Size, s.Cleared.Len())

	s = Suggest(board.Matrix{}, math.MaxInt)
	require.Len(t, s.Placements, board.Size*board.Size)
	last := s.Placements[len(s.Placements)-1]
	require.Equal(t, board.Size*board.Size, last.Order)
	require.Equal(t, 2*board.Size, last.Score)
}

func TestSuggestScoreCountsLinesAlreadyFull(t *testing.T) {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 1}})

	s := Suggest(m, 1)
	require.Len(t, s.Placements, 1)
	require.Equal(t, 1, s.Placements[0].Score)
}
