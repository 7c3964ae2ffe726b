package overlay

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"blockassist/internal/board"
	"blockassist/internal/solver"
)

func rowReport() Report {
	m := board.FromRows([][]int{{1, 1, 1, 1, 1, 1, 1, 0}})
	return Report{ID: "r1", Matrix: m, Suggestion: solver.Suggest(m, 3)}
}

func TestMarks(t *testing.T) {
	marks := Marks(rowReport().Suggestion)
	require.Equal(t, 1, marks[0][7])
	require.Equal(t, 2, marks[1][0])
	require.Equal(t, 3, marks[1][1])
	require.Zero(t, marks[5][5])
}

func TestMarksIgnoresOutOfBoardCells(t *testing.T) {
	s := solver.Suggestion{Placements: []solver.Placement{{
		Row: 7, Col: 7, Order: 1,
		Cells: []board.Offset{{Row: 0, Col: 0}, {Row: 1, Col: 0}},
	}}}
	marks := Marks(s)
	require.Equal(t, 1, marks[7][7])
}

func TestMulti(t *testing.T) {
	var calls []string
	ok := SinkFunc(func(context.Context, Report) error {
		calls = append(calls, "ok")
		return nil
	})
	boom := errors.New("boom")
	bad := SinkFunc(func(context.Context, Report) error {
		calls = append(calls, "bad")
		return boom
	})

	err := Multi{bad, ok, Noop}.Render(context.Background(), rowReport())
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"bad", "ok"}, calls)

	require.NoError(t, Multi{}.Render(context.Background(), rowReport()))
}

func TestRenderBoard(t *testing.T) {
	out := RenderBoard(rowReport())
	lines := strings.Split(out, "\n")
	// Eight board rows inside a top and bottom border.
	require.Len(t, lines, board.Size+2)
	require.Contains(t, lines[1], "1")
	require.Equal(t, 7, strings.Count(lines[1], glyphFilled))
	require.Contains(t, lines[2], "3")
	require.Equal(t, board.Size-2, strings.Count(lines[2], glyphEmpty))
	require.Equal(t, board.Size, strings.Count(lines[3], glyphEmpty))
}

func TestSummary(t *testing.T) {
	require.Equal(t, "1→(0,7) 2→(1,0) 3→(1,1) · clears 1", Summary(rowReport()))

	full := Report{Matrix: board.Full(), Suggestion: solver.Suggest(board.Full(), 3)}
	require.Equal(t, "board full, no placement possible", Summary(full))
}

func TestTerminalSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalSink(&buf).Render(context.Background(), rowReport()))
	require.Contains(t, buf.String(), "Board")
	require.Contains(t, buf.String(), "clears 1")
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	require.NoError(t, LogSink{Logger: logger}.Render(context.Background(), rowReport()))
	require.Contains(t, buf.String(), "suggestion")
	require.Contains(t, buf.String(), "r1")
}
