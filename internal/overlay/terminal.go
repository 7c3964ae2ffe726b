package overlay

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"blockassist/internal/board"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorBlock  = lipgloss.Color("75")
)

var (
	styleFilled  = lipgloss.NewStyle().Foreground(colorBlock)
	styleEmpty   = lipgloss.NewStyle().Foreground(colorDim)
	styleMark    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleCleared = lipgloss.NewStyle().Background(lipgloss.Color("22"))
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDetail  = lipgloss.NewStyle().Foreground(colorGray)
	styleFrame   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const (
	glyphFilled = "■"
	glyphEmpty  = "·"
)

// RenderBoard draws the matrix with suggested cells numbered by placement
// order and the lines the suggestion clears highlighted.
func RenderBoard(r Report) string {
	marks := Marks(r.Suggestion)
	cleared := r.Suggestion.Cleared

	var rows []string
	for row := 0; row < board.Size; row++ {
		cells := make([]string, board.Size)
		for col := 0; col < board.Size; col++ {
			var cell string
			switch {
			case marks[row][col] > 0:
				cell = styleMark.Render(strconv.Itoa(marks[row][col]))
			case r.Matrix[row][col] == board.Filled:
				cell = styleFilled.Render(glyphFilled)
			default:
				cell = styleEmpty.Render(glyphEmpty)
			}
			if cleared.Has(board.RowLine(row)) || cleared.Has(board.ColLine(col)) {
				cell = styleCleared.Render(cell)
			}
			cells[col] = cell
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return styleFrame.Render(strings.Join(rows, "\n"))
}

// Summary is the one-line description printed under the board.
func Summary(r Report) string {
	s := r.Suggestion
	if len(s.Placements) == 0 {
		return "board full, no placement possible"
	}
	parts := make([]string, 0, len(s.Placements))
	for _, p := range s.Placements {
		parts = append(parts, fmt.Sprintf("%d→(%d,%d)", p.Order, p.Row, p.Col))
	}
	return fmt.Sprintf("%s · clears %d", strings.Join(parts, " "), s.Cleared.Len())
}

// TerminalSink prints each report as a styled board.
type TerminalSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminalSink writes to w.
func NewTerminalSink(w io.Writer) *TerminalSink {
	return &TerminalSink{w: w}
}

// Render prints r.
func (t *TerminalSink) Render(ctx context.Context, r Report) error {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Board"))
	if !r.Time.IsZero() {
		b.WriteString(" " + styleDetail.Render(r.Time.Format("15:04:05")))
	}
	b.WriteString("\n")
	b.WriteString(RenderBoard(r))
	b.WriteString("\n")
	b.WriteString(styleDetail.Render(Summary(r)))
	b.WriteString("\n")

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, b.String())
	return err
}
