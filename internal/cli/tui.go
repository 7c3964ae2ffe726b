package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blockassist/internal/overlay"
	"blockassist/internal/pipeline"
)

type tickMsg pipeline.Result

// watchModel is the live board view of the watch command.
type watchModel struct {
	interval time.Duration
	last     *overlay.Report
	status   pipeline.Status
	err      error
	ticks    int
}

func newWatchModel(interval time.Duration) watchModel {
	return watchModel{interval: interval, status: pipeline.StatusNoImage}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.ticks++
		m.status = msg.Status
		m.err = msg.Err
		if msg.Status == pipeline.StatusOK || msg.Status == pipeline.StatusSinkError {
			rep := msg.Report
			m.last = &rep
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("blockassist"))
	b.WriteString(" " + styleDim.Render(fmt.Sprintf("every %s · q quit", m.interval)))
	b.WriteString("\n\n")

	if m.last == nil {
		b.WriteString(styleDim.Render("waiting for a board…"))
	} else {
		b.WriteString(overlay.RenderBoard(*m.last))
		b.WriteString("\n")
		b.WriteString(styleValue.Render(overlay.Summary(*m.last)))
	}
	b.WriteString("\n\n")

	line := fmt.Sprintf("tick %d · %s", m.ticks, m.status)
	if m.err != nil && m.status != pipeline.StatusOK {
		line += " · " + m.err.Error()
	}
	if m.status == pipeline.StatusOK {
		b.WriteString(styleDim.Render(line))
	} else {
		b.WriteString(styleWarning.Render(line))
	}
	b.WriteString("\n")
	return b.String()
}
