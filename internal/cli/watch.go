package cli

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"blockassist/internal/overlay"
	"blockassist/internal/pipeline"
	"blockassist/internal/vision"
)

func (c *CLI) watchCommand() *cobra.Command {
	var (
		useTUI    bool
		logOnly   bool
		snapshots string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Analyze the capture source periodically",
		Long:  `Watch captures a screenshot every driver.interval_ms, reads the calibrated board and prints the suggested placements until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useTUI && logOnly {
				return errors.New("--tui and --log are mutually exclusive")
			}
			ctx := cmd.Context()

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			src, closeSrc, err := c.openSource(true)
			if err != nil {
				return err
			}
			defer closeSrc()

			d := c.newDriver(src, store, c.watchSinks(snapshots, useTUI, logOnly))
			if useTUI {
				return c.runTUI(ctx, d)
			}
			return d.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show a live full-screen board")
	cmd.Flags().BoolVar(&logOnly, "log", false, "log suggestions as structured lines instead of drawing the board")
	cmd.Flags().StringVar(&snapshots, "snapshots", "", "write annotated screenshots to this directory")
	return cmd
}

// watchSinks picks where each watch report goes. The TUI receives results
// through Driver.OnTick, so it only gets the snapshot sink.
func (c *CLI) watchSinks(snapshots string, useTUI, logOnly bool) overlay.Multi {
	var sinks overlay.Multi
	if snapshots != "" {
		sinks = append(sinks, vision.SnapshotSink{Dir: snapshots})
	}
	switch {
	case useTUI:
	case logOnly:
		sinks = append(sinks, overlay.LogSink{Logger: c.Logger})
	default:
		sinks = append(sinks, overlay.NewTerminalSink(c.out))
	}
	return sinks
}

// muteLogger discards l's output until the returned func restores it to w.
func muteLogger(l *log.Logger, w io.Writer) (restore func()) {
	l.SetOutput(io.Discard)
	return func() { l.SetOutput(w) }
}

// runTUI runs the driver in the background and shows its results in a
// bubbletea program. Quitting the program stops the driver.
func (c *CLI) runTUI(ctx context.Context, d *pipeline.Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the alternate screen.
	defer muteLogger(d.Logger, c.logw)()

	p := tea.NewProgram(newWatchModel(d.Interval), tea.WithAltScreen(), tea.WithContext(ctx))
	d.OnTick = func(r pipeline.Result) { p.Send(tickMsg(r)) }

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	_, err := p.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
