// Package overlay delivers analysis results to whatever shows them to the
// player.
//
// Sinks are injected into the driver; there is no process-wide registry.
package overlay

import (
	"context"
	"errors"
	"image"
	"time"

	"blockassist/internal/board"
	"blockassist/internal/calibration"
	"blockassist/internal/solver"
)

// Report is one analyzed screenshot.
type Report struct {
	ID          string
	Time        time.Time
	Image       image.Image // Screenshot the report was built from, may be nil
	Calibration calibration.Calibration
	Matrix      board.Matrix
	Suggestion  solver.Suggestion
}

// Sink consumes reports.
type Sink interface {
	Render(ctx context.Context, r Report) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, r Report) error

// Render calls f.
func (f SinkFunc) Render(ctx context.Context, r Report) error {
	return f(ctx, r)
}

// Noop discards every report.
var Noop Sink = SinkFunc(func(context.Context, Report) error { return nil })

// Multi fans a report out to several sinks. Every sink is called even when
// an earlier one fails; the errors are joined.
type Multi []Sink

// Render renders r on every sink.
func (m Multi) Render(ctx context.Context, r Report) error {
	var errs []error
	for _, s := range m {
		if err := s.Render(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Marks returns the 1-based placement order for each suggested cell, 0 where
// nothing is suggested.
func Marks(s solver.Suggestion) [board.Size][board.Size]int {
	var marks [board.Size][board.Size]int
	for _, p := range s.Placements {
		for _, off := range p.Cells {
			r, c := p.Row+off.Row, p.Col+off.Col
			if r < 0 || r >= board.Size || c < 0 || c >= board.Size {
				continue
			}
			marks[r][c] = p.Order
		}
	}
	return marks
}
