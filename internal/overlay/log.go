package overlay

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogSink logs each report's suggestion at info level.
type LogSink struct {
	Logger *log.Logger
}

// Render logs r.
func (s LogSink) Render(ctx context.Context, r Report) error {
	s.Logger.Info("suggestion",
		"id", r.ID,
		"filled", r.Matrix.FilledCount(),
		"placements", Summary(r),
		"cleared", r.Suggestion.Cleared.IDs(),
	)
	return nil
}
