package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"blockassist/internal/calibration"
	"blockassist/internal/capture"
	"blockassist/internal/overlay"
	"blockassist/internal/solver"
	"blockassist/internal/vision"
)

// analyzeOutput is the --json form of an analysis.
type analyzeOutput struct {
	ID          string             `json:"id"`
	Board       [][]int            `json:"board"`
	Placements  []solver.Placement `json:"placements"`
	ClearedRows []int              `json:"cleared_rows"`
	ClearedCols []int              `json:"cleared_cols"`
}

func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON   bool
		snapshot string
	)

	cmd := &cobra.Command{
		Use:   "analyze <screenshot>",
		Short: "Read the board and suggest placements",
		Long:  `Analyze reads the calibrated board region of a screenshot, decides which cells are filled and suggests where to drop the next pieces.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			cal, err := store.Load(ctx)
			if errors.Is(err, calibration.ErrNotCalibrated) {
				printWarning(c.out, "not calibrated, run blockassist calibrate first")
				return err
			}
			if err != nil {
				return err
			}

			img, _, err := capture.Decode(args[0])
			if err != nil {
				return err
			}

			rep := c.newDriver(nil, store, nil).Analyze(img, cal)

			if snapshot != "" {
				if err := (vision.SnapshotSink{Dir: snapshot}).Render(ctx, rep); err != nil {
					return err
				}
				loggerFromContext(ctx).Info("snapshot written", "dir", snapshot, "id", rep.ID)
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(analyzeOutput{
					ID:          rep.ID,
					Board:       rep.Matrix.Rows(),
					Placements:  rep.Suggestion.Placements,
					ClearedRows: rep.Suggestion.Cleared.Rows(),
					ClearedCols: rep.Suggestion.Cleared.Cols(),
				})
			}
			return overlay.NewTerminalSink(c.out).Render(ctx, rep)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "write an annotated screenshot to this directory")
	return cmd
}

