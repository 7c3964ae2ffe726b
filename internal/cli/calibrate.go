package cli

import (
	"errors"
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"blockassist/internal/capture"
	"blockassist/internal/pipeline"
)

func (c *CLI) calibrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate [screenshot]",
		Short: "Locate the board and save the calibration",
		Long: `Calibrate locates the board in a screenshot, estimates the three piece regions beneath it and saves the result to the configured store.

Without an argument the screenshot comes from the configured capture source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			var img image.Image
			if len(args) == 1 {
				img, _, err = capture.Decode(args[0])
			} else {
				src, closeSrc, openErr := c.openSource(false)
				if openErr != nil {
					return openErr
				}
				defer closeSrc()
				img, err = src.Capture(ctx)
			}
			if err != nil {
				return fmt.Errorf("capture: %w", err)
			}

			cal, err := c.newDriver(nil, store, nil).CalibrateImage(ctx, img)
			if errors.Is(err, pipeline.ErrNoGrid) {
				printError(c.out, "no board grid found, calibration unchanged")
				return err
			}
			if err != nil {
				return err
			}

			printSuccess(c.out, "calibrated")
			printKeyValue(c.out, "board", cal.Board.String())
			for i, p := range cal.Pieces {
				printKeyValue(c.out, fmt.Sprintf("piece %d", i+1), p.String())
			}
			return nil
		},
	}
}
