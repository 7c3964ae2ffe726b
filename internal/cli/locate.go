package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"blockassist/internal/capture"
	"blockassist/internal/locator"
)

func (c *CLI) locateCommand() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "locate <screenshot>",
		Short: "Find the board grid in a screenshot",
		Long:  `Locate scans a downscaled copy of the screenshot for the square window that looks most like an 8x8 grid and prints its rectangle in screen pixels.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			img, format, err := capture.Decode(args[0])
			if err != nil {
				return err
			}
			logger.Debug("decoded", "format", format, "size", img.Bounds().Size())

			params := c.Config.LocatorParams()
			if cmd.Flags().Changed("threshold") {
				params = params.WithScoreThreshold(threshold)
			}

			prog := newProgress(logger)
			res, ok := locator.New(params).Locate(img)
			prog.done("scanned", "score", res.Score)

			if !ok {
				printWarning(c.out, "no grid found (best score %.3f, need %.3f)", res.Score, params.ScoreThreshold)
				return nil
			}
			printSuccess(c.out, "grid found")
			printKeyValue(c.out, "board", res.Board.String())
			printKeyValue(c.out, "window", res.Window.String())
			printKeyValue(c.out, "score", strconv.FormatFloat(res.Score, 'f', 3, 64))
			printKeyValue(c.out, "scale", fmt.Sprintf("%.3f", float64(res.Scale)))
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", locator.DefaultParams().ScoreThreshold, "minimum grid score")
	return cmd
}
