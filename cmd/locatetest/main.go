// Command locatetest runs board location and extraction on a screenshot and
// prints every intermediate result.
package main

import (
	"flag"
	"fmt"
	"os"

	"blockassist/internal/board"
	"blockassist/internal/capture"
	"blockassist/internal/extract"
	"blockassist/internal/locator"
	"blockassist/internal/sampler"
	"blockassist/internal/solver"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	threshold := flag.Float64("threshold", locator.DefaultParams().ScoreThreshold, "Minimum grid score")
	maxWidth := flag.Int("max-width", locator.DefaultParams().MaxWidth, "Downscale width for the scan")
	brightness := flag.Float64("brightness", extract.DefaultParams().BrightnessThreshold, "Filled-cell brightness threshold")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: locatetest -image <path> [-threshold 0.2] [-max-width 540] [-brightness 128]")
		os.Exit(1)
	}

	img, format, err := capture.Decode(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	params := locator.DefaultParams().WithScoreThreshold(*threshold).WithMaxWidth(*maxWidth)
	small, scale := locator.Downscale(img, params.MaxWidth)
	gray := sampler.NewGray(small)
	fmt.Printf("\nScan parameters:\n")
	fmt.Printf("  Downscaled: %dx%d (scale %.4f)\n", gray.Width, gray.Height, float64(scale))
	fmt.Printf("  Side fractions: %v within [%.2f, %.2f] of min side\n",
		params.SideFractions, params.MinSideFraction, params.MaxSideFraction)
	fmt.Printf("  Score threshold: %.3f\n", params.ScoreThreshold)

	res, ok := locator.New(params).Locate(img)
	fmt.Printf("\nBest window: %s score %.4f\n", res.Window, res.Score)
	if !ok {
		fmt.Println("No grid found")
		os.Exit(2)
	}
	fmt.Printf("Board (screen): %s\n", res.Board)

	regions := locator.EstimateRegions(bounds.Dx(), bounds.Dy(), res.Board)
	fmt.Printf("\nPiece regions:\n")
	for i, r := range regions {
		fmt.Printf("  %d: %s\n", i+1, r)
	}

	ep := extract.DefaultParams().WithBrightnessThreshold(*brightness)
	m := extract.New(ep).Extract(img, res.Board)
	fmt.Printf("\nBoard read (%d filled):\n%s\n", m.FilledCount(), m)

	s := solver.Suggest(m, solver.DefaultPieces)
	fmt.Printf("\nSuggestions:\n")
	for _, p := range s.Placements {
		fmt.Printf("  %d: row %d col %d (clears %d)\n", p.Order, p.Row, p.Col, p.Score)
	}
	fmt.Printf("Cleared rows %v cols %v\n", s.Cleared.Rows(), s.Cleared.Cols())

	if len(s.Placements) == 0 && m == board.Full() {
		fmt.Println("Board is full")
	}
}
