// Command blockassist suggests placements for 8x8 block puzzles.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"blockassist/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
