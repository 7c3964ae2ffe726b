// Package cli implements the blockassist command-line interface.
//
// Commands:
//   - locate: find the board grid in a screenshot and print where it is
//   - calibrate: locate the board and save it with the piece regions
//   - analyze: read the board from a screenshot and suggest placements
//   - watch: analyze the configured source periodically
//   - serve: run the HTTP API
//   - version: print build information
//
// All commands take --config for the TOML file and --verbose for debug logs.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"blockassist/internal/config"
	"blockassist/internal/version"
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	out        io.Writer
	logw       io.Writer
	configPath string
	verbose    bool
}

// New creates a CLI that prints results to out and logs to logw.
func New(out, logw io.Writer) *CLI {
	return &CLI{
		Logger: newLogger(logw, log.InfoLevel),
		Config: config.Default(),
		out:    out,
		logw:   logw,
	}
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "blockassist",
		Short:        "Blockassist suggests placements for 8x8 block puzzles",
		Long:         `Blockassist finds the 8x8 board in a phone screenshot, reads which cells are filled and suggests where to drop the next pieces to clear the most lines.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(version.Template())
	root.SetOut(c.out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.locateCommand())
	root.AddCommand(c.calibrateCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(c.out, version.String()+"\n")
			return err
		},
	}
}
