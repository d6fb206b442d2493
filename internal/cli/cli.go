// Package cli implements the qrwatermark command-line interface.
//
// Commands:
//   - render: encode text and write a styled image (PNG, JPEG, GIF, BMP, TIFF)
//   - print: show the module grid in the terminal
//   - serve: expose rendering over HTTP
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "qrwatermark"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a CLI logging to w at level; command output goes to out.
func New(out, w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: out}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           appName,
		Short:         "Render styled QR codes with logos, gradients and dots",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.SetOut(c.Out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.printCommand())
	root.AddCommand(c.serveCommand())
	return root
}
