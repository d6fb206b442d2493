package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rook-computer/qrwatermark/internal/grid"
)

func (c *CLI) printCommand() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:   "print TEXT",
		Short: "Print the module grid of TEXT to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grid.EncodeLevel(args[0], level)
			if err != nil {
				return err
			}
			c.Logger.Debug("encoded", "grid", grid.Describe(g))
			_, err = fmt.Fprint(cmd.OutOrStdout(), g.String())
			return err
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", grid.LevelMedium, "error correction level: low, medium, high, highest")
	return cmd
}
