package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newWhyCmd() *cobra.Command {
	var changed []string

	cmd := &cobra.Command{
		Use:   "why <file>",
		Short: "Explain why a unit would be recompiled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, err := c.app.Why(cmd.Context(), args[0], changed)
			if err != nil {
				return err
			}

			if len(reason) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no changed dependency reachable")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), args[0]+" -> "+strings.Join(reason, " -> "))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&changed, "changed", nil, "Paths of changed units")
	_ = cmd.MarkFlagRequired("changed")

	return cmd
}
