package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	var serial bool
	var showChain bool

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a unit and its dependency chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, chain, err := c.app.Compile(cmd.Context(), args[0], serial)
			if err != nil {
				return err
			}

			if showChain {
				for _, unit := range chain {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), unit)
				}
			}

			if result.Failed() {
				for _, d := range result.Diagnostics {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.String())
				}
				return result.Err()
			}

			for _, f := range result.Output.Files {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "emitted "+f.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&serial, "serial", false, "Resolve dependencies sequentially instead of concurrently")
	cmd.Flags().BoolVar(&showChain, "chain", false, "Print the dependency chain before the result")

	return cmd
}
