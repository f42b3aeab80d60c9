package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBaselinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "baselines",
		Short: "List the built-in baseline functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range baselineNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, baselines[name].Formula)
			}

			return nil
		},
	}
}
