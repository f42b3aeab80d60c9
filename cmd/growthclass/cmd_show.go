package main

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCommand() *cobra.Command {
	var (
		store storeFlags
		id    uint64
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print stored reports",
		Long: `Print a stored report as YAML, or list the stored report ids when no id
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stg, err := store.open(l.NewNopLoggerWrapper())
			if err != nil {
				return err
			}

			if stg == nil {
				return errors.New("no report store, use --store or --redis")
			}

			if id == 0 {
				ids, err := stg.List()
				if err != nil {
					return fmt.Errorf("listing reports: %w", err)
				}

				for _, reportID := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), reportID)
				}

				return nil
			}

			r, err := stg.Load(id)
			if err != nil {
				return fmt.Errorf("loading report %d: %w", id, err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(r)
		},
	}

	store.register(cmd)
	cmd.Flags().Uint64Var(&id, "id", 0, "Report id")

	return cmd
}
