package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/store"
)

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <experiment>",
		Short: "Delete an experiment and all of its applications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return opts.withStore(func(s *store.SQLiteStore) error {
				if err := s.DeleteExperiment(context.Background(), name); err != nil {
					return experimentError(name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted experiment '%s'\n", name)
				return nil
			})
		},
	}
}
