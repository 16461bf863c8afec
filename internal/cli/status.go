package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/store"
)

func newStatusCmd(opts *options) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status <application-id>",
		Short: "Update the status of an application",
		Long: `Update the status of an application. Recognized statuses are
interview, phone screen, offer, accepted and rejected (any case); anything
else counts as still pending. Without --status you pick from a list.

Example:
  rgoat status 6f1c... --status "phone screen"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !cmd.Flags().Changed("status") {
				picked, err := promptStatus("New status")
				if err != nil {
					return err
				}
				status = picked
			}

			return opts.withStore(func(s *store.SQLiteStore) error {
				trial, err := s.UpdateTrialStatus(context.Background(), id, status)
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("application '%s' not found", id)
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Application %s (%s, variant %s) is now %q -> %s\n",
					trial.ID, trial.Experiment, trial.Group, trial.RawStatus, trial.Sample().Outcome())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "new raw status")

	return cmd
}
