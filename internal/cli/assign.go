package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

func newAssignCmd(opts *options) *cobra.Command {
	var (
		group  string
		label  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "assign <experiment>",
		Short: "Record a new application and assign it to a variant",
		Long: `Record a new application under an experiment. Without --group the
application is assigned to A or B at random (50/50). The group can never be
changed afterwards.

Examples:
  rgoat assign resume-length --label "Acme - Backend Engineer"
  rgoat assign resume-length --group B --status applied`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			g := store.RandomGroup()
			if group != "" {
				parsed, err := stats.ParseGroup(group)
				if err != nil {
					return err
				}
				g = parsed
			}

			return opts.withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				e, err := s.GetExperiment(ctx, name)
				if err != nil {
					return experimentError(name, err)
				}

				trial, err := s.AddTrial(ctx, name, g, label, status)
				if errors.Is(err, store.ErrExperimentClosed) {
					return fmt.Errorf("experiment '%s' is completed; no new applications", name)
				}
				if err != nil {
					return fmt.Errorf("failed to add application: %w", err)
				}

				opts.logger.Debug("trial recorded", "experiment", name, "id", trial.ID, "group", trial.Group)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Application %s assigned to variant %s (%s)\n", trial.ID, trial.Group, e.Variant(trial.Group))
				fmt.Fprintf(out, "Update it later with: rgoat status %s --status interview\n", trial.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "variant to use, A or B (default random)")
	cmd.Flags().StringVarP(&label, "label", "l", "", "company and role, for your reference")
	cmd.Flags().StringVarP(&status, "status", "s", "", "initial status, e.g. applied")

	return cmd
}
