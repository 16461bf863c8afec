package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

func newWinnerCmd(opts *options) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "winner <experiment>",
		Short: "Declare a winner and complete the experiment",
		Long: `Declare the winning variant and complete the experiment.

Without --group the winner is taken from the analysis, which requires at
least 10 applications per variant and a significant difference (p < 0.05).

Examples:
  rgoat winner resume-length
  rgoat winner resume-length --group B`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return opts.withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				e, report, err := store.AnalyzeExperiment(ctx, s, name)
				if err != nil {
					return experimentError(name, err)
				}

				// Validate experiment is running
				if e.State != store.StateRunning {
					return fmt.Errorf("experiment is not running (current state: %s)", e.State)
				}

				winner, err := chooseWinner(group, report)
				if err != nil {
					return err
				}

				if err := s.CompleteExperiment(ctx, name, winner); err != nil {
					return fmt.Errorf("failed to set winner: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Declared winner for experiment '%s': variant %s (\"%s\")\n", name, winner, e.Variant(winner))
				fmt.Fprintln(out, "Experiment has been marked as completed.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "winning variant, A or B (default from analysis)")

	return cmd
}

// chooseWinner uses an explicit group when given, otherwise the analysis.
func chooseWinner(explicit string, report stats.Report) (stats.Group, error) {
	if explicit != "" {
		return stats.ParseGroup(explicit)
	}

	if g, ok := report.Winner.Group(); ok {
		return g, nil
	}
	if report.Winner == stats.WinnerTie {
		return "", fmt.Errorf("no significant difference between variants; pass --group to decide anyway")
	}
	return "", fmt.Errorf("cannot pick a winner yet: %s", report.Significance.Reason.Message())
}
