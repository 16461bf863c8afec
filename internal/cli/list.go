package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/dashboard"
	"github.com/resume-goat/resume-goat/internal/store"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all experiments",
		Long:  `List all experiments with their state, trial counts and response rates.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(s *store.SQLiteStore) error {
				return runList(cmd, s)
			})
		},
	}
}

func runList(cmd *cobra.Command, s store.Store) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	experiments, err := s.ListExperiments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list experiments: %w", err)
	}

	if len(experiments) == 0 {
		fmt.Fprintln(out, "No experiments yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Create one with:")
		fmt.Fprintln(out, `  rgoat create resume-length --a "one page" --b "two pages"`)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tTRIALS A/B\tRESPONSE A\tRESPONSE B\tWINNER\tCREATED")

	for _, e := range experiments {
		_, report, err := store.AnalyzeExperiment(ctx, s, e.Name)
		if err != nil {
			return fmt.Errorf("failed to analyze experiment %s: %w", e.Name, err)
		}

		winner := "-"
		if e.Winner != nil {
			winner = string(*e.Winner)
		}

		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\t%s\n",
			e.Name,
			strings.ToUpper(string(e.State)),
			report.A.Metrics.Total,
			report.B.Metrics.Total,
			dashboard.FormatRate(report.A.Metrics.ResponseRate),
			dashboard.FormatRate(report.B.Metrics.ResponseRate),
			winner,
			e.CreatedAt.Format("2006-01-02"),
		)
	}

	return w.Flush()
}
