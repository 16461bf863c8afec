package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/dashboard"
	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

func newResultsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "results <experiment>",
		Short: "Show detailed results for an experiment",
		Long:  `Show response rates, interview rates, response times and statistical significance.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(s *store.SQLiteStore) error {
				return runResults(cmd, s, args[0])
			})
		},
	}
}

func runResults(cmd *cobra.Command, s store.Store, name string) error {
	e, report, err := store.AnalyzeExperiment(context.Background(), s, name)
	if err != nil {
		return experimentError(name, err)
	}

	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintf(out, "EXPERIMENT: %s\n", e.Name)
	fmt.Fprintf(out, "STATE: %s\n", e.State)
	if e.Description != "" {
		fmt.Fprintf(out, "DESCRIPTION: %s\n", e.Description)
	}
	fmt.Fprintf(out, "CREATED: %s\n", e.CreatedAt.Format("2006-01-02"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "VARIANT           TRIALS  RESPONSE  95% CI           INTERVIEW  AVG RESPONSE")
	fmt.Fprintln(out, strings.Repeat("─", 78))

	for _, g := range []stats.Group{stats.GroupA, stats.GroupB} {
		gr := report.Group(g)
		m := gr.Metrics

		ciStr := "N/A"
		if m.Total > 0 {
			ciStr = fmt.Sprintf("[%s, %s]", dashboard.FormatRate(gr.ResponseCI.Lower), dashboard.FormatRate(gr.ResponseCI.Upper))
		}

		// Truncate variant description if too long
		variant := e.Variant(g)
		if len(variant) > 13 {
			variant = variant[:10] + "..."
		}

		fmt.Fprintf(out, "%s: %-13s  %-6d  %-8s  %-15s  %-9s  %s\n",
			g,
			variant,
			m.Total,
			dashboard.FormatRate(m.ResponseRate),
			ciStr,
			dashboard.FormatRate(m.InterviewRate),
			dashboard.FormatHours(m.AvgResponseTimeHours),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "p-value: %s\n", dashboard.FormatPValue(report.Significance.PValue))
	fmt.Fprintln(out, dashboard.Verdict(report))

	if e.Winner != nil {
		fmt.Fprintf(out, "Declared winner: %s (%s)\n", *e.Winner, e.Variant(*e.Winner))
	}

	return nil
}
