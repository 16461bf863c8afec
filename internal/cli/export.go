package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/store"
)

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <experiment>",
		Short: "Export raw application data",
		Long: `Export every application of an experiment in CSV or JSON format.

Examples:
  rgoat export resume-length --format csv > resume-length.csv
  rgoat export resume-length --format json > resume-length.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format: must be 'csv' or 'json'")
			}

			return opts.withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				// Verify experiment exists
				if _, err := s.GetExperiment(ctx, name); err != nil {
					return experimentError(name, err)
				}

				trials, err := s.ListTrials(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to get applications: %w", err)
				}

				if format == "csv" {
					return exportCSV(cmd.OutOrStdout(), trials)
				}
				return exportJSON(cmd.OutOrStdout(), name, trials)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv or json)")

	return cmd
}

func exportCSV(out io.Writer, trials []*store.Trial) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"id", "group", "label", "status", "outcome", "created_at", "updated_at"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, t := range trials {
		row := []string{
			t.ID,
			string(t.Group),
			t.Label,
			t.RawStatus,
			string(t.Sample().Outcome()),
			strconv.FormatInt(t.CreatedAt.Unix(), 10),
			strconv.FormatInt(t.UpdatedAt.Unix(), 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

type jsonExport struct {
	Experiment string      `json:"experiment"`
	Trials     []jsonTrial `json:"applications"`
}

type jsonTrial struct {
	ID        string `json:"id"`
	Group     string `json:"group"`
	Label     string `json:"label,omitempty"`
	Status    string `json:"status"`
	Outcome   string `json:"outcome"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func exportJSON(out io.Writer, name string, trials []*store.Trial) error {
	export := jsonExport{
		Experiment: name,
		Trials:     make([]jsonTrial, len(trials)),
	}

	for i, t := range trials {
		export.Trials[i] = jsonTrial{
			ID:        t.ID,
			Group:     string(t.Group),
			Label:     t.Label,
			Status:    t.RawStatus,
			Outcome:   string(t.Sample().Outcome()),
			CreatedAt: t.CreatedAt.Unix(),
			UpdatedAt: t.UpdatedAt.Unix(),
		}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}
