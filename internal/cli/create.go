package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resume-goat/resume-goat/internal/store"
)

func newCreateCmd(opts *options) *cobra.Command {
	var (
		variantA    string
		variantB    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new experiment",
		Long: `Create a new A/B experiment comparing two versions of your material.

Examples:
  rgoat create resume-length --a "one-page resume" --b "two-page resume"
  rgoat create cover --a "no cover letter" --b "tailored cover letter" --description "Q3 search"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" || strings.Contains(name, "/") {
				return fmt.Errorf("invalid experiment name %q", args[0])
			}

			return opts.withStore(func(s *store.SQLiteStore) error {
				e, err := s.CreateExperiment(context.Background(), name, variantA, variantB, description)
				if err != nil {
					return fmt.Errorf("failed to create experiment: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created experiment '%s':\n", e.Name)
				fmt.Fprintf(out, "  A: %s\n", e.VariantA)
				fmt.Fprintf(out, "  B: %s\n", e.VariantB)
				if e.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", e.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&variantA, "a", "", "description of variant A (required)")
	cmd.Flags().StringVar(&variantB, "b", "", "description of variant B (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the experiment is testing (optional)")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")

	return cmd
}
