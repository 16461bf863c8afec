package store

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/resume-goat/resume-goat/internal/stats"
)

// RandomGroup assigns A or B with equal probability.
func RandomGroup() stats.Group {
	if rand.Intn(2) == 0 {
		return stats.GroupA
	}
	return stats.GroupB
}

// AnalyzeExperiment loads an experiment with its trials and runs the metrics
// engine over them. Every view (CLI, API, dashboard) goes through here.
func AnalyzeExperiment(ctx context.Context, s Store, name string) (*Experiment, stats.Report, error) {
	e, err := s.GetExperiment(ctx, name)
	if err != nil {
		return nil, stats.Report{}, err
	}

	trials, err := s.ListTrials(ctx, name)
	if err != nil {
		return nil, stats.Report{}, fmt.Errorf("failed to load trials: %w", err)
	}

	return e, stats.Analyze(Samples(trials)), nil
}
