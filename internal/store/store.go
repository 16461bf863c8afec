package store

import (
	"context"

	"github.com/resume-goat/resume-goat/internal/stats"
)

// Store defines the interface for experiment storage operations
type Store interface {
	// Experiment operations
	CreateExperiment(ctx context.Context, name, variantA, variantB, description string) (*Experiment, error)
	GetExperiment(ctx context.Context, name string) (*Experiment, error)
	ListExperiments(ctx context.Context) ([]*Experiment, error)
	CompleteExperiment(ctx context.Context, name string, winner stats.Group) error
	DeleteExperiment(ctx context.Context, name string) error

	// Trial operations
	AddTrial(ctx context.Context, experiment string, group stats.Group, label, rawStatus string) (*Trial, error)
	GetTrial(ctx context.Context, id string) (*Trial, error)
	UpdateTrialStatus(ctx context.Context, id, rawStatus string) (*Trial, error)
	ListTrials(ctx context.Context, experiment string) ([]*Trial, error)

	// Lifecycle
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
