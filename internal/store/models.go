package store

import (
	"time"

	"github.com/resume-goat/resume-goat/internal/stats"
)

type ExperimentState string

const (
	StateRunning   ExperimentState = "running"
	StateCompleted ExperimentState = "completed"
)

// Experiment compares two versions of application material, e.g. two resumes.
type Experiment struct {
	ID          int64
	Name        string
	VariantA    string // description of what group A receives
	VariantB    string
	Description string
	State       ExperimentState
	Winner      *stats.Group
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant returns the description of group g.
func (e *Experiment) Variant(g stats.Group) string {
	if g == stats.GroupB {
		return e.VariantB
	}
	return e.VariantA
}

// Trial is one tracked application. Its group is fixed at creation.
type Trial struct {
	ID         string
	Experiment string
	Group      stats.Group
	Label      string // free text, typically company and role
	RawStatus  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Sample converts the row into the input the metrics engine expects.
func (t *Trial) Sample() stats.Trial {
	return stats.Trial{
		Group:     t.Group,
		RawStatus: t.RawStatus,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// Samples converts a list of rows for the metrics engine.
func Samples(trials []*Trial) []stats.Trial {
	out := make([]stats.Trial, len(trials))
	for i, t := range trials {
		out[i] = t.Sample()
	}
	return out
}
