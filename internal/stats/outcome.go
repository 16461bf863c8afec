package stats

import (
	"fmt"
	"strings"
	"time"
)

// Group identifies which variant a trial was assigned to.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
)

// ParseGroup accepts "a", "A", "b" or "B".
func ParseGroup(s string) (Group, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return GroupA, nil
	case "B":
		return GroupB, nil
	}
	return "", fmt.Errorf("invalid group %q: must be A or B", s)
}

// Outcome is the normalized state of a trial, derived from its raw status.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeInterview Outcome = "interview"
	OutcomeOffer     Outcome = "offer"
	OutcomeRejection Outcome = "rejection"
)

var outcomeByStatus = map[string]Outcome{
	"interview":    OutcomeInterview,
	"phone screen": OutcomeInterview,
	"offer":        OutcomeOffer,
	"accepted":     OutcomeOffer,
	"rejected":     OutcomeRejection,
}

// Classify maps a free-text status to an Outcome. Matching is exact after
// lower-casing; anything unrecognized, including the empty string, is pending.
func Classify(rawStatus string) Outcome {
	if o, ok := outcomeByStatus[strings.ToLower(rawStatus)]; ok {
		return o
	}
	return OutcomePending
}

// Responded reports whether the trial has moved past pending.
func (o Outcome) Responded() bool {
	return o != OutcomePending
}

// Interviewed reports whether the trial reached at least an interview.
func (o Outcome) Interviewed() bool {
	return o == OutcomeInterview || o == OutcomeOffer
}

// Trial is one application assigned to a variant.
type Trial struct {
	Group     Group
	RawStatus string // empty when no status has been recorded
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome classifies the trial's current status.
func (t Trial) Outcome() Outcome {
	return Classify(t.RawStatus)
}

// Split partitions trials by group. Trials with any other group are ignored.
func Split(trials []Trial) (a, b []Trial) {
	for _, t := range trials {
		switch t.Group {
		case GroupA:
			a = append(a, t)
		case GroupB:
			b = append(b, t)
		}
	}
	return a, b
}
