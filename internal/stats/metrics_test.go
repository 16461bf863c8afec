package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/resume-goat/resume-goat/internal/stats"
)

var epoch = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

// makeTrials builds n trials with the given status, each updated after elapsed.
func makeTrials(g stats.Group, n int, status string, elapsed time.Duration) []stats.Trial {
	trials := make([]stats.Trial, n)
	for i := range trials {
		trials[i] = stats.Trial{
			Group:     g,
			RawStatus: status,
			CreatedAt: epoch,
			UpdatedAt: epoch.Add(elapsed),
		}
	}
	return trials
}

func TestAggregate_Empty(t *testing.T) {
	m := stats.Aggregate(nil)

	assert.Equal(t, stats.GroupMetrics{}, m)
}

func TestAggregate_Rates(t *testing.T) {
	var trials []stats.Trial
	trials = append(trials, makeTrials(stats.GroupA, 2, "interview", 24*time.Hour)...)
	trials = append(trials, makeTrials(stats.GroupA, 1, "offer", 72*time.Hour)...)
	trials = append(trials, makeTrials(stats.GroupA, 1, "rejected", 48*time.Hour)...)
	trials = append(trials, makeTrials(stats.GroupA, 4, "applied", 12*time.Hour)...)

	m := stats.Aggregate(trials)

	assert.Equal(t, 8, m.Total)
	assert.Equal(t, 4, m.Responses)
	assert.Equal(t, 3, m.Interviews)
	assert.Equal(t, 1, m.Offers)
	assert.Equal(t, 1, m.Rejections)
	assert.InDelta(t, 50.0, m.ResponseRate, 1e-9)
	assert.InDelta(t, 37.5, m.InterviewRate, 1e-9)
	// pending trials never count toward response time
	assert.InDelta(t, (24.0+24+72+48)/4, m.AvgResponseTimeHours, 1e-9)
}

func TestAggregate_ExcludesNonPositiveDurations(t *testing.T) {
	trials := []stats.Trial{
		{RawStatus: "interview", CreatedAt: epoch, UpdatedAt: epoch},
		{RawStatus: "rejected", CreatedAt: epoch, UpdatedAt: epoch.Add(-5 * time.Hour)},
		{RawStatus: "offer", CreatedAt: epoch, UpdatedAt: epoch.Add(10 * time.Hour)},
	}

	m := stats.Aggregate(trials)

	assert.Equal(t, 3, m.Responses)
	assert.InDelta(t, 10.0, m.AvgResponseTimeHours, 1e-9)
}

func TestAggregate_NoUsableDurations(t *testing.T) {
	trials := makeTrials(stats.GroupB, 3, "rejected", 0)

	m := stats.Aggregate(trials)

	assert.Equal(t, 100.0, m.ResponseRate)
	assert.Zero(t, m.AvgResponseTimeHours)
}

func TestAggregate_AllPending(t *testing.T) {
	m := stats.Aggregate(makeTrials(stats.GroupA, 5, "", time.Hour))

	assert.Equal(t, 5, m.Total)
	assert.Zero(t, m.ResponseRate)
	assert.Zero(t, m.InterviewRate)
	assert.Zero(t, m.AvgResponseTimeHours)
}

func TestAggregate_Idempotent(t *testing.T) {
	trials := append(
		makeTrials(stats.GroupA, 3, "interview", 30*time.Hour),
		makeTrials(stats.GroupA, 4, "applied", time.Hour)...,
	)

	assert.Equal(t, stats.Aggregate(trials), stats.Aggregate(trials))
}
