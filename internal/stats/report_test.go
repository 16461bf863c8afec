package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resume-goat/resume-goat/internal/stats"
)

func TestAnalyze(t *testing.T) {
	var trials []stats.Trial
	trials = append(trials, makeTrials(stats.GroupA, 10, "Interview", 48*time.Hour)...)
	trials = append(trials, makeTrials(stats.GroupA, 10, "applied", 0)...)
	trials = append(trials, makeTrials(stats.GroupB, 2, "rejected", 24*time.Hour)...)
	trials = append(trials, makeTrials(stats.GroupB, 18, "", 0)...)

	r := stats.Analyze(trials)

	assert.Equal(t, 20, r.A.Metrics.Total)
	assert.Equal(t, 20, r.B.Metrics.Total)
	assert.InDelta(t, 48.0, r.A.Metrics.AvgResponseTimeHours, 1e-9)
	assert.Less(t, r.A.ResponseCI.Lower, r.A.Metrics.ResponseRate)
	assert.Greater(t, r.A.ResponseCI.Upper, r.A.Metrics.ResponseRate)
	require.NotNil(t, r.Significance.PValue)
	assert.True(t, r.Significance.Significant)
	assert.Equal(t, stats.WinnerA, r.Winner)
	assert.Equal(t, r.B, r.Group(stats.GroupB))
}

func TestAnalyze_SmallGroup(t *testing.T) {
	trials := append(
		makeTrials(stats.GroupA, 5, "offer", time.Hour),
		makeTrials(stats.GroupB, 30, "interview", time.Hour)...,
	)

	r := stats.Analyze(trials)

	assert.Equal(t, stats.WinnerNone, r.Winner)
	assert.Equal(t, stats.ReasonInsufficientSample, r.Significance.Reason)
}

func TestAnalyze_Empty(t *testing.T) {
	r := stats.Analyze(nil)

	assert.Equal(t, stats.WinnerNone, r.Winner)
	assert.Nil(t, r.Significance.PValue)
	assert.Equal(t, stats.Interval{}, r.A.ResponseCI)
}
