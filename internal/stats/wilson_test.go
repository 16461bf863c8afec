package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resume-goat/resume-goat/internal/stats"
)

func TestWilsonInterval_Half(t *testing.T) {
	ci := stats.WilsonInterval(50, 100, 0.95)

	assert.InDelta(t, 40.38, ci.Lower, 0.01)
	assert.InDelta(t, 59.62, ci.Upper, 0.01)
}

func TestWilsonInterval_Bounds(t *testing.T) {
	none := stats.WilsonInterval(0, 10, 0.95)
	assert.InDelta(t, 0.0, none.Lower, 1e-9)
	assert.InDelta(t, 27.75, none.Upper, 0.01)

	all := stats.WilsonInterval(10, 10, 0.95)
	assert.InDelta(t, 72.25, all.Lower, 0.01)
	assert.InDelta(t, 100.0, all.Upper, 1e-9)
}

func TestWilsonInterval_NoTrials(t *testing.T) {
	assert.Equal(t, stats.Interval{}, stats.WilsonInterval(0, 0, 0.95))
}

func TestZScore(t *testing.T) {
	assert.Equal(t, 1.96, stats.ZScore(0.95))
	assert.Equal(t, 2.576, stats.ZScore(0.99))
	assert.InDelta(t, 1.2816, stats.ZScore(0.80), 1e-3)
	assert.Zero(t, stats.ZScore(0))
}
