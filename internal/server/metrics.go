package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/resume-goat/resume-goat/internal/stats"
)

var (
	trialsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rgoat",
		Name:      "trials_recorded_total",
		Help:      "Trials added, by assigned group.",
	}, []string{"group"})

	statusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rgoat",
		Name:      "status_updates_total",
		Help:      "Trial status changes, by resulting outcome.",
	}, []string{"outcome"})

	analyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rgoat",
		Name:      "analyses_total",
		Help:      "Experiment analyses served, by significance reason.",
	}, []string{"reason"})
)

func observeAnalysis(r stats.Report) {
	reason := string(r.Significance.Reason)
	if reason == "" {
		reason = "computed"
	}
	analyses.WithLabelValues(reason).Inc()
}
