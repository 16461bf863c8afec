package server

import "github.com/prometheus/client_golang/prometheus"

// TrialsRecordedCounter exposes the per-group counter to tests.
func TrialsRecordedCounter(group string) prometheus.Counter {
	return trialsRecorded.WithLabelValues(group)
}
