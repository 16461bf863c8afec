package stats

// ReportConfidence is the confidence level of the per-group intervals.
const ReportConfidence = 0.95

// GroupReport is one variant's metrics plus the interval on its response rate.
type GroupReport struct {
	Group      Group        `json:"group"`
	Metrics    GroupMetrics `json:"metrics"`
	ResponseCI Interval     `json:"response_ci"`
}

// Report is the full analysis of an experiment.
type Report struct {
	A            GroupReport        `json:"a"`
	B            GroupReport        `json:"b"`
	Significance SignificanceResult `json:"significance"`
	Winner       Winner             `json:"winner"`
}

// Analyze splits trials by group and runs the whole pipeline.
func Analyze(trials []Trial) Report {
	trialsA, trialsB := Split(trials)
	a, b := Aggregate(trialsA), Aggregate(trialsB)
	sig := ComputeSignificance(a, b)

	return Report{
		A:            newGroupReport(GroupA, a),
		B:            newGroupReport(GroupB, b),
		Significance: sig,
		Winner:       DecideWinner(a, b, sig),
	}
}

func newGroupReport(g Group, m GroupMetrics) GroupReport {
	return GroupReport{
		Group:      g,
		Metrics:    m,
		ResponseCI: WilsonInterval(m.Responses, m.Total, ReportConfidence),
	}
}

// Group returns the report for g.
func (r Report) Group(g Group) GroupReport {
	if g == GroupB {
		return r.B
	}
	return r.A
}
