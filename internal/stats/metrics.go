package stats

// GroupMetrics summarizes the trials of one group. Rates are percentages in
// [0, 100] and are never rounded here.
type GroupMetrics struct {
	Total                int     `json:"total"`
	Responses            int     `json:"responses"`
	Interviews           int     `json:"interviews"` // interviews and offers
	Offers               int     `json:"offers"`
	Rejections           int     `json:"rejections"`
	ResponseRate         float64 `json:"response_rate"`
	InterviewRate        float64 `json:"interview_rate"`
	AvgResponseTimeHours float64 `json:"avg_response_time_hours"`
}

// Aggregate computes metrics over whatever trials it is given; callers filter
// by group first. All divisions are zero-safe.
func Aggregate(trials []Trial) GroupMetrics {
	m := GroupMetrics{Total: len(trials)}
	if m.Total == 0 {
		return m
	}

	var hours float64
	var timed int

	for _, t := range trials {
		outcome := t.Outcome()
		if !outcome.Responded() {
			continue
		}
		m.Responses++

		switch outcome {
		case OutcomeOffer:
			m.Offers++
		case OutcomeRejection:
			m.Rejections++
		}
		if outcome.Interviewed() {
			m.Interviews++
		}

		// Zero and negative durations come from clock skew or backdated rows.
		elapsed := t.UpdatedAt.Sub(t.CreatedAt).Hours()
		if elapsed > 0 {
			hours += elapsed
			timed++
		}
	}

	m.ResponseRate = 100 * float64(m.Responses) / float64(m.Total)
	m.InterviewRate = 100 * float64(m.Interviews) / float64(m.Total)
	if timed > 0 {
		m.AvgResponseTimeHours = hours / float64(timed)
	}

	return m
}
