package stats

// Winner is the variant judged superior, a tie, or WinnerNone when there is
// not enough data to decide.
type Winner string

const (
	WinnerNone Winner = ""
	WinnerA    Winner = "A"
	WinnerB    Winner = "B"
	WinnerTie  Winner = "tie"
)

// DecideWinner combines the sample-size gate, the significance result and the
// response rates into a single decision.
func DecideWinner(a, b GroupMetrics, sig SignificanceResult) Winner {
	if a.Total < MinSampleSize || b.Total < MinSampleSize {
		return WinnerNone
	}
	if !sig.Significant {
		return WinnerTie
	}
	if b.ResponseRate > a.ResponseRate {
		return WinnerB
	}
	// Equal rates cannot be significant; A is kept as the fallback.
	return WinnerA
}

// Group returns the winning group, or false for a tie or no decision.
func (w Winner) Group() (Group, bool) {
	switch w {
	case WinnerA:
		return GroupA, true
	case WinnerB:
		return GroupB, true
	}
	return "", false
}
