package stats

import "math"

const (
	// MinSampleSize is the number of trials each group needs before any
	// significance claim or winner is made.
	MinSampleSize = 10

	// Alpha is the two-tailed significance threshold.
	Alpha = 0.05
)

// ReasonCode explains why no p-value was computed.
type ReasonCode string

const (
	ReasonNone               ReasonCode = ""
	ReasonInsufficientSample ReasonCode = "insufficient_sample"
	ReasonAllPending         ReasonCode = "all_pending"
	ReasonIdenticalRates     ReasonCode = "identical_rates"
)

// Message returns the user-facing explanation for the reason.
func (r ReasonCode) Message() string {
	switch r {
	case ReasonInsufficientSample:
		return "Need 10+ applications per variant"
	case ReasonAllPending:
		return "Update outcomes to see results"
	case ReasonIdenticalRates:
		return "Same response rate - need more data"
	}
	return ""
}

// SignificanceResult is the outcome of comparing two groups' response rates.
// A nil PValue means no claim can be made; Reason says why.
type SignificanceResult struct {
	PValue      *float64   `json:"p_value"`
	Significant bool       `json:"significant"`
	Reason      ReasonCode `json:"reason,omitempty"`
}

// ComputeSignificance performs a two-tailed two-proportion z-test on the
// response rates of a and b.
func ComputeSignificance(a, b GroupMetrics) SignificanceResult {
	if a.Total < MinSampleSize || b.Total < MinSampleSize {
		return SignificanceResult{Reason: ReasonInsufficientSample}
	}

	n1, n2 := float64(a.Total), float64(b.Total)
	p1, p2 := a.ResponseRate/100, b.ResponseRate/100

	if p1 == 0 && p2 == 0 {
		return SignificanceResult{Reason: ReasonAllPending}
	}
	// Equal rates give z = 0; report them as indistinguishable rather than
	// as a p-value of 1.
	if p1 == p2 {
		return SignificanceResult{Reason: ReasonIdenticalRates}
	}

	// Pooled proportion under the null hypothesis (p1 = p2)
	pooled := (p1*n1 + p2*n2) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))

	if se == 0 || math.IsNaN(se) {
		if p1 == 0 && p2 == 0 {
			return SignificanceResult{Reason: ReasonAllPending}
		}
		return SignificanceResult{Reason: ReasonIdenticalRates}
	}

	z := (p1 - p2) / se
	p := clamp01(2 * (1 - NormalCDF(math.Abs(z))))

	return SignificanceResult{
		PValue:      &p,
		Significant: p < Alpha,
	}
}

// NormalCDF approximates the cumulative distribution function of the
// standard normal distribution (Abramowitz and Stegun, formula 7.1.26).
func NormalCDF(x float64) float64 {
	a1 := 0.254829592
	a2 := -0.284496736
	a3 := 1.421413741
	a4 := -1.453152027
	a5 := 1.061405429
	p := 0.3275911

	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x) / math.Sqrt(2)

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return 0.5 * (1.0 + sign*y)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
