package stats

import "math"

// Interval is a confidence interval on a rate, in percent.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// WilsonInterval calculates the Wilson score interval for a binomial
// proportion and returns it in percent. It behaves better than the normal
// approximation on the small samples typical of a job search.
func WilsonInterval(successes, trials int, confidence float64) Interval {
	if trials <= 0 {
		return Interval{}
	}

	z := ZScore(confidence)
	p := float64(successes) / float64(trials)
	n := float64(trials)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	spread := (z / denominator) * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))

	return Interval{
		Lower: 100 * clamp01(center-spread),
		Upper: 100 * clamp01(center+spread),
	}
}

// ZScore returns the two-sided critical value for a confidence level:
//   - 0.90 -> 1.645
//   - 0.95 -> 1.96
//   - 0.99 -> 2.576
func ZScore(confidence float64) float64 {
	switch confidence {
	case 0.99:
		return 2.576
	case 0.95:
		return 1.96
	case 0.90:
		return 1.645
	}
	if confidence <= 0 {
		return 0
	}
	if confidence >= 1 {
		return math.Inf(1)
	}
	return inverseNormalCDF((1 + confidence) / 2)
}

// inverseNormalCDF solves NormalCDF(z) = p by bisection.
func inverseNormalCDF(p float64) float64 {
	lo, hi := -10.0, 10.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if NormalCDF(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
