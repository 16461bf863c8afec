package dashboard

import (
	"fmt"
	"math"

	"github.com/resume-goat/resume-goat/internal/stats"
)

// FormatRate renders a percentage with one decimal.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// FormatHours renders a duration in whole hours, or "-" when unknown.
func FormatHours(hours float64) string {
	if hours <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dh", int(math.Round(hours)))
}

// FormatPValue renders a p-value with four decimals, or "n/a" when none was
// computed.
func FormatPValue(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *p)
}

// Verdict is the one-line summary of a report shown under the results table.
func Verdict(r stats.Report) string {
	if r.Significance.Reason != stats.ReasonNone {
		return r.Significance.Reason.Message()
	}
	switch r.Winner {
	case stats.WinnerA, stats.WinnerB:
		return fmt.Sprintf("Variant %s is the winner (p = %s)", r.Winner, FormatPValue(r.Significance.PValue))
	case stats.WinnerTie:
		return fmt.Sprintf("No significant difference yet (p = %s)", FormatPValue(r.Significance.PValue))
	}
	return "Not enough data to determine a winner"
}
