package valuation

import (
	"math"

	"github.com/camejiaf/finsense/pkg/formulas"
)

// summarize computes distribution statistics over the finite per-share
// valuations. A degenerate but informative distribution is still valid output,
// so an empty or all-NaN array yields NaN statistics with count 0 rather than
// an error.
func summarize(perShare []float64) MonteCarloSummary {
	clean := formulas.FilterFinite(perShare)
	if len(clean) == 0 {
		nan := math.NaN()
		return MonteCarloSummary{
			Mean: nan, Median: nan, Std: nan,
			P5: nan, P25: nan, P75: nan, P95: nan,
			Min: nan, Max: nan, Count: 0,
		}
	}

	return MonteCarloSummary{
		Mean:   formulas.Mean(clean),
		Median: formulas.Median(clean),
		Std:    formulas.PopStdDev(clean),
		P5:     formulas.Percentile(clean, 5),
		P25:    formulas.Percentile(clean, 25),
		P75:    formulas.Percentile(clean, 75),
		P95:    formulas.Percentile(clean, 95),
		Min:    formulas.Min(clean),
		Max:    formulas.Max(clean),
		Count:  len(clean),
	}
}
