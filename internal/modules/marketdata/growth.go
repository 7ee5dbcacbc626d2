package marketdata

// growthRateCap bounds the estimated historical growth to a plausible range.
const growthRateCap = 0.5

// EstimateGrowthRate calculates the average year-over-year FCF growth rate
// over the available history. Non-positive values are discarded before
// computing growth; with fewer than two positive values the estimate falls
// back to 0.0.
//
// The fallback is a placeholder policy for cyclical or negative-FCF companies
// and is pending product clarification; callers should treat 0.0 as "no
// usable estimate" rather than "no growth".
func EstimateGrowthRate(fcfHistory []float64) float64 {
	if len(fcfHistory) < 2 {
		return 0.0
	}

	valid := make([]float64, 0, len(fcfHistory))
	for _, v := range fcfHistory {
		if v > 0 {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return 0.0
	}

	sum := 0.0
	count := 0
	for i := 1; i < len(valid); i++ {
		sum += (valid[i] - valid[i-1]) / valid[i-1]
		count++
	}
	if count == 0 {
		return 0.0
	}

	avg := sum / float64(count)
	if avg > growthRateCap {
		return growthRateCap
	}
	if avg < -growthRateCap {
		return -growthRateCap
	}
	return avg
}
