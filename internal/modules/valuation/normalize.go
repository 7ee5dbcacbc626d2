package valuation

import "fmt"

// defaultBaseFCF is the fallback base free cash flow ($1B) for companies with
// no usable FCF history.
const defaultBaseFCF = 1_000_000_000.0

// validateAssumptions performs the fail-fast sanity checks. Raw caller values
// are checked before any real-to-nominal conversion, so equal WACC and
// terminal growth is rejected even if inflation adjustment would separate them.
func validateAssumptions(a Assumptions) error {
	if a.Years < 3 || a.Years > 10 {
		return &ValidationError{
			Code:    CodeInvalidHorizon,
			Message: fmt.Sprintf("years must be between 3 and 10, got %d", a.Years),
		}
	}
	if a.WACC <= a.TerminalGrowth {
		return &ValidationError{
			Code:    CodeWaccNotAboveTG,
			Message: "WACC must be strictly greater than terminal growth",
		}
	}
	if a.WACC < 0 || a.TerminalGrowth < 0 {
		return &ValidationError{
			Code:    CodeNegativeRate,
			Message: "WACC and terminal growth must be non negative",
		}
	}
	return nil
}

// pickBaseFCF selects the base free cash flow from history. The last element
// is assumed to be the most recent year. A negative most-recent value falls
// back to the maximum positive value in history, which happens with cyclical
// companies or those with one-off charges.
func pickBaseFCF(history []float64) float64 {
	if len(history) == 0 {
		return defaultBaseFCF
	}
	mostRecent := history[len(history)-1]
	if mostRecent > 0 {
		return mostRecent
	}
	best := 0.0
	for _, v := range history {
		if v > 0 && v > best {
			best = v
		}
	}
	if best > 0 {
		return best
	}
	return defaultBaseFCF
}

// toNominal converts a real rate to nominal via the Fisher relation.
func toNominal(real, inflation float64) float64 {
	return (1+real)*(1+inflation) - 1
}

// normalizeAssumptions validates the raw assumptions and resolves them into
// the nominal values the projector and sampler consume: base FCF selection,
// stock-compensation haircut, and real-to-nominal conversion.
func normalizeAssumptions(a Assumptions) (ResolvedAssumptions, error) {
	if err := validateAssumptions(a); err != nil {
		return ResolvedAssumptions{}, err
	}

	baseFCF := pickBaseFCF(a.FCFHistory)
	// Some companies treat stock-based compensation as a real cash cost.
	if a.TreatSBCAsCashCost && a.SBCPercentOfFCF > 0 {
		baseFCF = baseFCF * (1.0 - a.SBCPercentOfFCF)
	}

	g, wacc, tg := a.GrowthRate, a.WACC, a.TerminalGrowth
	if a.RealMode {
		g = toNominal(g, a.Inflation)
		wacc = toNominal(wacc, a.Inflation)
		tg = toNominal(tg, a.Inflation)
	}

	return ResolvedAssumptions{
		BaseFCF:                baseFCF,
		GrowthRate:             g,
		WACC:                   wacc,
		TerminalGrowth:         tg,
		Years:                  a.Years,
		SharesOutstandingStart: a.SharesOutstanding,
		AnnualShareChange:      a.AnnualShareChange,
		TreatSBCAsCashCost:     a.TreatSBCAsCashCost,
		SBCPercentOfFCF:        a.SBCPercentOfFCF,
		RealMode:               a.RealMode,
		Inflation:              a.Inflation,
		RecessionProb:          a.RecessionProb,
	}, nil
}
