package valuation

import "math"

// projectFCF returns the explicit-period cash flows F0*(1+g)^t for t = 1..years.
func projectFCF(baseFCF, g float64, years int) []float64 {
	out := make([]float64, years)
	fcf := baseFCF
	for t := 0; t < years; t++ {
		fcf *= 1 + g
		out[t] = fcf
	}
	return out
}

// presentValues discounts each cash flow at rate: CF_t / (1+rate)^t.
func presentValues(cashflows []float64, rate float64) []float64 {
	out := make([]float64, len(cashflows))
	disc := 1.0
	for t, cf := range cashflows {
		disc *= 1 + rate
		out[t] = cf / disc
	}
	return out
}

// terminalValue computes the Gordon growth perpetuity on the last explicit
// cash flow. Normalized inputs always satisfy wacc > tg; raw caller values
// that bypass validation are clipped to keep the result finite.
func terminalValue(lastFCF, wacc, tg float64) float64 {
	if wacc <= tg {
		tg = wacc - 1e-6
	}
	return lastFCF * (1 + tg) / (wacc - tg)
}

// sharesPath projects shares outstanding after years of annual dilution
// (positive change) or buybacks (negative change).
func sharesPath(startShares, annualChange float64, years int) float64 {
	return startShares * math.Pow(1+annualChange, float64(years))
}

// computeBaseCase runs the deterministic projection: explicit-period
// discounting, Gordon terminal value, and the capital-structure bridge from
// enterprise to equity value per share.
func computeBaseCase(a ResolvedAssumptions, bridge CapitalBridge) BaseCase {
	fcf := projectFCF(a.BaseFCF, a.GrowthRate, a.Years)
	pvExplicit := presentValues(fcf, a.WACC)

	pvExplicitSum := 0.0
	for _, pv := range pvExplicit {
		pvExplicitSum += pv
	}

	terminalFCF := fcf[len(fcf)-1]
	tv := terminalValue(terminalFCF, a.WACC, a.TerminalGrowth)
	pvTV := tv / math.Pow(1+a.WACC, float64(a.Years))

	ev := pvExplicitSum + pvTV
	equity := ev - bridge.NetDebt + bridge.NonOperatingAssets -
		bridge.MinorityInterest + bridge.OtherAdjustments

	endShares := sharesPath(a.SharesOutstandingStart, a.AnnualShareChange, a.Years)
	perShare := math.NaN()
	if endShares > 0 {
		perShare = equity / endShares
	}

	tvShare := math.NaN()
	if ev > 0 {
		tvShare = pvTV / ev
	}

	return BaseCase{
		EnterpriseValue:        ev,
		EquityValue:            equity,
		EquityValuePerShare:    perShare,
		PVExplicitPeriod:       pvExplicitSum,
		PVTerminalValue:        pvTV,
		TerminalValueGordon:    tv,
		TerminalValueShareOfEV: tvShare,
		FCFProjections:         fcf,
		PVFCFProjections:       pvExplicit,
		TerminalFCFYear:        terminalFCF,
		SharesEndYear:          endShares,
	}
}
