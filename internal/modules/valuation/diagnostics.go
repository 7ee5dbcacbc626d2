package valuation

import "math"

// Health flag messages. These catch the common mistakes that make DCF models
// unreliable.
const (
	flagWaccNotAboveTG   = "WACC not greater than terminal growth"
	flagEVNonPositive    = "Enterprise value non positive"
	flagShortDuration    = "Short duration implies heavy back loading"
	flagTerminalDominant = "Terminal value dominates the enterprise value"
)

// terminalDominanceThreshold: above this share of enterprise value coming
// from the terminal value, the model is very sensitive to its assumptions.
const terminalDominanceThreshold = 0.7

// cashFlowDuration computes a Macaulay-style weighted average year over the
// explicit-period present values: sum(t*PV_t)/sum(PV_t). It returns NaN when
// any PV is non-finite or when their sum is zero.
func cashFlowDuration(pvCashflows []float64) float64 {
	if len(pvCashflows) == 0 {
		return math.NaN()
	}
	sum := 0.0
	weighted := 0.0
	for t, pv := range pvCashflows {
		if math.IsNaN(pv) || math.IsInf(pv, 0) {
			return math.NaN()
		}
		sum += pv
		weighted += float64(t+1) * pv
	}
	if sum == 0 {
		return math.NaN()
	}
	return weighted / sum
}

// computeDiagnostics derives model health checks from the base case: how much
// of the value sits in the terminal period, how front- or back-loaded the
// explicit cash flows are, and a list of sanity flags. Any subset of flags may
// fire simultaneously.
func computeDiagnostics(base BaseCase, wacc, tg float64) Diagnostics {
	ev := base.EnterpriseValue
	pvTV := base.PVTerminalValue

	terminalShare := math.NaN()
	if ev > 0 {
		terminalShare = pvTV / ev
	}
	terminalDominant := !math.IsNaN(terminalShare) && terminalShare > terminalDominanceThreshold

	duration := cashFlowDuration(base.PVFCFProjections)

	ratio := math.NaN()
	if pvTV > 0 {
		ratio = base.PVExplicitPeriod / pvTV
	}

	flags := []string{}
	if wacc <= tg {
		flags = append(flags, flagWaccNotAboveTG)
	}
	if math.IsNaN(ev) || math.IsInf(ev, 0) || ev <= 0 {
		flags = append(flags, flagEVNonPositive)
	}
	if !math.IsNaN(duration) && duration < 2.0 {
		flags = append(flags, flagShortDuration)
	}
	if terminalDominant {
		flags = append(flags, flagTerminalDominant)
	}

	return Diagnostics{
		TerminalValueShare:        terminalShare,
		TerminalValueDominant:     terminalDominant,
		DurationYears:             duration,
		PVExplicitToTerminalRatio: ratio,
		HealthFlags:               flags,
	}
}
