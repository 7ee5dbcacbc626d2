// Package valuation implements the discounted cash flow engine: deterministic
// base-case projection, Monte Carlo simulation over the key assumptions, and
// model-health diagnostics.
package valuation

import (
	"encoding/json"
	"math"
)

// CapitalBridge holds the additive adjustments that convert enterprise value
// into equity value. Every company has different adjustments, so all fields
// default to zero.
type CapitalBridge struct {
	NetDebt            float64 `json:"net_debt"`             // debt minus cash
	NonOperatingAssets float64 `json:"non_operating_assets"` // equity investments, excess cash
	MinorityInterest   float64 `json:"minority_interest"`    // subtracted from equity
	OtherAdjustments   float64 `json:"other_adjustments"`    // pension deficit etc
}

// Assumptions is the raw input to a valuation run. FCFHistory is chronological
// with the last element being the most recent year; it may be empty.
// AnnualShareChange is positive for dilution, negative for buybacks.
// GrowthRate, WACC and TerminalGrowth are nominal unless RealMode is set, in
// which case they are real rates converted using Inflation.
type Assumptions struct {
	FCFHistory         []float64      `json:"fcf_history"`
	GrowthRate         float64        `json:"fcf_growth_rate"`
	WACC               float64        `json:"wacc"`
	TerminalGrowth     float64        `json:"terminal_growth"`
	SharesOutstanding  float64        `json:"shares_outstanding"`
	MonteCarloRuns     int            `json:"monte_carlo_runs"`
	Years              int            `json:"years"`
	Bridge             *CapitalBridge `json:"bridge,omitempty"`
	AnnualShareChange  float64        `json:"annual_share_change"`
	TreatSBCAsCashCost bool           `json:"treat_sbc_as_cash_cost"`
	SBCPercentOfFCF    float64        `json:"sbc_percent_of_fcf"`
	RealMode           bool           `json:"real_mode"`
	Inflation          float64        `json:"inflation"`
	RecessionProb      float64        `json:"recession_prob"`
}

// DefaultAssumptions returns an assumption set with the conventional starting
// values. Callers typically take this and overwrite the fields they know.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		WACC:               0.10,
		TerminalGrowth:     0.025,
		SharesOutstanding:  1e9,
		MonteCarloRuns:     1000,
		Years:              5,
		TreatSBCAsCashCost: true,
		Inflation:          0.03,
		RecessionProb:      0.15,
	}
}

// ResolvedAssumptions echoes the nominal assumptions actually used after
// normalization (base FCF selection, SBC haircut, real-to-nominal conversion).
type ResolvedAssumptions struct {
	BaseFCF                float64 `json:"base_fcf"`
	GrowthRate             float64 `json:"growth_rate"`
	WACC                   float64 `json:"wacc"`
	TerminalGrowth         float64 `json:"terminal_growth"`
	Years                  int     `json:"years"`
	SharesOutstandingStart float64 `json:"shares_outstanding_start"`
	AnnualShareChange      float64 `json:"annual_share_change"`
	TreatSBCAsCashCost     bool    `json:"treat_sbc_as_cash_cost"`
	SBCPercentOfFCF        float64 `json:"sbc_percent_of_fcf"`
	RealMode               bool    `json:"real_mode"`
	Inflation              float64 `json:"inflation"`
	RecessionProb          float64 `json:"recession_prob"`
}

// BaseCase is the deterministic valuation breakdown. All intermediate arrays
// are retained for diagnostics and reporting.
type BaseCase struct {
	EnterpriseValue        float64   `json:"enterprise_value"`
	EquityValue            float64   `json:"equity_value"`
	EquityValuePerShare    float64   `json:"equity_value_per_share"`
	PVExplicitPeriod       float64   `json:"pv_explicit_period"`
	PVTerminalValue        float64   `json:"pv_terminal_value"`
	TerminalValueGordon    float64   `json:"terminal_value_gordon"`
	TerminalValueShareOfEV float64   `json:"terminal_value_share_of_ev"`
	FCFProjections         []float64 `json:"fcf_projections"`
	PVFCFProjections       []float64 `json:"pv_fcf_projections"`
	TerminalFCFYear        float64   `json:"terminal_fcf_year"`
	SharesEndYear          float64   `json:"shares_end_year"`
}

// ScenarioDraw records one Monte Carlo trial's sampled inputs and derived
// values, kept for transparency about what drove the valuation range.
type ScenarioDraw struct {
	BaseFCF             float64 `json:"base_fcf"`
	GrowthRate          float64 `json:"growth_rate"`
	WACC                float64 `json:"wacc"`
	TerminalGrowth      float64 `json:"terminal_growth"`
	EnterpriseValue     float64 `json:"enterprise_value"`
	EquityValue         float64 `json:"equity_value"`
	EquityValuePerShare float64 `json:"equity_value_per_share"`
	Recession           bool    `json:"recession"`
}

// MonteCarloSummary holds the distribution statistics of per-share valuations
// across all trials. Statistics are computed over finite values only; when no
// finite values exist all statistics are NaN and Count is 0.
type MonteCarloSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Diagnostics holds model health checks derived from the base case.
type Diagnostics struct {
	TerminalValueShare        float64  `json:"terminal_value_share"`
	TerminalValueDominant     bool     `json:"terminal_value_dominant"`
	DurationYears             float64  `json:"duration_years_pv_cashflows"`
	PVExplicitToTerminalRatio float64  `json:"pv_explicit_to_pv_terminal_ratio"`
	HealthFlags               []string `json:"health_flags"`
}

// ValuationResult is the immutable aggregate produced once per call.
type ValuationResult struct {
	ID              string              `json:"id"`
	BaseCase        BaseCase            `json:"base_case"`
	MonteCarlo      MonteCarloSummary   `json:"monte_carlo"`
	Diagnostics     Diagnostics         `json:"diagnostics"`
	Assumptions     ResolvedAssumptions `json:"assumptions"`
	SampleScenarios []ScenarioDraw      `json:"mc_sample_scenarios"`
}

// ValuationMetrics relates a DCF price to the market's current pricing.
type ValuationMetrics struct {
	DCFVsCurrent           float64 `json:"dcf_vs_current"`
	UpsideDownsideMultiple float64 `json:"upside_downside_multiple"`
	FCFYield               float64 `json:"fcf_yield"`
	PriceToFCF             float64 `json:"price_to_fcf"`
}

// jsonNum converts a float to a JSON-safe value. encoding/json rejects NaN
// and infinities, and the downstream consumers expect null for degenerate
// numbers, so non-finite values are mapped to nil.
func jsonNum(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// MarshalJSON maps non-finite numbers to null. Per-share value is legitimately
// NaN when projected shares outstanding are non-positive.
func (b BaseCase) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"enterprise_value":           jsonNum(b.EnterpriseValue),
		"equity_value":               jsonNum(b.EquityValue),
		"equity_value_per_share":     jsonNum(b.EquityValuePerShare),
		"pv_explicit_period":         jsonNum(b.PVExplicitPeriod),
		"pv_terminal_value":          jsonNum(b.PVTerminalValue),
		"terminal_value_gordon":      jsonNum(b.TerminalValueGordon),
		"terminal_value_share_of_ev": jsonNum(b.TerminalValueShareOfEV),
		"fcf_projections":            b.FCFProjections,
		"pv_fcf_projections":         b.PVFCFProjections,
		"terminal_fcf_year":          jsonNum(b.TerminalFCFYear),
		"shares_end_year":            jsonNum(b.SharesEndYear),
	})
}

// MarshalJSON maps non-finite statistics to null (degenerate distributions).
func (s MonteCarloSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"mean":   jsonNum(s.Mean),
		"median": jsonNum(s.Median),
		"std":    jsonNum(s.Std),
		"p5":     jsonNum(s.P5),
		"p25":    jsonNum(s.P25),
		"p75":    jsonNum(s.P75),
		"p95":    jsonNum(s.P95),
		"min":    jsonNum(s.Min),
		"max":    jsonNum(s.Max),
		"count":  s.Count,
	})
}

// MarshalJSON maps non-finite diagnostics to null.
func (d Diagnostics) MarshalJSON() ([]byte, error) {
	flags := d.HealthFlags
	if flags == nil {
		flags = []string{}
	}
	return json.Marshal(map[string]interface{}{
		"terminal_value_share":             jsonNum(d.TerminalValueShare),
		"terminal_value_dominant":          d.TerminalValueDominant,
		"duration_years_pv_cashflows":      jsonNum(d.DurationYears),
		"pv_explicit_to_pv_terminal_ratio": jsonNum(d.PVExplicitToTerminalRatio),
		"health_flags":                     flags,
	})
}

// MarshalJSON maps a non-finite per-share value to null.
func (s ScenarioDraw) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"base_fcf":               jsonNum(s.BaseFCF),
		"growth_rate":            jsonNum(s.GrowthRate),
		"wacc":                   jsonNum(s.WACC),
		"terminal_growth":        jsonNum(s.TerminalGrowth),
		"enterprise_value":       jsonNum(s.EnterpriseValue),
		"equity_value":           jsonNum(s.EquityValue),
		"equity_value_per_share": jsonNum(s.EquityValuePerShare),
		"recession":              s.Recession,
	})
}
