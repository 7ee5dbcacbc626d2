package valuation

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CalculatorConfig holds the market-level defaults a calculator carries across
// calls plus the optional RNG seed for reproducible Monte Carlo runs.
type CalculatorConfig struct {
	RiskFreeRate      float64
	MarketRiskPremium float64
	DefaultBeta       float64
	Seed              *uint64
}

// DefaultCalculatorConfig returns defaults roughly matching current market
// conditions.
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		RiskFreeRate:      0.045,
		MarketRiskPremium: 0.06,
		DefaultBeta:       1.0,
	}
}

// Calculator is the valuation engine entry point. Each call is pure given its
// inputs and generator state; no state persists between calls except the
// random source.
//
// The calculator owns a single pseudo-random source and is therefore NOT safe
// for concurrent use: either give each concurrent caller its own Calculator
// instance, or inject a per-call source via ValuateWithSource.
type Calculator struct {
	riskFreeRate      float64
	marketRiskPremium float64
	defaultBeta       float64
	src               rand.Source
	log               zerolog.Logger
}

// NewCalculator creates a valuation calculator. When no seed is configured the
// source is seeded randomly at construction, so distinct instances produce
// independent streams.
func NewCalculator(cfg CalculatorConfig, log zerolog.Logger) *Calculator {
	var src rand.Source
	if cfg.Seed != nil {
		src = rand.NewPCG(*cfg.Seed, *cfg.Seed)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Calculator{
		riskFreeRate:      cfg.RiskFreeRate,
		marketRiskPremium: cfg.MarketRiskPremium,
		defaultBeta:       cfg.DefaultBeta,
		src:               src,
		log:               log.With().Str("component", "dcf_calculator").Logger(),
	}
}

// DefaultBeta returns the calculator's configured fallback beta.
func (c *Calculator) DefaultBeta() float64 {
	return c.defaultBeta
}

// Valuate runs the full valuation: normalization, deterministic base case,
// Monte Carlo distribution, and diagnostics. It fails fast with a
// *ValidationError before any simulation work, and never returns a partial
// result on validation failure. Numeric degeneracy inside the computation is
// reported in-band as NaN values and health flags, not as an error.
func (c *Calculator) Valuate(a Assumptions) (*ValuationResult, error) {
	return c.ValuateWithSource(a, c.src)
}

// ValuateWithSource is Valuate with an explicit random source, for callers
// that need concurrent invocations to stay independent and reproducible.
func (c *Calculator) ValuateWithSource(a Assumptions, src rand.Source) (*ValuationResult, error) {
	resolved, err := normalizeAssumptions(a)
	if err != nil {
		return nil, err
	}

	bridge := CapitalBridge{}
	if a.Bridge != nil {
		bridge = *a.Bridge
	}

	base := computeBaseCase(resolved, bridge)
	perShare, sample := runMonteCarlo(resolved, bridge, a.MonteCarloRuns, src)
	if len(sample) > 10 {
		sample = sample[:10]
	}

	result := &ValuationResult{
		ID:              uuid.New().String(),
		BaseCase:        base,
		MonteCarlo:      summarize(perShare),
		Diagnostics:     computeDiagnostics(base, resolved.WACC, resolved.TerminalGrowth),
		Assumptions:     resolved,
		SampleScenarios: sample,
	}

	c.log.Debug().
		Str("id", result.ID).
		Int("runs", a.MonteCarloRuns).
		Float64("per_share", base.EquityValuePerShare).
		Int("health_flags", len(result.Diagnostics.HealthFlags)).
		Msg("Valuation complete")

	return result, nil
}
