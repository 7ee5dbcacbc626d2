package valuation

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler parameters. The Student-t tails matter: realized growth and discount
// rates have fatter tails than a normal distribution suggests.
const (
	growthCoreStd   = 0.02
	growthTailScale = 0.04
	growthTailDF    = 5
	growthMin       = -0.30
	growthMax       = 0.40
	recessionGCut   = 0.03 // growth haircut applied in the recession regime

	waccCoreStd    = 0.01
	waccTailScale  = 0.02
	waccTailDF     = 6
	waccMin        = 0.05
	waccMax        = 0.20
	recessionWBump = 0.01 // risk-free rates usually rise in recessions

	tgStd = 0.003
	tgMin = 0.005
	tgMax = 0.04
	// Minimum spread kept between WACC and terminal growth in every trial.
	tgWaccGap = 1e-4

	fcfNoiseSigma    = 0.10
	recessionFCFCut  = 0.9 // 10% cash flow cut in recessions
	scenarioSampleSz = 25
)

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// runMonteCarlo generates n stochastic scenarios around the resolved
// assumptions and values each one with the same formulas as the base case.
// It returns the full per-share valuation array plus a small random sample of
// scenario details for transparency.
//
// The sampler works in staged full-array passes over flat slices, mirroring
// vectorized array math: each distribution fills its slice in one pass and the
// recession regime is applied as a conditional selection pass, never as
// per-trial procedural branching inside the valuation itself. Share count is
// deliberately not randomized; every trial uses the deterministic share path.
func runMonteCarlo(a ResolvedAssumptions, bridge CapitalBridge, n int, src rand.Source) ([]float64, []ScenarioDraw) {
	if n < 0 {
		n = 0
	}

	// Regime flag: a simple way to model different economic environments.
	recession := make([]bool, n)
	bern := distuv.Bernoulli{P: clip(a.RecessionProb, 0, 1), Src: src}
	for i := range recession {
		recession[i] = bern.Rand() > 0.5
	}

	// Growth: normal core blended with a Student-t tail.
	g := make([]float64, n)
	coreG := distuv.Normal{Mu: a.GrowthRate, Sigma: growthCoreStd, Src: src}
	tailG := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: growthTailDF, Src: src}
	for i := range g {
		core := coreG.Rand()
		tail := a.GrowthRate + growthTailScale*tailG.Rand()
		if recession[i] {
			g[i] = math.Min(core, a.GrowthRate-recessionGCut)
		} else {
			g[i] = 0.7*core + 0.3*tail
		}
		g[i] = clip(g[i], growthMin, growthMax)
	}

	// WACC: more stable than growth but still uncertain.
	w := make([]float64, n)
	coreW := distuv.Normal{Mu: a.WACC, Sigma: waccCoreStd, Src: src}
	tailW := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: waccTailDF, Src: src}
	for i := range w {
		v := 0.7*coreW.Rand() + 0.3*(a.WACC+waccTailScale*tailW.Rand())
		if recession[i] {
			v += recessionWBump
		}
		w[i] = clip(v, waccMin, waccMax)
	}

	// Terminal growth: tight around long-term GDP growth and always forced
	// below the trial's WACC, which is what guarantees a finite perpetuity in
	// every draw.
	tg := make([]float64, n)
	tgDist := distuv.Normal{Mu: a.TerminalGrowth, Sigma: tgStd, Src: src}
	for i := range tg {
		v := clip(tgDist.Rand(), tgMin, tgMax)
		tg[i] = math.Min(v, w[i]-tgWaccGap)
	}

	// Base FCF: lognormal multiplicative noise keeps cash flow positive and
	// captures the multiplicative nature of business, with a harsher cut in
	// the recession regime.
	baseDraw := make([]float64, n)
	noise := distuv.LogNormal{Mu: 0, Sigma: math.Log(1 + fcfNoiseSigma), Src: src}
	for i := range baseDraw {
		baseDraw[i] = a.BaseFCF * noise.Rand()
		if recession[i] {
			baseDraw[i] *= recessionFCFCut
		}
	}

	endShares := sharesPath(a.SharesOutstandingStart, a.AnnualShareChange, a.Years)

	// Valuation pass: explicit-period discounting plus Gordon terminal value,
	// identical arithmetic to the base case with each trial's own inputs.
	perShare := make([]float64, n)
	ev := make([]float64, n)
	equity := make([]float64, n)
	for i := 0; i < n; i++ {
		growthFactor := 1 + g[i]
		discFactor := 1 + w[i]
		fcf := baseDraw[i]
		disc := 1.0
		pvExplicit := 0.0
		for t := 0; t < a.Years; t++ {
			fcf *= growthFactor
			disc *= discFactor
			pvExplicit += fcf / disc
		}
		tv := fcf * (1 + tg[i]) / (w[i] - tg[i])
		ev[i] = pvExplicit + tv/disc
		equity[i] = ev[i] - bridge.NetDebt + bridge.NonOperatingAssets -
			bridge.MinorityInterest + bridge.OtherAdjustments
		if endShares > 0 {
			perShare[i] = equity[i] / endShares
		} else {
			perShare[i] = math.NaN()
		}
	}

	// Random sample of scenario details, drawn without replacement.
	take := scenarioSampleSz
	if n < take {
		take = n
	}
	sample := make([]ScenarioDraw, 0, take)
	idx := rand.New(src).Perm(n)[:take]
	for _, i := range idx {
		sample = append(sample, ScenarioDraw{
			BaseFCF:             baseDraw[i],
			GrowthRate:          g[i],
			WACC:                w[i],
			TerminalGrowth:      tg[i],
			EnterpriseValue:     ev[i],
			EquityValue:         equity[i],
			EquityValuePerShare: perShare[i],
			Recession:           recession[i],
		})
	}

	return perShare, sample
}
