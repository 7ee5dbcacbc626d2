package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-computed reference scenario: FCF history ending at 133.1, 5% growth,
// 10% WACC, 3% terminal growth, 5 year horizon, 1000 shares, no bridge.
func scenarioA(t *testing.T) ResolvedAssumptions {
	t.Helper()
	resolved, err := normalizeAssumptions(validAssumptions())
	require.NoError(t, err)
	return resolved
}

func TestComputeBaseCase_ReferenceScenario(t *testing.T) {
	base := computeBaseCase(scenarioA(t), CapitalBridge{})

	assert.InEpsilon(t, 580.12, base.PVExplicitPeriod, 0.005)
	assert.InEpsilon(t, 2499.56, base.TerminalValueGordon, 0.005)
	assert.InEpsilon(t, 1552.35, base.PVTerminalValue, 0.005)
	assert.InEpsilon(t, 2132.47, base.EnterpriseValue, 0.005)
	assert.InEpsilon(t, 2.13, base.EquityValuePerShare, 0.005)

	require.Len(t, base.FCFProjections, 5)
	require.Len(t, base.PVFCFProjections, 5)
	assert.InDelta(t, 133.1*1.05, base.FCFProjections[0], 1e-9)
	assert.InDelta(t, base.FCFProjections[4], base.TerminalFCFYear, 1e-9)
	assert.Equal(t, 1000.0, base.SharesEndYear)

	// No bridge adjustments: equity equals enterprise value.
	assert.Equal(t, base.EnterpriseValue, base.EquityValue)
}

func TestComputeBaseCase_CapitalBridge(t *testing.T) {
	bridge := CapitalBridge{
		NetDebt:            500,
		NonOperatingAssets: 120,
		MinorityInterest:   30,
		OtherAdjustments:   10,
	}
	a := scenarioA(t)

	base := computeBaseCase(a, bridge)
	noBridge := computeBaseCase(a, CapitalBridge{})

	assert.InDelta(t, noBridge.EnterpriseValue-500+120-30+10, base.EquityValue, 1e-9)
	// The bridge moves equity, not enterprise value.
	assert.Equal(t, noBridge.EnterpriseValue, base.EnterpriseValue)
}

func TestComputeBaseCase_ShareDilution(t *testing.T) {
	a := scenarioA(t)
	a.AnnualShareChange = 0.02

	base := computeBaseCase(a, CapitalBridge{})
	assert.InDelta(t, 1000*math.Pow(1.02, 5), base.SharesEndYear, 1e-9)
	assert.InDelta(t, base.EquityValue/base.SharesEndYear, base.EquityValuePerShare, 1e-12)
}

func TestComputeBaseCase_NonPositiveSharesYieldNaN(t *testing.T) {
	a := scenarioA(t)
	a.SharesOutstandingStart = 0

	base := computeBaseCase(a, CapitalBridge{})
	assert.True(t, math.IsNaN(base.EquityValuePerShare))
	// Everything upstream of the per-share division stays finite.
	assert.False(t, math.IsNaN(base.EnterpriseValue))
}

func TestTerminalValue_ClipsDegenerateInput(t *testing.T) {
	// Raw callers bypassing normalization must still get a finite value.
	tv := terminalValue(100, 0.05, 0.08)
	assert.False(t, math.IsNaN(tv))
	assert.False(t, math.IsInf(tv, 0))

	// Clipped terminal growth sits just under WACC, so the perpetuity is huge
	// but finite.
	assert.Greater(t, tv, 0.0)
}

func TestProjectFCF_CompoundsFromBase(t *testing.T) {
	fcf := projectFCF(100, 0.10, 3)
	require.Len(t, fcf, 3)
	assert.InDelta(t, 110, fcf[0], 1e-9)
	assert.InDelta(t, 121, fcf[1], 1e-9)
	assert.InDelta(t, 133.1, fcf[2], 1e-9)
}

func TestPresentValues_DiscountsPerYear(t *testing.T) {
	pv := presentValues([]float64{110, 121}, 0.10)
	require.Len(t, pv, 2)
	assert.InDelta(t, 100, pv[0], 1e-9)
	assert.InDelta(t, 100, pv[1], 1e-9)
}
