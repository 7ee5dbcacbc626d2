package valuation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func testCalculator(seed uint64) *Calculator {
	cfg := DefaultCalculatorConfig()
	cfg.Seed = &seed
	return NewCalculator(cfg, zerolog.Nop())
}

func TestCalculateWACC_HandComputed(t *testing.T) {
	calc := testCalculator(1)

	rf := 0.04
	mrp := 0.05
	res := calc.CalculateWACC(WACCInput{
		Beta:              1.2,
		RiskFreeRate:      &rf,
		MarketRiskPremium: &mrp,
		CostOfDebt:        0.06,
		TaxRate:           0.25,
		DebtToEquity:      0.5,
	})

	// cost of equity = 0.04 + 1.2*0.05 = 0.10
	assert.InDelta(t, 0.10, res.CostOfEquity, 1e-12)
	// after-tax cost of debt = 0.06 * 0.75 = 0.045
	assert.InDelta(t, 0.045, res.AfterTaxCostOfDebt, 1e-12)
	// weights from D/E = 0.5: equity 2/3, debt 1/3
	assert.InDelta(t, 2.0/3.0, res.WeightEquity, 1e-12)
	assert.InDelta(t, 1.0/3.0, res.WeightDebt, 1e-12)
	// WACC = 2/3*0.10 + 1/3*0.045
	assert.InDelta(t, 2.0/3.0*0.10+1.0/3.0*0.045, res.WACC, 1e-12)
}

func TestCalculateWACC_UsesConfiguredDefaults(t *testing.T) {
	calc := testCalculator(1)

	res := calc.CalculateWACC(WACCInput{
		Beta:         1.0,
		CostOfDebt:   0.05,
		TaxRate:      0.25,
		DebtToEquity: 0.3,
	})

	// Defaults: rf 0.045, mrp 0.06 -> cost of equity 0.105.
	assert.InDelta(t, 0.105, res.CostOfEquity, 1e-12)
	assert.InDelta(t, 1.0/1.3*0.105+0.3/1.3*0.0375, res.WACC, 1e-12)
}

func TestCalculateWACC_ZeroLeverage(t *testing.T) {
	calc := testCalculator(1)

	res := calc.CalculateWACC(WACCInput{
		Beta:       1.0,
		CostOfDebt: 0.05,
		TaxRate:    0.25,
	})

	assert.Equal(t, 1.0, res.WeightEquity)
	assert.Equal(t, 0.0, res.WeightDebt)
	assert.Equal(t, res.CostOfEquity, res.WACC)
}

func TestCalculateValuationMetrics(t *testing.T) {
	calc := testCalculator(1)

	m, ok := calc.CalculateValuationMetrics(100, 130, 2e12, []float64{90e9, 100e9})
	assert.True(t, ok)
	assert.InDelta(t, 0.30, m.DCFVsCurrent, 1e-12)
	assert.InDelta(t, 1.30, m.UpsideDownsideMultiple, 1e-12)
	assert.InDelta(t, 100e9/2e12, m.FCFYield, 1e-15)
	assert.InDelta(t, 100/(100e9/1e9), m.PriceToFCF, 1e-12)

	_, ok = calc.CalculateValuationMetrics(100, 130, 2e12, nil)
	assert.False(t, ok, "no FCF history means no metrics")
}
