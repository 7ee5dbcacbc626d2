package valuation

// WACCInput holds the inputs to the standalone cost of capital calculation.
// RiskFreeRate and MarketRiskPremium are optional; when nil the calculator's
// configured defaults are used.
type WACCInput struct {
	Beta              float64  `json:"beta"`
	RiskFreeRate      *float64 `json:"risk_free_rate,omitempty"`
	MarketRiskPremium *float64 `json:"market_risk_premium,omitempty"`
	CostOfDebt        float64  `json:"cost_of_debt"`
	TaxRate           float64  `json:"tax_rate"`
	DebtToEquity      float64  `json:"debt_to_equity"`
}

// WACCResult breaks down the weighted average cost of capital.
type WACCResult struct {
	CostOfEquity       float64 `json:"cost_of_equity"`
	AfterTaxCostOfDebt float64 `json:"after_tax_cost_of_debt"`
	WeightEquity       float64 `json:"weight_equity"`
	WeightDebt         float64 `json:"weight_debt"`
	WACC               float64 `json:"wacc"`
}

// CalculateWACC computes the weighted average cost of capital. Cost of equity
// comes from CAPM (rf + beta * market risk premium), cost of debt is tax
// adjusted, and the weights follow from the debt-to-equity ratio.
func (c *Calculator) CalculateWACC(in WACCInput) WACCResult {
	rf := c.riskFreeRate
	if in.RiskFreeRate != nil {
		rf = *in.RiskFreeRate
	}
	mrp := c.marketRiskPremium
	if in.MarketRiskPremium != nil {
		mrp = *in.MarketRiskPremium
	}

	coe := rf + in.Beta*mrp
	afterTaxCOD := in.CostOfDebt * (1 - in.TaxRate)

	total := 1 + in.DebtToEquity
	we := 1 / total
	wd := in.DebtToEquity / total

	return WACCResult{
		CostOfEquity:       coe,
		AfterTaxCostOfDebt: afterTaxCOD,
		WeightEquity:       we,
		WeightDebt:         wd,
		WACC:               we*coe + wd*afterTaxCOD,
	}
}
