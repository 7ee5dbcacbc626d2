package valuation

// CalculateValuationMetrics relates a DCF per-share price to the market's
// current pricing. It returns ok=false when no FCF history is available to
// compute cash-flow based ratios.
func (c *Calculator) CalculateValuationMetrics(currentPrice, dcfPrice, marketCap float64, fcfHistory []float64) (ValuationMetrics, bool) {
	if len(fcfHistory) == 0 {
		return ValuationMetrics{}, false
	}
	currentFCF := pickBaseFCF(fcfHistory)

	m := ValuationMetrics{
		DCFVsCurrent:           (dcfPrice - currentPrice) / currentPrice,
		UpsideDownsideMultiple: dcfPrice / currentPrice,
	}
	if marketCap > 0 {
		m.FCFYield = currentFCF / marketCap
	}
	if currentFCF > 0 {
		m.PriceToFCF = currentPrice / (currentFCF / 1e9)
	}
	return m, true
}
