// Package marketdata supplies company fundamentals and quotes to the
// valuation engine. The current implementation is a deterministic demo
// provider; a live feed can replace it behind the same interface.
package marketdata

// StockData is the bundle of fundamentals the valuation engine consumes.
// FCFHistory is chronological, last element most recent.
type StockData struct {
	Ticker            string    `json:"ticker"`
	CompanyName       string    `json:"company_name"`
	Sector            string    `json:"sector"`
	Industry          string    `json:"industry"`
	CurrentPrice      float64   `json:"current_price"`
	MarketCap         float64   `json:"market_cap"`
	SharesOutstanding float64   `json:"shares_outstanding"`
	FCFHistory        []float64 `json:"fcf_history"`
	GrowthRate        float64   `json:"fcf_growth_rate"`
	PriceHistory      []float64 `json:"price_history"`
}

// TickerInfo is a lightweight listing entry for the popular-tickers endpoint.
type TickerInfo struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
}

// TechnicalIndicators holds the most recent values of the standard momentum
// and trend indicators computed from daily closes.
type TechnicalIndicators struct {
	SMA20      float64 `json:"sma_20"`
	SMA50      float64 `json:"sma_50"`
	RSI14      float64 `json:"rsi_14"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	MACDHist   float64 `json:"macd_histogram"`
}
