package marketdata

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"
)

// Years of annual FCF history and days of price history the demo provider
// generates.
const (
	demoFCFYears   = 6
	demoPriceDays  = 252
	demoDailyDrift = 0.0003
	demoDailyVol   = 0.018
)

// demoCompany is the static profile a demo ticker is generated from.
type demoCompany struct {
	Name     string
	Sector   string
	Industry string
	Price    float64
	Shares   float64 // shares outstanding
	FCF      float64 // most recent annual free cash flow
	Growth   float64 // underlying FCF growth trend
}

// demoUniverse covers a handful of well-known large caps so the API is usable
// without a live data feed.
var demoUniverse = map[string]demoCompany{
	"AAPL":  {"Apple Inc.", "Technology", "Consumer Electronics", 185.0, 15.5e9, 99.6e9, 0.06},
	"MSFT":  {"Microsoft Corporation", "Technology", "Software", 410.0, 7.43e9, 63.3e9, 0.09},
	"GOOGL": {"Alphabet Inc.", "Technology", "Internet Services", 150.0, 12.3e9, 69.5e9, 0.08},
	"AMZN":  {"Amazon.com Inc.", "Consumer Cyclical", "E-Commerce", 175.0, 10.4e9, 32.2e9, 0.12},
	"NVDA":  {"NVIDIA Corporation", "Technology", "Semiconductors", 880.0, 2.46e9, 27.0e9, 0.20},
	"TSLA":  {"Tesla Inc.", "Consumer Cyclical", "Auto Manufacturers", 175.0, 3.19e9, 4.4e9, 0.15},
	"META":  {"Meta Platforms Inc.", "Technology", "Social Media", 480.0, 2.55e9, 43.0e9, 0.10},
	"JPM":   {"JPMorgan Chase & Co.", "Financial Services", "Banks", 195.0, 2.88e9, 25.0e9, 0.04},
	"JNJ":   {"Johnson & Johnson", "Healthcare", "Pharmaceuticals", 155.0, 2.41e9, 18.2e9, 0.03},
	"XOM":   {"Exxon Mobil Corporation", "Energy", "Oil & Gas", 115.0, 3.96e9, 33.4e9, 0.02},
}

// DemoProvider generates deterministic demo fundamentals per ticker. The same
// ticker always yields the same data: each ticker seeds its own generator, so
// provider calls are reproducible and safe for concurrent use.
type DemoProvider struct {
	log zerolog.Logger
}

// NewDemoProvider creates a demo market data provider.
func NewDemoProvider(log zerolog.Logger) *DemoProvider {
	return &DemoProvider{
		log: log.With().Str("component", "demo_provider").Logger(),
	}
}

// tickerSource derives a stable random source from a ticker symbol.
func tickerSource(ticker string) rand.Source {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	seed := h.Sum64()
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// GetStockData returns the demo fundamentals for ticker. Unknown tickers get
// a generic synthetic profile so any symbol can be analyzed.
func (p *DemoProvider) GetStockData(ticker string) (StockData, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return StockData{}, fmt.Errorf("empty ticker")
	}

	src := tickerSource(ticker)
	rng := rand.New(src)

	profile, known := demoUniverse[ticker]
	if !known {
		// Generic mid-cap profile derived from the ticker's own stream.
		profile = demoCompany{
			Name:     ticker + " Corp.",
			Sector:   "Industrials",
			Industry: "Diversified",
			Price:    20 + rng.Float64()*180,
			Shares:   (0.1 + rng.Float64()*9.9) * 1e9,
			FCF:      (0.5 + rng.Float64()*19.5) * 1e9,
			Growth:   0.02 + rng.Float64()*0.13,
		}
		p.log.Debug().Str("ticker", ticker).Msg("Unknown ticker, generating synthetic profile")
	}

	fcfHistory := p.generateFCFHistory(rng, profile)
	priceHistory := p.generatePriceHistory(rng, profile.Price)

	return StockData{
		Ticker:            ticker,
		CompanyName:       profile.Name,
		Sector:            profile.Sector,
		Industry:          profile.Industry,
		CurrentPrice:      profile.Price,
		MarketCap:         profile.Price * profile.Shares,
		SharesOutstanding: profile.Shares,
		FCFHistory:        fcfHistory,
		GrowthRate:        EstimateGrowthRate(fcfHistory),
		PriceHistory:      priceHistory,
	}, nil
}

// generateFCFHistory walks the trend growth backwards from the most recent
// annual FCF and adds mild noise, so the history is consistent with the
// profile's growth rate.
func (p *DemoProvider) generateFCFHistory(rng *rand.Rand, profile demoCompany) []float64 {
	history := make([]float64, demoFCFYears)
	fcf := profile.FCF
	for i := demoFCFYears - 1; i >= 0; i-- {
		noise := 1 + (rng.Float64()-0.5)*0.08
		history[i] = fcf * noise
		fcf /= 1 + profile.Growth
	}
	return history
}

// generatePriceHistory produces a geometric random walk ending at the current
// price.
func (p *DemoProvider) generatePriceHistory(rng *rand.Rand, endPrice float64) []float64 {
	history := make([]float64, demoPriceDays)
	// Walk forward from an arbitrary start, then rescale so the series ends
	// at the current price.
	price := endPrice
	for i := 0; i < demoPriceDays; i++ {
		price *= math.Exp(demoDailyDrift + demoDailyVol*rng.NormFloat64())
		history[i] = price
	}
	scale := endPrice / history[demoPriceDays-1]
	for i := range history {
		history[i] *= scale
	}
	return history
}

// PopularTickers lists the built-in demo universe.
func (p *DemoProvider) PopularTickers() []TickerInfo {
	// Fixed order keeps the endpoint stable for clients.
	order := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META", "JPM", "JNJ", "XOM"}
	out := make([]TickerInfo, 0, len(order))
	for _, t := range order {
		c := demoUniverse[t]
		out = append(out, TickerInfo{Ticker: t, CompanyName: c.Name, Sector: c.Sector})
	}
	return out
}
