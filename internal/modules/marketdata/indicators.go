package marketdata

import (
	"fmt"

	talib "github.com/markcheno/go-talib"
)

// Standard indicator periods.
const (
	smaShortPeriod = 20
	smaLongPeriod  = 50
	rsiPeriod      = 14
	macdFast       = 12
	macdSlow       = 26
	macdSignal     = 9
)

// minIndicatorHistory is the number of closes needed for the slowest
// indicator (SMA-50) to produce a value.
const minIndicatorHistory = smaLongPeriod

// ComputeIndicators derives the standard technical indicators from a daily
// close series (chronological, last element most recent).
func ComputeIndicators(closes []float64) (TechnicalIndicators, error) {
	if len(closes) < minIndicatorHistory {
		return TechnicalIndicators{}, fmt.Errorf("need at least %d closes, got %d", minIndicatorHistory, len(closes))
	}

	sma20 := talib.Sma(closes, smaShortPeriod)
	sma50 := talib.Sma(closes, smaLongPeriod)
	rsi := talib.Rsi(closes, rsiPeriod)
	macd, signal, hist := talib.Macd(closes, macdFast, macdSlow, macdSignal)

	last := len(closes) - 1
	return TechnicalIndicators{
		SMA20:      sma20[last],
		SMA50:      sma50[last],
		RSI14:      rsi[last],
		MACD:       macd[last],
		MACDSignal: signal[last],
		MACDHist:   hist[last],
	}, nil
}
