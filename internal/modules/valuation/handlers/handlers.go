// Package handlers provides HTTP handlers for valuation operations.
package handlers

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/camejiaf/finsense/internal/modules/marketdata"
	"github.com/camejiaf/finsense/internal/modules/valuation"
)

// StockDataProvider supplies fundamentals for the analyze endpoint.
type StockDataProvider interface {
	GetStockData(ticker string) (marketdata.StockData, error)
}

// Handler handles valuation HTTP requests
type Handler struct {
	calc     *valuation.Calculator
	provider StockDataProvider
	log      zerolog.Logger
}

// NewHandler creates a new valuation handler
func NewHandler(calc *valuation.Calculator, provider StockDataProvider, log zerolog.Logger) *Handler {
	return &Handler{
		calc:     calc,
		provider: provider,
		log:      log.With().Str("handler", "valuation").Logger(),
	}
}

// valuationRequest is the POST body for a valuation run: the engine
// assumptions plus an optional seed for reproducible Monte Carlo output.
type valuationRequest struct {
	valuation.Assumptions
	Seed *uint64 `json:"seed,omitempty"`
}

// requestSource builds the per-request random source. Each HTTP request gets
// its own source so concurrent valuations stay independent, and a seeded
// request is reproducible.
func requestSource(seed *uint64) rand.Source {
	if seed != nil {
		return rand.NewPCG(*seed, *seed)
	}
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}

// HandleCreateValuation handles POST /api/valuations
func (h *Handler) HandleCreateValuation(w http.ResponseWriter, r *http.Request) {
	req := valuationRequest{Assumptions: valuation.DefaultAssumptions()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := h.calc.ValuateWithSource(req.Assumptions, requestSource(req.Seed))
	if err != nil {
		h.writeValuationError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(result))
}

// HandleAnalyzeTicker handles POST /api/analyze/{ticker}: fetches the
// company's fundamentals and runs the engine on them. Caller-supplied
// assumptions override the fetched values; anything omitted falls back to the
// data provider's estimates.
func (h *Handler) HandleAnalyzeTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	stock, err := h.provider.GetStockData(ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to get stock data")
		http.Error(w, "Failed to get stock data", http.StatusBadGateway)
		return
	}

	req := valuationRequest{Assumptions: valuation.DefaultAssumptions()}
	req.FCFHistory = stock.FCFHistory
	req.GrowthRate = stock.GrowthRate
	req.SharesOutstanding = stock.SharesOutstanding
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
	}

	result, err := h.calc.ValuateWithSource(req.Assumptions, requestSource(req.Seed))
	if err != nil {
		h.writeValuationError(w, err)
		return
	}

	response := map[string]interface{}{
		"ticker":        stock.Ticker,
		"company_name":  stock.CompanyName,
		"current_price": stock.CurrentPrice,
		"dcf_results":   result,
	}
	if metrics, ok := h.calc.CalculateValuationMetrics(
		stock.CurrentPrice,
		result.BaseCase.EquityValuePerShare,
		stock.MarketCap,
		stock.FCFHistory,
	); ok {
		response["valuation_metrics"] = metrics
	}

	h.writeJSON(w, http.StatusOK, envelope(response))
}

// HandleCalculateWACC handles POST /api/wacc
func (h *Handler) HandleCalculateWACC(w http.ResponseWriter, r *http.Request) {
	in := valuation.WACCInput{
		Beta:         h.calc.DefaultBeta(),
		CostOfDebt:   0.05,
		TaxRate:      0.25,
		DebtToEquity: 0.3,
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(h.calc.CalculateWACC(in)))
}

// writeValuationError maps engine errors to HTTP responses: validation
// failures are client errors with a stable code, anything else is a 500.
func (h *Handler) writeValuationError(w http.ResponseWriter, err error) {
	var ve *valuation.ValidationError
	if errors.As(err, &ve) {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": ve.Message,
			"code":  ve.Code,
		})
		return
	}
	h.log.Error().Err(err).Msg("Valuation failed")
	http.Error(w, "Valuation failed", http.StatusInternalServerError)
}

// envelope wraps response data with metadata, matching the API's envelope
// convention.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
