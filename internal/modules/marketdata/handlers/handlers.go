// Package handlers provides HTTP handlers for market data operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/camejiaf/finsense/internal/modules/marketdata"
)

// Handler handles market data HTTP requests
type Handler struct {
	provider *marketdata.DemoProvider
	log      zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(provider *marketdata.DemoProvider, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log.With().Str("handler", "marketdata").Logger(),
	}
}

// HandleGetStock handles GET /api/stocks/{ticker}
func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	stock, err := h.provider.GetStockData(ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to get stock data")
		http.Error(w, "Failed to get stock data", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": stock,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"source":    "demo",
		},
	})
}

// HandleGetIndicators handles GET /api/stocks/{ticker}/indicators
func (h *Handler) HandleGetIndicators(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	stock, err := h.provider.GetStockData(ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to get stock data")
		http.Error(w, "Failed to get stock data", http.StatusBadRequest)
		return
	}

	indicators, err := marketdata.ComputeIndicators(stock.PriceHistory)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to compute indicators")
		http.Error(w, "Insufficient price history for indicators", http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": indicators,
		"metadata": map[string]interface{}{
			"ticker":    stock.Ticker,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListTickers handles GET /api/tickers
func (h *Handler) HandleListTickers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.provider.PopularTickers(),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
