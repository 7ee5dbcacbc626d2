package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camejiaf/finsense/internal/modules/marketdata"
)

func testRouter() *chi.Mux {
	h := NewHandler(marketdata.NewDemoProvider(zerolog.Nop()), zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/api/tickers", h.HandleListTickers)
	r.Get("/api/stocks/{ticker}", h.HandleGetStock)
	r.Get("/api/stocks/{ticker}/indicators", h.HandleGetIndicators)
	return r
}

func doGet(t *testing.T, router *chi.Mux, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestHandleGetStock(t *testing.T) {
	router := testRouter()

	rec, resp := doGet(t, router, "/api/stocks/MSFT")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "MSFT", data["ticker"])
	assert.Equal(t, "Microsoft Corporation", data["company_name"])
	assert.Len(t, data["fcf_history"], 6)
	assert.Equal(t, "demo", resp["metadata"].(map[string]interface{})["source"])
}

func TestHandleGetIndicators(t *testing.T) {
	router := testRouter()

	rec, resp := doGet(t, router, "/api/stocks/AAPL/indicators")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].(map[string]interface{})
	assert.NotNil(t, data["sma_20"])
	assert.NotNil(t, data["rsi_14"])
	assert.Equal(t, "AAPL", resp["metadata"].(map[string]interface{})["ticker"])
}

func TestHandleListTickers(t *testing.T) {
	router := testRouter()

	rec, resp := doGet(t, router, "/api/tickers")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp["data"].([]interface{})
	require.Len(t, data, 10)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "AAPL", first["ticker"])
}
