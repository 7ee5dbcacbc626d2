// Package main is the entry point for the FinSense valuation service. It
// exposes the discounted cash flow engine (deterministic base case, Monte
// Carlo distribution, diagnostics) over a small HTTP API, together with a
// demo market data provider so the service is usable without live feeds.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camejiaf/finsense/internal/config"
	"github.com/camejiaf/finsense/internal/modules/marketdata"
	"github.com/camejiaf/finsense/internal/modules/valuation"
	"github.com/camejiaf/finsense/internal/server"
	"github.com/camejiaf/finsense/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting FinSense")

	calculator := valuation.NewCalculator(valuation.CalculatorConfig{
		RiskFreeRate:      cfg.RiskFreeRate,
		MarketRiskPremium: cfg.MarketRiskPremium,
		DefaultBeta:       cfg.DefaultBeta,
		Seed:              cfg.Seed,
	}, log)
	provider := marketdata.NewDemoProvider(log)

	srv := server.New(server.Config{
		Log:        log,
		Config:     cfg,
		Calculator: calculator,
		Provider:   provider,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}

	log.Info().Msg("FinSense stopped")
}
