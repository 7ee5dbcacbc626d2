// Package server provides the HTTP server and routing for FinSense.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/camejiaf/finsense/internal/config"
	"github.com/camejiaf/finsense/internal/modules/marketdata"
	marketdatahandlers "github.com/camejiaf/finsense/internal/modules/marketdata/handlers"
	"github.com/camejiaf/finsense/internal/modules/valuation"
	valuationhandlers "github.com/camejiaf/finsense/internal/modules/valuation/handlers"
)

// Config holds server configuration
type Config struct {
	Log        zerolog.Logger
	Config     *config.Config
	Calculator *valuation.Calculator
	Provider   *marketdata.DemoProvider
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg.Config,
		systemHandlers: NewSystemHandlers(cfg.Log),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	valuationHandler := valuationhandlers.NewHandler(cfg.Calculator, cfg.Provider, cfg.Log)
	marketdataHandler := marketdatahandlers.NewHandler(cfg.Provider, cfg.Log)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/valuations", valuationHandler.HandleCreateValuation)
		r.Post("/analyze/{ticker}", valuationHandler.HandleAnalyzeTicker)
		r.Post("/wacc", valuationHandler.HandleCalculateWACC)

		r.Get("/tickers", marketdataHandler.HandleListTickers)
		r.Get("/stocks/{ticker}", marketdataHandler.HandleGetStock)
		r.Get("/stocks/{ticker}/indicators", marketdataHandler.HandleGetIndicators)

		r.Get("/system/status", s.systemHandlers.HandleSystemStatus)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
