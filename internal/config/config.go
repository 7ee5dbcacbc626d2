// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port           int
	LogLevel       string
	DevMode        bool
	AllowedOrigins []string

	// Engine defaults, roughly where the market is today. Overridable per
	// deployment without a rebuild.
	RiskFreeRate      float64
	MarketRiskPremium float64
	DefaultBeta       float64

	// Seed, when set, makes every calculator-owned Monte Carlo stream
	// reproducible. Leave unset in production.
	Seed *uint64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvAsInt("FINSENSE_PORT", 8000),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		AllowedOrigins:    []string{getEnv("FINSENSE_ALLOWED_ORIGIN", "*")},
		RiskFreeRate:      getEnvAsFloat("FINSENSE_RISK_FREE_RATE", 0.045),
		MarketRiskPremium: getEnvAsFloat("FINSENSE_MARKET_RISK_PREMIUM", 0.06),
		DefaultBeta:       getEnvAsFloat("FINSENSE_DEFAULT_BETA", 1.0),
	}

	if raw := os.Getenv("FINSENSE_MC_SEED"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid FINSENSE_MC_SEED: %w", err)
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value with a fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer with a fallback
func getEnvAsInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// getEnvAsBool retrieves an environment variable as a boolean with a fallback
func getEnvAsBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

// getEnvAsFloat retrieves an environment variable as a float with a fallback
func getEnvAsFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
