package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Host string
	Port int

	DatabaseURL string

	AlphaVantageAPIKey string
	QuoteCacheTTL      time.Duration

	StartingCash decimal.Decimal

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the configuration used when nothing is set:
// in-memory storage, demo quote data and a text logger.
func DefaultConfig() Config {
	return Config{
		Host:          "0.0.0.0",
		Port:          8080,
		QuoteCacheTTL: 5 * time.Minute,
		StartingCash:  decimal.NewFromInt(100000),
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load builds the configuration from defaults, an optional .env file and
// the process environment, in that order.
func Load() Config {
	cfg := DefaultConfig()

	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg.loadFromEnv()
	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("HOST"); val != "" {
		c.Host = val
	}
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Port = port
		}
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
	}
	if val := os.Getenv("ALPHA_VANTAGE_API_KEY"); val != "" {
		c.AlphaVantageAPIKey = val
	}
	if val := os.Getenv("QUOTE_CACHE_TTL"); val != "" {
		if ttl, err := time.ParseDuration(val); err == nil && ttl > 0 {
			c.QuoteCacheTTL = ttl
		}
	}
	if val := os.Getenv("STARTING_CASH"); val != "" {
		if cash, err := decimal.NewFromString(val); err == nil && cash.IsPositive() {
			c.StartingCash = cash
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.LogFormat = val
	}
}
