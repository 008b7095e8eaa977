// Package config loads runtime configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the resolved runtime configuration.
type Config struct {
	// DBPath is the SQLite file holding the document slot.
	DBPath string

	// HSNBaseURL is the rate lookup endpoint.
	HSNBaseURL string

	// HSNTimeout bounds a single rate lookup.
	HSNTimeout time.Duration

	// LowStockThreshold flags products on the dashboard.
	LowStockThreshold int
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win.
func Load() Config {
	_ = godotenv.Load() // Missing .env is fine.

	return Config{
		DBPath:            envString("KHATA_DB", "khata.db"),
		HSNBaseURL:        envString("KHATA_HSN_BASE_URL", ""),
		HSNTimeout:        time.Duration(envInt("KHATA_HSN_TIMEOUT_SECONDS", 10)) * time.Second,
		LowStockThreshold: envInt("KHATA_LOW_STOCK", 5),
	}
}

// envString reads a string env var with a default fallback.
func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
