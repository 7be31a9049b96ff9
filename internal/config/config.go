package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	CatalogPath       string
	LogLevel          string
	RoundSize         int
	NewItemBonus      float64
	ErrorWeight       float64
	RecentWindowHours float64
	RecentMinFactor   float64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:wortflash.db"),
		CatalogPath:       envOr("CATALOG_PATH", ""),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		RoundSize:         envIntOr("ROUND_SIZE", 10),
		NewItemBonus:      envFloatOr("NEW_ITEM_BONUS", 2.5),
		ErrorWeight:       envFloatOr("ERROR_WEIGHT", 3.0),
		RecentWindowHours: envFloatOr("RECENT_WINDOW_HOURS", 6),
		RecentMinFactor:   envFloatOr("RECENT_MIN_FACTOR", 0.2),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.RoundSize < 1 {
		problems = append(problems, "ROUND_SIZE must be at least 1")
	}
	if c.NewItemBonus < 1 {
		problems = append(problems, "NEW_ITEM_BONUS must be at least 1")
	}
	if c.ErrorWeight < 0 {
		problems = append(problems, "ERROR_WEIGHT cannot be negative")
	}
	if c.RecentWindowHours <= 0 {
		problems = append(problems, "RECENT_WINDOW_HOURS must be positive")
	}
	if c.RecentMinFactor <= 0 || c.RecentMinFactor > 1 {
		problems = append(problems, "RECENT_MIN_FACTOR must be in (0,1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
