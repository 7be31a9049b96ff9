package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wortflash/wortflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		RoundSize:         10,
		NewItemBonus:      2.5,
		ErrorWeight:       3.0,
		RecentWindowHours: 6,
		RecentMinFactor:   0.2,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		ok    bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true}, // case-insensitive
		{"INVALID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_WeightParams(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "round size zero",
			mutate:        func(c *config.Config) { c.RoundSize = 0 },
			expectedError: "ROUND_SIZE",
		},
		{
			name:          "new item bonus below one",
			mutate:        func(c *config.Config) { c.NewItemBonus = 0.5 },
			expectedError: "NEW_ITEM_BONUS",
		},
		{
			name:          "negative error weight",
			mutate:        func(c *config.Config) { c.ErrorWeight = -1 },
			expectedError: "ERROR_WEIGHT",
		},
		{
			name:          "zero recency window",
			mutate:        func(c *config.Config) { c.RecentWindowHours = 0 },
			expectedError: "RECENT_WINDOW_HOURS",
		},
		{
			name:          "recency floor above one",
			mutate:        func(c *config.Config) { c.RecentMinFactor = 1.5 },
			expectedError: "RECENT_MIN_FACTOR",
		},
		{
			name:          "recency floor zero",
			mutate:        func(c *config.Config) { c.RecentMinFactor = 0 },
			expectedError: "RECENT_MIN_FACTOR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ROUND_SIZE")
	assert.Contains(t, errStr, "RECENT_WINDOW_HOURS")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "ROUND_SIZE", "NEW_ITEM_BONUS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:wortflash.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.RoundSize)
	assert.Equal(t, 2.5, cfg.NewItemBonus)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("ROUND_SIZE", "20")
	t.Setenv("RECENT_MIN_FACTOR", "0.5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.RoundSize)
	assert.Equal(t, 0.5, cfg.RecentMinFactor)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ROUND_SIZE", "not-a-number")
	t.Setenv("ERROR_WEIGHT", "nope")

	cfg := config.Load()

	assert.Equal(t, 10, cfg.RoundSize)
	assert.Equal(t, 3.0, cfg.ErrorWeight)
}
