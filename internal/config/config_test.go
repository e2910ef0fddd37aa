package config_test

import (
	"os"
	"testing"

	"github.com/focuslearner/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		GenerateTimeoutSec:   20,
		DiscoveryWorkerCount: 2,
		DiscoveryQueueSize:   32,
		VideoMaxResults:      10,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
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

func TestValidate_InvalidGenerateTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout int
	}{
		{name: "zero timeout", timeout: 0},
		{name: "negative timeout", timeout: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.GenerateTimeoutSec = tt.timeout

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "GENERATE_TIMEOUT_SEC")
		})
	}
}

func TestValidate_InvalidVideoMaxResults(t *testing.T) {
	tests := []struct {
		name string
		max  int
	}{
		{name: "zero", max: 0},
		{name: "too large", max: 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.VideoMaxResults = tt.max

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "VIDEO_MAX_RESULTS")
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "GOOGLE_API_KEY", "YOUTUBE_API_KEY",
		"GENERATE_TIMEOUT_SEC", "DISCOVERY_WORKER_COUNT", "DISCOVERY_QUEUE_SIZE",
		"VIDEO_MAX_RESULTS", "GEMINI_MODEL",
	} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:focuslearner.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.GenerateTimeoutSec)
	assert.Equal(t, 2, cfg.DiscoveryWorkerCount)
	assert.Equal(t, 10, cfg.VideoMaxResults)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("VIDEO_MAX_RESULTS", "25")
	t.Setenv("GENERATE_TIMEOUT_SEC", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 25, cfg.VideoMaxResults)
	// Invalid integers fall back to the default.
	assert.Equal(t, 20, cfg.GenerateTimeoutSec)
}
