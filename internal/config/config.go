package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	GoogleAPIKey         string
	GeminiModel          string
	YouTubeAPIKey        string
	GenerateTimeoutSec   int
	DiscoveryWorkerCount int
	DiscoveryQueueSize   int
	VideoMaxResults      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:focuslearner.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:          envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		YouTubeAPIKey:        os.Getenv("YOUTUBE_API_KEY"),
		GenerateTimeoutSec:   envIntOr("GENERATE_TIMEOUT_SEC", 20),
		DiscoveryWorkerCount: envIntOr("DISCOVERY_WORKER_COUNT", 2),
		DiscoveryQueueSize:   envIntOr("DISCOVERY_QUEUE_SIZE", 32),
		VideoMaxResults:      envIntOr("VIDEO_MAX_RESULTS", 10),
	}
}

// Validate checks the configuration for values the server cannot run with.
// Missing API keys are not errors: both providers degrade to static content.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.GenerateTimeoutSec <= 0 {
		return fmt.Errorf("GENERATE_TIMEOUT_SEC must be positive, got %d", c.GenerateTimeoutSec)
	}
	if c.DiscoveryWorkerCount <= 0 {
		return fmt.Errorf("DISCOVERY_WORKER_COUNT must be positive, got %d", c.DiscoveryWorkerCount)
	}
	if c.VideoMaxResults <= 0 || c.VideoMaxResults > 50 {
		return fmt.Errorf("VIDEO_MAX_RESULTS must be between 1 and 50, got %d", c.VideoMaxResults)
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
