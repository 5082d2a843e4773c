// Package config provides environment-driven configuration for the matching
// service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultModel           = "gemini-2.5-flash-lite"
	DefaultCacheExpiry     = 604800 * time.Second // one week
	DefaultMaxCacheEntries = 100000
	DefaultAPICallDelay    = 200 * time.Millisecond
	DefaultPort            = 8080
)

// Config holds all runtime settings. DatabaseURL is the only hard
// requirement; Redis and Workable are optional collaborators and the Gemini
// key is only needed once an uncached similarity has to be resolved.
type Config struct {
	DatabaseURL string `validate:"required"`
	RedisURL    string

	GeminiAPIKey string
	Model        string `validate:"required"`

	WorkableAPIKey    string
	WorkableSubdomain string

	CacheExpiry     time.Duration `validate:"gt=0"`
	MaxCacheEntries int           `validate:"gt=0"`
	APICallDelay    time.Duration `validate:"gte=0"`

	Port  int `validate:"gt=0,lt=65536"`
	Debug bool
	JSON  bool
}

// Load reads configuration from the environment. godotenv is expected to have
// populated the environment from .env before this is called.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("POSTGRES_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:             envOr("DEFAULT_MODEL", DefaultModel),
		WorkableAPIKey:    os.Getenv("WORKABLE_API_KEY"),
		WorkableSubdomain: envOr("WORKABLE_SUBDOMAIN", "seed-tech"),
		CacheExpiry:       DefaultCacheExpiry,
		MaxCacheEntries:   DefaultMaxCacheEntries,
		APICallDelay:      DefaultAPICallDelay,
		Port:              DefaultPort,
		Debug:             envBool("DEBUG_MODE"),
		JSON:              envBool("LOG_JSON"),
	}

	if v := os.Getenv("CACHE_EXPIRY_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_EXPIRY_SECONDS %q: %w", v, err)
		}
		cfg.CacheExpiry = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("MAX_CACHE_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_CACHE_ENTRIES %q: %w", v, err)
		}
		cfg.MaxCacheEntries = n
	}
	if v := os.Getenv("API_CALL_DELAY"); v != "" {
		// Accepts either a Go duration ("200ms") or seconds as a float ("0.2"),
		// the latter for compatibility with older deployments.
		if d, err := time.ParseDuration(v); err == nil {
			cfg.APICallDelay = d
		} else if secs, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.APICallDelay = time.Duration(secs * float64(time.Second))
		} else {
			return nil, fmt.Errorf("invalid API_CALL_DELAY %q", v)
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
