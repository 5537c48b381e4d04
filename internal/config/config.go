// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PAGESMITH_DB_PATH" envDefault:"./data/pagesmith.db"`
	SessionSecret string `env:"PAGESMITH_SESSION_SECRET,required"`
	ServerHost    string `env:"PAGESMITH_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PAGESMITH_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PAGESMITH_ENV" envDefault:"development"`
	LogLevel      string `env:"PAGESMITH_LOG_LEVEL" envDefault:"info"`

	// Storage backend
	StoreDriver   string `env:"PAGESMITH_STORE_DRIVER" envDefault:"sqlite"` // sqlite, memory or mongo
	MongoURI      string `env:"PAGESMITH_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"PAGESMITH_MONGO_DATABASE" envDefault:"pagesmith"`

	// Cache configuration
	RedisURL     string `env:"PAGESMITH_REDIS_URL"`                            // Optional Redis URL for distributed caching
	CachePrefix  string `env:"PAGESMITH_CACHE_PREFIX" envDefault:"pagesmith:"` // Redis key prefix
	CacheTTL     int    `env:"PAGESMITH_CACHE_TTL" envDefault:"3600"`          // Default cache TTL in seconds
	CacheMaxSize int    `env:"PAGESMITH_CACHE_MAX_SIZE" envDefault:"10000"`    // Max memory cache entries

	// Editor sessions
	HistoryLimit int           `env:"PAGESMITH_HISTORY_LIMIT" envDefault:"100"`
	SessionIdle  time.Duration `env:"PAGESMITH_SESSION_IDLE" envDefault:"30m"`

	// Event log
	EventRetentionDays int `env:"PAGESMITH_EVENT_RETENTION_DAYS" envDefault:"30"`

	// Published site
	SiteName string `env:"PAGESMITH_SITE_NAME" envDefault:"Pagesmith"`
	SiteURL  string `env:"PAGESMITH_SITE_URL"`

	// Seeding configuration
	DoSeed bool `env:"PAGESMITH_DO_SEED" envDefault:"false"` // Seed the demo page into an empty store

	// DemoMode wipes all pages and restores the demo page every 24 hours
	DemoMode bool `env:"PAGESMITH_DEMO_MODE" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UsesSQLite reports whether pages, events and sessions live in SQLite.
func (c Config) UsesSQLite() bool {
	return c.StoreDriver == StoreSQLite
}

// DataDir returns the directory holding the SQLite database.
func (c Config) DataDir() string {
	return filepath.Dir(c.DBPath)
}

// EventRetention returns how long event log entries are kept.
func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PAGESMITH_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PAGESMITH_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PAGESMITH_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch cfg.StoreDriver {
	case StoreSQLite, StoreMemory, StoreMongo:
	default:
		return nil, fmt.Errorf("PAGESMITH_STORE_DRIVER must be one of %s, %s or %s, got %q",
			StoreSQLite, StoreMemory, StoreMongo, cfg.StoreDriver)
	}

	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("PAGESMITH_HISTORY_LIMIT must not be negative, got %d", cfg.HistoryLimit)
	}
	if cfg.SessionIdle <= 0 {
		return nil, fmt.Errorf("PAGESMITH_SESSION_IDLE must be positive, got %s", cfg.SessionIdle)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
