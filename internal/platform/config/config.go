// Package config loads application configuration from environment variables.
// All variables use the OJALA_ prefix. A .env file in the working directory
// is loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Data     DataConfig
	Session  SessionConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL runs
// the server with in-memory card stores only.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings for practice-session state.
// An empty URL disables the cache.
type CacheConfig struct {
	URL        string
	SessionTTL time.Duration
}

// AuthConfig holds API authentication settings. KeyHash is the bcrypt hash
// of the accepted API key; empty disables authentication.
type AuthConfig struct {
	KeyHash string
}

// DataConfig points at the on-disk grammar datasets that extend the
// built-in tables.
type DataConfig struct {
	VerbsDir     string
	TemplatesDir string
}

// SessionConfig holds live practice session settings.
type SessionConfig struct {
	ExerciseBatch int
	WriteTimeout  time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with OJALA_ prefix.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("OJALA_SERVER_PORT", 8080),
			Host:            envStr("OJALA_SERVER_HOST", "0.0.0.0"),
			ShutdownTimeout: envDuration("OJALA_SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:      envStr("OJALA_DATABASE_URL", ""),
			MaxConns: envInt("OJALA_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("OJALA_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:        envStr("OJALA_CACHE_URL", ""),
			SessionTTL: envDuration("OJALA_CACHE_SESSION_TTL", 30*time.Minute),
		},
		Auth: AuthConfig{
			KeyHash: envStr("OJALA_AUTH_KEY_HASH", ""),
		},
		Data: DataConfig{
			VerbsDir:     envStr("OJALA_DATA_VERBS_DIR", ""),
			TemplatesDir: envStr("OJALA_DATA_TEMPLATES_DIR", ""),
		},
		Session: SessionConfig{
			ExerciseBatch: envInt("OJALA_SESSION_EXERCISE_BATCH", 10),
			WriteTimeout:  envDuration("OJALA_SESSION_WRITE_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:  envStr("OJALA_LOG_LEVEL", "info"),
			Format: envStr("OJALA_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("OJALA_SERVER_PORT must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("OJALA_DATABASE_MIN_CONNS (%d) exceeds OJALA_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Session.ExerciseBatch < 1 {
		return fmt.Errorf("OJALA_SESSION_EXERCISE_BATCH must be positive, got %d", c.Session.ExerciseBatch)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("OJALA_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
