// internal/config/config.go
//
// Package config reads the server configuration from the environment.
// main loads a .env file first (godotenv), so both sources work.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Embedding providers.
const (
	ProviderHash   = "hash"
	ProviderOllama = "ollama"
)

// Embedding cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// Config is the full server configuration, one field per environment variable.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	VocabFile    string
	MaxCards     int
	DefaultCards int

	EmbedProvider string
	EmbedDim      int
	OllamaURL     string
	OllamaModel   string

	EmbedCache    string
	EmbedCacheTTL time.Duration
	SQLitePath    string
	RedisURL      string

	GuessDelay    time.Duration
	JWTSecret     string
	SessionTTL    time.Duration
	CookieName    string
	SecureCookies bool
	ClientOrigin  string
	DailySalt     string
}

// Load returns the configuration with defaults applied.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envStr("PORT", "5175"),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		LogFormat:     envStr("LOG_FORMAT", "json"),
		VocabFile:     envStr("VOCAB_FILE", ""),
		EmbedProvider: strings.ToLower(envStr("EMBED_PROVIDER", ProviderHash)),
		OllamaURL:     envStr("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   envStr("OLLAMA_MODEL", "nomic-embed-text"),
		EmbedCache:    strings.ToLower(envStr("EMBED_CACHE", CacheMemory)),
		SQLitePath:    envStr("SQLITE_PATH", "./data/spybot.db"),
		RedisURL:      envStr("REDIS_URL", ""),
		JWTSecret:     envStr("JWT_SECRET", "dev_secret_change_me"),
		CookieName:    envStr("COOKIE_NAME", "spybot_session"),
		ClientOrigin:  envStr("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:     envStr("DAILY_SALT", "local_dev_salt"),
	}

	var err error
	if cfg.MaxCards, err = envInt("MAX_CARDS", 100); err != nil {
		return nil, err
	}
	if cfg.DefaultCards, err = envInt("DEFAULT_CARDS", 15); err != nil {
		return nil, err
	}
	if cfg.EmbedDim, err = envInt("EMBED_DIM", 256); err != nil {
		return nil, err
	}
	if cfg.EmbedCacheTTL, err = envDuration("EMBED_CACHE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.GuessDelay, err = envDuration("GUESS_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.SecureCookies, err = envBool("SECURE_COOKIES", false); err != nil {
		return nil, err
	}
	hours, err := envInt("SESSION_TTL_HOURS", 12)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.EmbedProvider {
	case ProviderHash, ProviderOllama:
	default:
		return fmt.Errorf("config: EMBED_PROVIDER must be %q or %q, got %q", ProviderHash, ProviderOllama, c.EmbedProvider)
	}
	switch c.EmbedCache {
	case CacheNone, CacheMemory, CacheSQLite:
	case CacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: EMBED_CACHE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("config: unknown EMBED_CACHE %q", c.EmbedCache)
	}
	if c.MaxCards <= 0 {
		return fmt.Errorf("config: MAX_CARDS must be positive")
	}
	if c.DefaultCards <= 0 || c.DefaultCards > c.MaxCards {
		return fmt.Errorf("config: DEFAULT_CARDS must be in 1..%d", c.MaxCards)
	}
	if c.GuessDelay < 0 {
		return fmt.Errorf("config: GUESS_DELAY must not be negative")
	}
	return nil
}

func envStr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", k, err)
	}
	return b, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
