package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultEnv         = "development"
	defaultDBDriver    = "sqlite"
	defaultDBPath      = "./dev.db"
	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultLocale      = "es-ES"
	defaultMaxInFlight = 64
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	PriceBookPath string
	LogLevel      string
	LogFormat     string
	Locale        string
	MaxInFlight   int

	// Warnings collects problems found while loading; the caller logs them
	// once a logger exists.
	Warnings []string
}

// IsDev reports whether the app runs outside production.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return false
	}
	return true
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Env:           getenv("APP_ENV", defaultEnv),
		Port:          getenv("PORT", defaultPort),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", defaultDBDriver)),
		DBPath:        getenv("DB_PATH", defaultDBPath),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PriceBookPath: os.Getenv("PRICEBOOK_PATH"),
		LogLevel:      getenv("LOG_LEVEL", defaultLogLevel),
		LogFormat:     getenv("LOG_FORMAT", defaultLogFormat),
		Locale:        getenv("DISPLAY_LOCALE", defaultLocale),
		MaxInFlight:   defaultMaxInFlight,
	}

	if raw := os.Getenv("MAX_INFLIGHT_REQUESTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			cfg.warn("MAX_INFLIGHT_REQUESTS=%q is not a positive integer, using %d", raw, defaultMaxInFlight)
		} else {
			cfg.MaxInFlight = n
		}
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres", "postgresql", "pgx":
		cfg.DBDriver = "postgres"
		if cfg.DatabaseURL == "" {
			cfg.warn("DB_DRIVER=postgres but DATABASE_URL is not set, falling back to sqlite")
			cfg.DBDriver = defaultDBDriver
		}
	default:
		cfg.warn("unknown DB_DRIVER %q, using %s", cfg.DBDriver, defaultDBDriver)
		cfg.DBDriver = defaultDBDriver
	}

	if cfg.PriceBookPath == "" {
		cfg.warn("PRICEBOOK_PATH is not set, using built-in price book")
	}

	return cfg
}

func (c *Config) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
