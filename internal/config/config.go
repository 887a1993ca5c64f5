package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,number"`

	// DataBaseURL is the remote directory holding <year>.xml / <year>.json files.
	DataBaseURL string `validate:"required,url"`
	// DataDir is the read-only local cache used when no remote format exists.
	DataDir   string `validate:"required"`
	StaticDir string `validate:"required"`

	// HTTPTimeout bounds each outbound request made by the shared client.
	HTTPTimeout time.Duration `validate:"gt=0"`

	LogLevel  slog.Level
	LogFormat string `validate:"oneof=text json"`

	CORSAllowOrigins string

	// Source probe; a zero ProbeYear disables it.
	ProbeInterval time.Duration `validate:"gt=0"`
	ProbeYear     int           `validate:"gte=0"`

	// Circuit breaker around the remote source.
	BreakerMaxFailures int           `validate:"gt=0"`
	BreakerTimeout     time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "8081"),
		DataBaseURL:      strings.TrimRight(getenvDefault("DATA_BASE_URL", "http://it.murdoch.edu.au/~S900432D/ict375/data"), "/"),
		DataDir:          getenvDefault("DATA_DIR", "data"),
		StaticDir:        getenvDefault("STATIC_DIR", "public"),
		LogFormat:        strings.ToLower(getenvDefault("LOG_FORMAT", "text")),
		CORSAllowOrigins: getenvDefault("CORS_ALLOW_ORIGINS", "*"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = getenvDuration("BREAKER_TIMEOUT", "1m"); err != nil {
		return nil, err
	}
	if cfg.ProbeYear, err = getenvInt("PROBE_YEAR", 0); err != nil {
		return nil, err
	}
	if cfg.BreakerMaxFailures, err = getenvInt("BREAKER_MAX_FAILURES", 5); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
