package observability

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/i474232898/weather-dashboard/internal/config"
)

// NewLogger builds the process logger. "text" is colorized for terminals,
// "json" is meant for log shipping.
func NewLogger(cfg *config.AppConfig) *slog.Logger {
	if cfg.LogFormat == "json" {
		h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})
		return slog.New(h).With("service", "weather-dashboard")
	}

	h := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	})
	return slog.New(h)
}
