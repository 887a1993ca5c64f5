package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/observability"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/sources"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	remote := sources.NewRemoteSource(httpClient, cfg.DataBaseURL, sources.BreakerConfig{
		MaxFailures: uint32(cfg.BreakerMaxFailures),
		Timeout:     cfg.BreakerTimeout,
	})
	cache := store.NewDirStore(cfg.DataDir)
	resolver := sources.NewResolver(remote, cache, metrics, log)

	// Core service: resolve, parse, aggregate.
	service := weather.NewService(resolver, metrics, log)

	// Background probe of the remote source.
	sched := scheduler.New(remote, cfg.ProbeYear, cfg.ProbeInterval, metrics, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout * 3,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service)
	httpapi.RegisterAssets(app, cfg.StaticDir)

	go func() {
		log.Info("http server starting",
			"port", cfg.Port,
			"data_base_url", cfg.DataBaseURL,
			"data_dir", cfg.DataDir,
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
