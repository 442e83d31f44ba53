package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-hub/internal/api/http"
	"github.com/i474232898/weather-hub/internal/config"
	"github.com/i474232898/weather-hub/internal/dashboard"
	"github.com/i474232898/weather-hub/internal/geo"
	"github.com/i474232898/weather-hub/internal/scheduler"
	"github.com/i474232898/weather-hub/internal/search"
	"github.com/i474232898/weather-hub/internal/store"
	"github.com/i474232898/weather-hub/internal/weather/providers"
)

func main() {
	// Load configuration (.env, optional YAML file, environment).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound weather API calls. Timeouts surface as
	// offline errors.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Real API when a key is configured, synthetic data otherwise.
	client := providers.NewClient(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL, cfg.ForecastDays)

	prefs, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("failed to open preference store: %v", err)
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			log.Printf("error closing preference store: %v", err)
		}
	}()

	// State container, seeded from stored preferences.
	dash := dashboard.New(client, prefs, dashboard.Defaults{Location: cfg.DefaultLocation})
	dash.Start()

	suggester := search.NewSuggester(client, cfg.SearchDebounce)
	defer suggester.Stop()

	locator := geo.New(geo.Config{
		Latitude:       cfg.Geolocation.Latitude,
		Longitude:      cfg.Geolocation.Longitude,
		City:           cfg.Geolocation.City,
		Country:        cfg.Geolocation.Country,
		GeocoderAPIKey: cfg.Geolocation.GeocoderAPIKey,
	})

	// Optional periodic refresh of the active location.
	sched := scheduler.New(cfg.RefreshInterval, dash)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-hub",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
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
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-hub",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Services{
		Dashboard: dash,
		Suggester: suggester,
		Client:    client,
		Locator:   locator,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: weather-hub listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	sched.Stop()
	// Closing the container ends open event streams so shutdown can finish.
	dash.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
