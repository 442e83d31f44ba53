package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-hub/internal/search"
	"github.com/i474232898/weather-hub/internal/weather/providers"
)

// defaultConfigFile is read when CONFIG_FILE is not set. It is optional.
const defaultConfigFile = "weather-hub.yaml"

type AppConfig struct {
	WeatherAPIKey     string        `yaml:"weather_api_key"`
	WeatherAPIBaseURL string        `yaml:"weather_api_base_url"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	ForecastDays      int           `yaml:"forecast_days"`

	// RefreshInterval controls automatic refreshes (0 = manual only).
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// StorePath is the sqlite file preferences are kept in ("" = memory).
	StorePath string `yaml:"store_path"`

	DefaultLocation string        `yaml:"default_location"`
	SearchDebounce  time.Duration `yaml:"search_debounce"`

	Geolocation GeolocationConfig `yaml:"geolocation"`

	Port string `yaml:"port"`
}

// GeolocationConfig describes where "use my location" gets its answer from.
type GeolocationConfig struct {
	Latitude       *float64 `yaml:"latitude"`
	Longitude      *float64 `yaml:"longitude"`
	City           string   `yaml:"city"`
	Country        string   `yaml:"country"`
	GeocoderAPIKey string   `yaml:"geocoder_api_key"`
}

// Load reads configuration from an optional YAML file and the environment,
// with environment variables taking precedence.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := defaults()

	path := getenvDefault("CONFIG_FILE", defaultConfigFile)
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func defaults() *AppConfig {
	return &AppConfig{
		WeatherAPIBaseURL: providers.DefaultWeatherAPIBaseURL,
		HTTPTimeout:       10 * time.Second,
		ForecastDays:      providers.DefaultForecastDays,
		DefaultLocation:   "London",
		SearchDebounce:    search.DefaultDelay,
		Port:              "8080",
	}
}

// loadFile overlays the YAML file at path onto cfg. A missing file is not an
// error.
func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	cfg.WeatherAPIKey = getenvDefault("WEATHERAPI_API_KEY", cfg.WeatherAPIKey)
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", cfg.WeatherAPIBaseURL)
	cfg.StorePath = getenvDefault("STORE_PATH", cfg.StorePath)
	cfg.DefaultLocation = getenvDefault("DEFAULT_LOCATION", cfg.DefaultLocation)
	cfg.Port = getenvDefault("PORT", cfg.Port)

	var err error
	if cfg.ForecastDays, err = getenvInt("FORECAST_DAYS", cfg.ForecastDays); err != nil {
		return err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", cfg.RefreshInterval); err != nil {
		return err
	}
	if cfg.SearchDebounce, err = getenvDuration("SEARCH_DEBOUNCE", cfg.SearchDebounce); err != nil {
		return err
	}

	geo := &cfg.Geolocation
	geo.City = getenvDefault("HOME_ADDRESS_CITY", geo.City)
	geo.Country = getenvDefault("HOME_ADDRESS_COUNTRY", geo.Country)
	geo.GeocoderAPIKey = getenvDefault("GOOGLE_GEOCODER_API_KEY", geo.GeocoderAPIKey)
	if geo.Latitude, err = getenvFloat("DEVICE_LATITUDE", geo.Latitude); err != nil {
		return err
	}
	if geo.Longitude, err = getenvFloat("DEVICE_LONGITUDE", geo.Longitude); err != nil {
		return err
	}
	return nil
}

func (c *AppConfig) validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.ForecastDays < 1 || c.ForecastDays > 14 {
		return fmt.Errorf("FORECAST_DAYS must be between 1 and 14, got %d", c.ForecastDays)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", c.RefreshInterval)
	}
	if (c.Geolocation.Latitude == nil) != (c.Geolocation.Longitude == nil) {
		return fmt.Errorf("DEVICE_LATITUDE and DEVICE_LONGITUDE must be set together")
	}
	return nil
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

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def *float64) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
