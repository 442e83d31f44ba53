package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-hub/internal/weather"
)

const (
	// DefaultWeatherAPIBaseURL is the public WeatherAPI.com endpoint.
	DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

	// DefaultForecastDays matches what the dashboard renders.
	DefaultForecastDays = 5

	// MinSearchLength is the shortest query worth sending to the search endpoint.
	MinSearchLength = 2
)

// WeatherAPIProvider implements weather.Client for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	client  *http.Client
}

func NewWeatherAPIProvider(client *http.Client, apiKey, baseURL string, days int) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}
	if days <= 0 {
		days = DefaultForecastDays
	}
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		days:    days,
		client:  client,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Forecast fetches current conditions, the forecast, air quality and alerts.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, query string) (*weather.Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", query)
		values.Set("days", strconv.Itoa(p.days))
		values.Set("aqi", "yes")
		values.Set("alerts", "yes")

		u := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var snapshot weather.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, resp.StatusCode, "Received malformed weather data", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, resp.StatusCode, "Received incomplete weather data", err)
	}
	return &snapshot, nil
}

// Search returns candidate locations. Queries shorter than MinSearchLength
// yield an empty list without touching the network.
func (p *WeatherAPIProvider) Search(ctx context.Context, query string) ([]weather.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSearchLength {
		return []weather.SearchResult{}, nil
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", query)

		u := fmt.Sprintf("%s/search.json?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	results := []weather.SearchResult{}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, resp.StatusCode, "Received malformed search results", err)
	}
	log.Printf("DEBUG: %s search %q returned %d locations", p.name, query, len(results))
	return results, nil
}

// NewClient returns the WeatherAPI provider when an API key is configured and
// the synthetic provider otherwise.
func NewClient(client *http.Client, apiKey, baseURL string, days int) weather.Client {
	if strings.TrimSpace(apiKey) == "" {
		log.Println("INFO: no weather API key configured; using synthetic weather data")
		return NewSyntheticProvider(days)
	}
	return NewWeatherAPIProvider(client, apiKey, baseURL, days)
}

var (
	_ weather.Client = (*WeatherAPIProvider)(nil)
	_ weather.Client = (*SyntheticProvider)(nil)
)
