// Package geo answers "where is this device?" once, on request. A position
// only ever fills the location query; it never starts a fetch by itself.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kelvins/geocoder"
)

// ErrUnsupported is returned when no geolocation source is configured.
var ErrUnsupported = errors.New("geolocation is not available on this device")

// Position is a single latitude/longitude fix.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Query formats the position the way the weather API accepts it: "lat,lon".
func (p Position) Query() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

// Locator is a single-shot geolocation source.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// StaticLocator always reports the configured coordinates.
type StaticLocator struct {
	Position Position
}

func (l StaticLocator) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return l.Position, nil
}

// Unsupported is the Locator used when nothing is configured.
type Unsupported struct{}

func (Unsupported) Locate(ctx context.Context) (Position, error) {
	return Position{}, ErrUnsupported
}

// GeocodingLocator resolves a configured home address through the Google
// geocoding API.
type GeocodingLocator struct {
	address geocoder.Address
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGeocodingLocator configures the geocoder package with apiKey. The key is
// package-global in the geocoder library, so only one GeocodingLocator should
// be created per process.
func NewGeocodingLocator(apiKey, city, country string) *GeocodingLocator {
	geocoder.ApiKey = apiKey
	return &GeocodingLocator{
		address: geocoder.Address{City: city, Country: country},
		geocode: geocoder.Geocoding,
	}
}

func (l *GeocodingLocator) Locate(ctx context.Context) (Position, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := l.geocode(l.address)
		done <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return Position{}, fmt.Errorf("geocode %s, %s: %w", l.address.City, l.address.Country, r.err)
		}
		return Position{Latitude: r.loc.Latitude, Longitude: r.loc.Longitude}, nil
	}
}

// Config selects a Locator.
type Config struct {
	Latitude, Longitude *float64
	City, Country       string
	GeocoderAPIKey      string
}

// New picks fixed coordinates first, then address geocoding, and falls back to
// Unsupported.
func New(cfg Config) Locator {
	switch {
	case cfg.Latitude != nil && cfg.Longitude != nil:
		return StaticLocator{Position: Position{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}}
	case cfg.GeocoderAPIKey != "" && cfg.City != "":
		return NewGeocodingLocator(cfg.GeocoderAPIKey, cfg.City, cfg.Country)
	default:
		return Unsupported{}
	}
}
