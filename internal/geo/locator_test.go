package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
)

func TestPositionQuery(t *testing.T) {
	p := Position{Latitude: 48.8566, Longitude: 2.3522}
	if got := p.Query(); got != "48.8566,2.3522" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestNewSelectsLocator(t *testing.T) {
	lat, lon := 35.68, 139.69

	if _, ok := New(Config{Latitude: &lat, Longitude: &lon}).(StaticLocator); !ok {
		t.Fatalf("expected StaticLocator for fixed coordinates")
	}
	if _, ok := New(Config{GeocoderAPIKey: "key", City: "Tokyo", Country: "Japan"}).(*GeocodingLocator); !ok {
		t.Fatalf("expected GeocodingLocator for a home address")
	}

	_, err := New(Config{}).Locate(context.Background())
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestGeocodingLocator(t *testing.T) {
	l := &GeocodingLocator{
		address: geocoder.Address{City: "Tokyo", Country: "Japan"},
		geocode: func(a geocoder.Address) (geocoder.Location, error) {
			if a.City != "Tokyo" {
				t.Errorf("unexpected address %+v", a)
			}
			return geocoder.Location{Latitude: 35.68, Longitude: 139.69}, nil
		},
	}

	pos, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Query() != "35.68,139.69" {
		t.Fatalf("unexpected position %+v", pos)
	}

	l.geocode = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, errors.New("ZERO_RESULTS")
	}
	if _, err := l.Locate(context.Background()); err == nil {
		t.Fatalf("expected geocoding error")
	}
}
