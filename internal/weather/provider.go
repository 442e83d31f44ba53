package weather

import (
	"context"
	"strconv"
)

// Client abstracts the remote weather API (or its offline stand-in).
type Client interface {
	// Forecast fetches current conditions and the multi-day forecast for a
	// free-text query (city name, postal code or "lat,lon"). Failures are
	// reported as *FetchError.
	Forecast(ctx context.Context, query string) (*Snapshot, error)

	// Search returns candidate locations for an autocomplete query.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// FavoriteLocation is a user-saved location. ID is unique within the
// favorites collection.
type FavoriteLocation struct {
	ID   string  `json:"id" validate:"required"`
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// FavoriteID returns the conventional "{lat}-{lon}" identifier.
func FavoriteID(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "-" + strconv.FormatFloat(lon, 'f', -1, 64)
}

// FavoriteFromSnapshot builds a favorite for the location a snapshot resolved to.
func FavoriteFromSnapshot(s *Snapshot) FavoriteLocation {
	return FavoriteLocation{
		ID:   FavoriteID(s.Location.Lat, s.Location.Lon),
		Name: s.Location.Name,
		Lat:  s.Location.Lat,
		Lon:  s.Location.Lon,
	}
}
