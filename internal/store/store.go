package store

import "errors"

var (
	// ErrNotFound is returned when no value has been stored under a key.
	ErrNotFound = errors.New("no value stored for key")
)

// Preference keys. Values are plain strings; favorites are a JSON array.
const (
	KeyLastLocation = "lastLocation"
	KeyFavorites    = "favoriteLocations"
	KeyUnits        = "units"
	KeyView         = "view"
	KeyTheme        = "theme"
)

// Store is durable key-value storage for user preferences. Each Set
// overwrites the previous value for the key.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}
