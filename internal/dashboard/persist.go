package dashboard

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/i474232898/weather-hub/internal/store"
	"github.com/i474232898/weather-hub/internal/weather"
)

// DefaultLocation is used when nothing has been persisted yet.
const DefaultLocation = "London"

// Defaults seeds the state when a preference has never been stored.
// Zero fields fall back to London, metric, summary and the system theme.
type Defaults struct {
	Location string
	Units    weather.UnitSystem
	View     weather.ViewMode
	Theme    weather.Theme
}

func (d Defaults) withFallbacks() Defaults {
	if d.Location == "" {
		d.Location = DefaultLocation
	}
	if d.Units == "" {
		d.Units = weather.Metric
	}
	if d.View == "" {
		d.View = weather.ViewSummary
	}
	if d.Theme == "" {
		d.Theme = weather.ThemeSystem
	}
	return d
}

// restore reads every preference key, keeping the default for keys that are
// missing or hold values we cannot parse.
func restore(st store.Store, d Defaults) State {
	s := State{
		Location:  d.Location,
		Favorites: []weather.FavoriteLocation{},
		Units:     d.Units,
		View:      d.View,
		Theme:     d.Theme,
	}

	if v, ok := load(st, store.KeyLastLocation); ok && v != "" {
		s.Location = v
	}
	if v, ok := load(st, store.KeyUnits); ok {
		if u, err := weather.ParseUnitSystem(v); err == nil {
			s.Units = u
		} else {
			log.Printf("warning: ignoring stored units: %v", err)
		}
	}
	if v, ok := load(st, store.KeyView); ok {
		if view, err := weather.ParseViewMode(v); err == nil {
			s.View = view
		} else {
			log.Printf("warning: ignoring stored view: %v", err)
		}
	}
	if v, ok := load(st, store.KeyTheme); ok {
		if t, err := weather.ParseTheme(v); err == nil {
			s.Theme = t
		} else {
			log.Printf("warning: ignoring stored theme: %v", err)
		}
	}
	if v, ok := load(st, store.KeyFavorites); ok {
		var favs []weather.FavoriteLocation
		if err := json.Unmarshal([]byte(v), &favs); err != nil {
			log.Printf("warning: ignoring stored favorites: %v", err)
		} else if favs != nil {
			s.Favorites = favs
		}
	}
	return s
}

func load(st store.Store, key string) (string, bool) {
	v, err := st.Get(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("warning: failed to read preference %s: %v", key, err)
		}
		return "", false
	}
	return v, true
}

// persistLocked writes one preference. Storage is best effort: failures are
// logged and never reach the caller.
func (c *Container) persistLocked(key, value string) {
	if err := c.store.Set(key, value); err != nil {
		log.Printf("warning: failed to persist %s: %v", key, err)
	}
}

func (c *Container) persistFavoritesLocked() {
	data, err := json.Marshal(c.state.Favorites)
	if err != nil {
		log.Printf("warning: failed to encode favorites: %v", err)
		return
	}
	c.persistLocked(store.KeyFavorites, string(data))
}
