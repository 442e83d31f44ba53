// Package dashboard owns the weather dashboard state. Every view reads
// snapshots from a Container and changes state only through its methods.
package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/i474232898/weather-hub/internal/store"
	"github.com/i474232898/weather-hub/internal/weather"
)

// ErrSuperseded is returned by RefreshWeather when a newer refresh was issued
// before this one settled. The stale result is discarded.
var ErrSuperseded = errors.New("weather refresh superseded by a newer request")

// State is a point-in-time copy of the dashboard state. WeatherData is shared
// between snapshots and must be treated as read-only.
type State struct {
	WeatherData *weather.Snapshot          `json:"weatherData"`
	Loading     bool                       `json:"loading"`
	Error       string                     `json:"error"`
	ErrorKind   weather.ErrorKind          `json:"errorKind,omitempty"`
	Location    string                     `json:"location"`
	Favorites   []weather.FavoriteLocation `json:"favorites"`
	Units       weather.UnitSystem         `json:"units"`
	View        weather.ViewMode           `json:"view"`
	Theme       weather.Theme              `json:"theme"`
}

func (s State) clone() State {
	favs := make([]weather.FavoriteLocation, len(s.Favorites))
	copy(favs, s.Favorites)
	s.Favorites = favs
	return s
}

// Container is the single source of truth for dashboard state. All mutations
// are serialized through mu; the only blocking work done outside it is the
// outbound weather fetch.
type Container struct {
	client weather.Client
	store  store.Store

	mu         sync.Mutex
	state      State
	generation uint64 // id of the most recently issued refresh
	subs       map[int]chan State
	nextSub    int
	closed     bool

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// New creates a Container seeded from the preferences in st, falling back to
// defaults for anything absent or unreadable. It does not fetch; call Start.
func New(client weather.Client, st store.Store, defaults Defaults) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		client: client,
		store:  st,
		state:  restore(st, defaults.withFallbacks()),
		subs:   make(map[int]chan State),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start issues the initial refresh for the restored location.
func (c *Container) Start() {
	c.mu.Lock()
	gen := c.beginRefreshLocked()
	query := c.state.Location
	c.mu.Unlock()

	c.dispatch(gen, query)
}

// Snapshot returns a copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SetLocation replaces the active location and dispatches one refresh for it.
// The location field is updated before SetLocation returns; weather data
// follows once the fetch settles. Setting the current location again only
// persists it; use RefreshWeather to refetch.
func (c *Container) SetLocation(query string) {
	c.mu.Lock()
	changed := c.state.Location != query
	c.state.Location = query
	c.persistLocked(store.KeyLastLocation, query)
	if !changed {
		c.mu.Unlock()
		return
	}
	gen := c.beginRefreshLocked()
	c.mu.Unlock()

	c.dispatch(gen, query)
}

// RefreshWeather fetches weather for the current location and blocks until it
// settles. The outcome is also recorded in the state: on success WeatherData
// is replaced, on failure Error is set and WeatherData is left untouched.
// Loading is cleared by whichever refresh was issued last.
func (c *Container) RefreshWeather(ctx context.Context) error {
	c.mu.Lock()
	gen := c.beginRefreshLocked()
	query := c.state.Location
	c.mu.Unlock()

	return c.fetch(ctx, gen, query)
}

// AddFavorite appends fav unless a favorite with the same ID already exists.
func (c *Container) AddFavorite(fav weather.FavoriteLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.state.Favorites {
		if existing.ID == fav.ID {
			return
		}
	}

	favs := make([]weather.FavoriteLocation, 0, len(c.state.Favorites)+1)
	favs = append(favs, c.state.Favorites...)
	c.state.Favorites = append(favs, fav)
	c.persistFavoritesLocked()
	c.publishLocked()
}

// RemoveFavorite removes the favorite with the given ID, if any.
func (c *Container) RemoveFavorite(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, fav := range c.state.Favorites {
		if fav.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	favs := make([]weather.FavoriteLocation, 0, len(c.state.Favorites)-1)
	favs = append(favs, c.state.Favorites[:idx]...)
	c.state.Favorites = append(favs, c.state.Favorites[idx+1:]...)
	c.persistFavoritesLocked()
	c.publishLocked()
}

// SetUnits changes the display unit system. It never refetches.
func (c *Container) SetUnits(units weather.UnitSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Units = units
	c.persistLocked(store.KeyUnits, string(units))
	c.publishLocked()
}

// SetView changes the active view. It never refetches.
func (c *Container) SetView(view weather.ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.View = view
	c.persistLocked(store.KeyView, string(view))
	c.publishLocked()
}

// SetTheme changes the colour scheme preference.
func (c *Container) SetTheme(theme weather.Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Theme = theme
	c.persistLocked(store.KeyTheme, string(theme))
	c.publishLocked()
}

// Subscribe returns a channel that receives the latest state after every
// change, starting with the current one. Slow readers only ever see the most
// recent state. The returned func unsubscribes and closes the channel. After
// Close the channel is returned already closed.
func (c *Container) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		ch := make(chan State)
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, 1)
	ch <- c.state.clone()
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Wait blocks until every refresh dispatched by Start or SetLocation has
// settled.
func (c *Container) Wait() {
	c.inflight.Wait()
}

// Close cancels in-flight fetches, waits for them and closes all
// subscriptions. The store is left open for its owner to close.
func (c *Container) Close() {
	c.cancel()
	c.inflight.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// beginRefreshLocked marks a new refresh as the latest one and enters the
// loading state. The error is cleared before loading is set.
func (c *Container) beginRefreshLocked() uint64 {
	c.generation++
	c.state.Error = ""
	c.state.ErrorKind = ""
	c.state.Loading = true
	c.publishLocked()
	return c.generation
}

func (c *Container) dispatch(gen uint64, query string) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if err := c.fetch(c.ctx, gen, query); err != nil && !errors.Is(err, ErrSuperseded) {
			log.Printf("refresh failed for %q: %v", query, err)
		}
	}()
}

func (c *Container) fetch(ctx context.Context, gen uint64, query string) error {
	data, err := c.client.Forecast(ctx, query)
	if err == nil && data == nil {
		err = weather.NewFetchError(weather.ErrGeneric, 0, "", errors.New("empty weather payload"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Printf("DEBUG: discarding stale weather result for %q (request %d, latest %d)", query, gen, c.generation)
		return ErrSuperseded
	}

	c.state.Loading = false
	if err != nil {
		c.state.Error = weather.MessageOf(err)
		c.state.ErrorKind = weather.KindOf(err)
	} else {
		c.state.WeatherData = data
	}
	c.publishLocked()
	return err
}

// publishLocked hands the current state to every subscriber, replacing any
// state the subscriber has not read yet.
func (c *Container) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.state.clone()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
