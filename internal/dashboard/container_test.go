package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/i474232898/weather-hub/internal/store"
	"github.com/i474232898/weather-hub/internal/weather"
	"github.com/i474232898/weather-hub/internal/weather/providers"
)

// fakeClient answers Forecast through a per-test function and counts calls.
type fakeClient struct {
	mu       sync.Mutex
	calls    []string
	forecast func(ctx context.Context, query string) (*weather.Snapshot, error)
}

func (f *fakeClient) Forecast(ctx context.Context, query string) (*weather.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()
	return f.forecast(ctx, query)
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]weather.SearchResult, error) {
	return nil, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func syntheticForecast(ctx context.Context, query string) (*weather.Snapshot, error) {
	return providers.NewSyntheticProvider(1).Forecast(ctx, query)
}

func TestNewUsesDefaults(t *testing.T) {
	c := New(&fakeClient{forecast: syntheticForecast}, store.NewMemoryStore(), Defaults{})
	defer c.Close()

	got := c.Snapshot()
	want := State{
		Location:  "London",
		Favorites: []weather.FavoriteLocation{},
		Units:     weather.Metric,
		View:      weather.ViewSummary,
		Theme:     weather.ThemeSystem,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected initial state (-want +got):\n%s", diff)
	}
}

func TestSetLocationWithoutAPIKey(t *testing.T) {
	c := New(providers.NewClient(nil, "", "", 5), store.NewMemoryStore(), Defaults{})
	defer c.Close()

	c.SetLocation("Paris")
	if got := c.Snapshot().Location; got != "Paris" {
		t.Fatalf("location should update synchronously, got %q", got)
	}
	c.Wait()

	s := c.Snapshot()
	if s.Loading {
		t.Fatalf("expected loading to be cleared")
	}
	if s.Error != "" {
		t.Fatalf("unexpected error %q", s.Error)
	}
	if s.WeatherData == nil || s.WeatherData.Location.Name != "Paris" {
		t.Fatalf("expected weather for Paris, got %+v", s.WeatherData)
	}
	if got := len(s.WeatherData.Forecast.ForecastDay[0].Hour); got != 24 {
		t.Fatalf("expected 24 hourly entries, got %d", got)
	}
}

func TestRefreshNotFoundKeepsPreviousData(t *testing.T) {
	fail := false
	client := &fakeClient{forecast: func(ctx context.Context, query string) (*weather.Snapshot, error) {
		if fail {
			return nil, weather.NewFetchError(weather.ErrNotFound, 404, "", nil)
		}
		return syntheticForecast(ctx, query)
	}}

	c := New(client, store.NewMemoryStore(), Defaults{})
	defer c.Close()

	// First call fails: nothing to keep.
	fail = true
	if err := c.RefreshWeather(context.Background()); weather.KindOf(err) != weather.ErrNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	s := c.Snapshot()
	if s.WeatherData != nil {
		t.Fatalf("expected no weather data after first failure")
	}
	if !strings.Contains(strings.ToLower(s.Error), "location not found") || s.ErrorKind != weather.ErrNotFound {
		t.Fatalf("unexpected error state %q / %s", s.Error, s.ErrorKind)
	}
	if s.Loading {
		t.Fatalf("loading must be cleared after failure")
	}

	fail = false
	if err := c.RefreshWeather(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := c.Snapshot()
	if before.Error != "" || before.WeatherData == nil {
		t.Fatalf("expected success to clear error and set data: %+v", before)
	}

	fail = true
	_ = c.RefreshWeather(context.Background())
	after := c.Snapshot()
	if after.WeatherData != before.WeatherData {
		t.Fatalf("failed refresh must leave previous weather data in place")
	}
	if after.ErrorKind != weather.ErrNotFound || after.Loading {
		t.Fatalf("unexpected state after failure: %+v", after)
	}
}

func TestNewerRefreshWins(t *testing.T) {
	releaseA := make(chan struct{})
	client := &fakeClient{forecast: func(ctx context.Context, query string) (*weather.Snapshot, error) {
		if query == "A" {
			<-releaseA
		}
		return syntheticForecast(ctx, query)
	}}

	st := store.NewMemoryStore()
	c := New(client, st, Defaults{})
	defer c.Close()

	c.SetLocation("A")
	c.SetLocation("B")

	// Let B settle first, then release the slower A.
	deadline := time.Now().Add(2 * time.Second)
	for c.Snapshot().Loading {
		if time.Now().After(deadline) {
			t.Fatalf("B never settled")
		}
		time.Sleep(5 * time.Millisecond)
	}
	close(releaseA)
	c.Wait()

	s := c.Snapshot()
	if s.WeatherData == nil || s.WeatherData.Location.Name != "B" {
		t.Fatalf("expected weather for B, got %+v", s.WeatherData)
	}
	if s.Location != "B" || s.Loading {
		t.Fatalf("unexpected final state: %+v", s)
	}
	if got, _ := st.Get(store.KeyLastLocation); got != "B" {
		t.Fatalf("expected persisted lastLocation B, got %q", got)
	}
	if client.callCount() != 2 {
		t.Fatalf("expected both fetches to be dispatched, got %d", client.callCount())
	}
}

func TestFavorites(t *testing.T) {
	st := store.NewMemoryStore()
	c := New(&fakeClient{forecast: syntheticForecast}, st, Defaults{})
	defer c.Close()

	paris := weather.FavoriteLocation{ID: weather.FavoriteID(48.87, 2.33), Name: "Paris", Lat: 48.87, Lon: 2.33}
	tokyo := weather.FavoriteLocation{ID: weather.FavoriteID(35.69, 139.69), Name: "Tokyo", Lat: 35.69, Lon: 139.69}

	c.AddFavorite(paris)
	c.AddFavorite(tokyo)
	c.AddFavorite(paris)

	want := []weather.FavoriteLocation{paris, tokyo}
	if diff := cmp.Diff(want, c.Snapshot().Favorites); diff != "" {
		t.Fatalf("adding a duplicate id must be a no-op (-want +got):\n%s", diff)
	}

	// Same name, different id: kept.
	parisAgain := weather.FavoriteLocation{ID: "custom", Name: "Paris"}
	c.AddFavorite(parisAgain)
	if got := len(c.Snapshot().Favorites); got != 3 {
		t.Fatalf("expected 3 favorites, got %d", got)
	}

	c.RemoveFavorite("missing")
	if diff := cmp.Diff([]weather.FavoriteLocation{paris, tokyo, parisAgain}, c.Snapshot().Favorites); diff != "" {
		t.Fatalf("removing a missing id must be a no-op (-want +got):\n%s", diff)
	}

	c.RemoveFavorite(tokyo.ID)
	if diff := cmp.Diff([]weather.FavoriteLocation{paris, parisAgain}, c.Snapshot().Favorites); diff != "" {
		t.Fatalf("unexpected favorites after removal (-want +got):\n%s", diff)
	}

	reloaded := New(&fakeClient{forecast: syntheticForecast}, st, Defaults{})
	defer reloaded.Close()
	if diff := cmp.Diff([]weather.FavoriteLocation{paris, parisAgain}, reloaded.Snapshot().Favorites); diff != "" {
		t.Fatalf("favorites did not round-trip (-want +got):\n%s", diff)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	client := &fakeClient{forecast: syntheticForecast}
	c := New(client, st, Defaults{})

	c.SetUnits(weather.Imperial)
	c.SetView(weather.ViewHourly)
	c.SetTheme(weather.ThemeDark)
	c.Close()

	if client.callCount() != 0 {
		t.Fatalf("units, view and theme must not trigger a fetch")
	}

	reloaded := New(client, st, Defaults{})
	defer reloaded.Close()

	s := reloaded.Snapshot()
	if s.Units != weather.Imperial || s.View != weather.ViewHourly || s.Theme != weather.ThemeDark {
		t.Fatalf("preferences did not round-trip: %+v", s)
	}
}

func TestRestoreIgnoresBadValues(t *testing.T) {
	st := store.NewMemoryStore()
	_ = st.Set(store.KeyUnits, "kelvin")
	_ = st.Set(store.KeyView, "radar")
	_ = st.Set(store.KeyFavorites, "{not json")
	_ = st.Set(store.KeyLastLocation, "")

	c := New(&fakeClient{forecast: syntheticForecast}, st, Defaults{Location: "Berlin"})
	defer c.Close()

	s := c.Snapshot()
	if s.Units != weather.Metric || s.View != weather.ViewSummary || len(s.Favorites) != 0 || s.Location != "Berlin" {
		t.Fatalf("expected defaults for unreadable values, got %+v", s)
	}
}

type failingStore struct{ *store.MemoryStore }

func (failingStore) Set(key, value string) error { return errors.New("disk full") }

func TestPersistenceFailureIsNotSurfaced(t *testing.T) {
	c := New(&fakeClient{forecast: syntheticForecast}, failingStore{store.NewMemoryStore()}, Defaults{})
	defer c.Close()

	c.SetUnits(weather.Imperial)
	if c.Snapshot().Units != weather.Imperial {
		t.Fatalf("state must change even when persistence fails")
	}
}

func TestStartFetchesRestoredLocation(t *testing.T) {
	st := store.NewMemoryStore()
	_ = st.Set(store.KeyLastLocation, "Sydney")
	client := &fakeClient{forecast: syntheticForecast}

	c := New(client, st, Defaults{})
	defer c.Close()

	c.Start()
	c.Wait()

	s := c.Snapshot()
	if s.WeatherData == nil || s.WeatherData.Location.Name != "Sydney" {
		t.Fatalf("expected initial fetch for Sydney, got %+v", s.WeatherData)
	}
}

func TestSubscribeReceivesLatestState(t *testing.T) {
	c := New(&fakeClient{forecast: syntheticForecast}, store.NewMemoryStore(), Defaults{})

	updates, cancel := c.Subscribe()
	defer cancel()

	initial := <-updates
	if initial.Units != weather.Metric {
		t.Fatalf("expected current state first, got %+v", initial)
	}

	c.SetUnits(weather.Imperial)
	c.SetView(weather.ViewForecast)

	latest := <-updates
	if latest.Units != weather.Imperial || latest.View != weather.ViewForecast {
		t.Fatalf("expected latest state, got %+v", latest)
	}

	c.Close()
	if _, ok := <-updates; ok {
		t.Fatalf("expected channel to be closed after Close")
	}
}

func TestSetLocationUnchangedDoesNotRefetch(t *testing.T) {
	st := store.NewMemoryStore()
	client := &fakeClient{forecast: syntheticForecast}
	c := New(client, st, Defaults{Location: "Oslo"})
	defer c.Close()

	c.SetLocation("Oslo")
	c.Wait()

	if client.callCount() != 0 {
		t.Fatalf("setting the current location must not refetch, got %d calls", client.callCount())
	}
	if c.Snapshot().Loading {
		t.Fatalf("loading must stay false")
	}
	if got, _ := st.Get(store.KeyLastLocation); got != "Oslo" {
		t.Fatalf("expected persisted lastLocation Oslo, got %q", got)
	}

	c.SetLocation("Bergen")
	c.Wait()
	if client.callCount() != 1 {
		t.Fatalf("expected one fetch after a change, got %d", client.callCount())
	}
}

func TestSubscribeAfterClose(t *testing.T) {
	c := New(&fakeClient{forecast: syntheticForecast}, store.NewMemoryStore(), Defaults{})
	c.Close()

	updates, cancel := c.Subscribe()
	defer cancel()

	select {
	case _, ok := <-updates:
		if ok {
			t.Fatalf("expected a closed channel after Close")
		}
	case <-time.After(time.Second):
		t.Fatalf("subscription after Close never closed")
	}
}
