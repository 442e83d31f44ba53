package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/i474232898/weather-hub/internal/weather"
)

func TestDebouncerFiresOnlyLastTask(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired []int
	var mu sync.Mutex
	done := make(chan struct{})

	for i := 1; i <= 5; i++ {
		i := i
		d.Trigger(func() {
			mu.Lock()
			fired = append(fired, i)
			mu.Unlock()
			if i == 5 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("debounced task never fired")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]int{5}, fired); diff != "" {
		t.Fatalf("unexpected fired tasks (-want +got):\n%s", diff)
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var fired atomic.Bool
	d.Trigger(func() { fired.Store(true) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	if fired.Load() {
		t.Fatalf("stopped task must not fire")
	}
}

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	results []weather.SearchResult
	err     error
}

func (f *fakeSearcher) Forecast(ctx context.Context, query string) (*weather.Snapshot, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]weather.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func (f *fakeSearcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSuggesterSearchesLastQueryOnly(t *testing.T) {
	paris := weather.SearchResult{ID: 1, Name: "Paris", Region: "Ile-de-France", Country: "France"}
	client := &fakeSearcher{results: []weather.SearchResult{paris}}
	s := NewSuggester(client, 20*time.Millisecond)
	defer s.Stop()

	s.SetQuery("P")
	s.SetQuery("Pa")
	s.SetQuery("Par")

	waitFor(t, func() bool { return len(s.State().Options) == 1 })

	if diff := cmp.Diff([]string{"Par"}, client.seen()); diff != "" {
		t.Fatalf("unexpected searches (-want +got):\n%s", diff)
	}
	state := s.State()
	if state.Query != "Par" || state.Loading || state.Options[0].Name != "Paris" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestSuggesterShortQueryClearsOptions(t *testing.T) {
	client := &fakeSearcher{results: []weather.SearchResult{{ID: 1, Name: "Paris"}}}
	s := NewSuggester(client, 10*time.Millisecond)
	defer s.Stop()

	s.SetQuery("Paris")
	waitFor(t, func() bool { return len(s.State().Options) == 1 })

	s.SetQuery(" P ")
	state := s.State()
	if len(state.Options) != 0 || state.Loading {
		t.Fatalf("expected short query to clear options, got %+v", state)
	}

	time.Sleep(30 * time.Millisecond)
	if got := len(client.seen()); got != 1 {
		t.Fatalf("short query must not search, got %d searches", got)
	}
}

func TestSuggesterSearchFailureClearsOptions(t *testing.T) {
	client := &fakeSearcher{err: weather.NewFetchError(weather.ErrOffline, 0, "", nil)}
	s := NewSuggester(client, 10*time.Millisecond)
	defer s.Stop()

	s.SetQuery("London")
	waitFor(t, func() bool { return len(client.seen()) == 1 && !s.State().Loading })

	if got := s.State().Options; got == nil || len(got) != 0 {
		t.Fatalf("expected empty options after failure, got %+v", got)
	}
}
