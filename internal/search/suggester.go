// Package search drives the location autocomplete box.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-hub/internal/weather"
)

const (
	DefaultDelay     = 300 * time.Millisecond
	DefaultMinLength = 2

	searchTimeout = 10 * time.Second
)

// Suggestions is what the search box renders.
type Suggestions struct {
	Query   string                 `json:"query"`
	Options []weather.SearchResult `json:"options"`
	Loading bool                   `json:"loading"`
}

// Suggester debounces keystrokes into location searches. Only the search for
// the last query typed is ever issued, and only its results are kept.
type Suggester struct {
	client    weather.Client
	debouncer *Debouncer
	minLength int

	mu    sync.Mutex
	state Suggestions
}

func NewSuggester(client weather.Client, delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Suggester{
		client:    client,
		debouncer: NewDebouncer(delay),
		minLength: DefaultMinLength,
		state:     Suggestions{Options: []weather.SearchResult{}},
	}
}

// SetQuery records a keystroke. Queries below the minimum length clear the
// options at once; longer ones schedule a search.
func (s *Suggester) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Query = query
	if len([]rune(strings.TrimSpace(query))) < s.minLength {
		s.debouncer.Stop()
		s.state.Options = []weather.SearchResult{}
		s.state.Loading = false
		return
	}

	s.debouncer.Trigger(func() { s.run(query) })
}

func (s *Suggester) run(query string) {
	s.mu.Lock()
	if s.state.Query != query {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	results, err := s.client.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		log.Printf("search: failed for %q: %v", query, err)
		results = nil
	}
	if results == nil {
		results = []weather.SearchResult{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Query != query {
		return
	}
	s.state.Options = results
	s.state.Loading = false
}

// State returns a copy of what the search box should display.
func (s *Suggester) State() Suggestions {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Options = append([]weather.SearchResult(nil), s.state.Options...)
	if out.Options == nil {
		out.Options = []weather.SearchResult{}
	}
	return out
}

// Stop cancels any pending search.
func (s *Suggester) Stop() {
	s.debouncer.Stop()
}
