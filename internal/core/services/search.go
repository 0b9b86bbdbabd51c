package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

const (
	// DefaultDebounce is the quiet period after the last keystroke before a
	// search actually runs.
	DefaultDebounce = 300 * time.Millisecond

	maxRecentSearches = 10
)

// Search answers free-text queries against a fixed catalog. Execution is
// debounced: only the last query within the quiet period runs, and a newer
// query discards the pending one. Dispose cancels any pending run for good.
type Search struct {
	mu       sync.Mutex
	catalog  []domain.Track
	store    ports.BlobStore
	debounce time.Duration

	query     string
	searching bool
	results   domain.SearchResult
	recent    []string

	timer    *time.Timer
	gen      int
	disposed bool

	subs   map[int]func()
	nextID int
}

// SearchOption configures a Search at construction.
type SearchOption func(*Search)

// WithDebounce overrides the debounce quiet period.
func WithDebounce(d time.Duration) SearchOption {
	return func(s *Search) { s.debounce = d }
}

// NewSearch builds the search index over the given catalog tracks and loads
// the recent-queries log from the store. A malformed blob starts the log
// empty.
func NewSearch(catalog []domain.Track, store ports.BlobStore, opts ...SearchOption) *Search {
	s := &Search{
		catalog:  catalog,
		store:    store,
		debounce: DefaultDebounce,
		results:  domain.EmptySearchResult(),
		recent:   []string{},
		subs:     map[int]func(){},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loadRecent()
	return s
}

func (s *Search) loadRecent() {
	raw, err := s.store.Get(context.Background(), ports.KeyRecentSearches)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			log.Printf("WARN search: load recent searches: %v", err)
		}
		return
	}
	var recent []string
	if err := json.Unmarshal(raw, &recent); err != nil {
		log.Printf("WARN search: malformed recent-searches blob, starting empty: %v", err)
		return
	}
	s.recent = recent
}

// Subscribe registers a callback invoked synchronously after every mutation.
// The returned function unsubscribes.
func (s *Search) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Query returns the raw query as last set.
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// IsSearching reports whether a debounced run is pending.
func (s *Search) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

// Results returns the current result snapshot. Slices are cloned so the
// caller cannot mutate index-owned memory.
func (s *Search) Results() domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results
	r.Tracks = slices.Clone(r.Tracks)
	r.Playlists = slices.Clone(r.Playlists)
	r.Artists = slices.Clone(r.Artists)
	r.Albums = slices.Clone(r.Albums)
	return r
}

// RecentSearches returns the recent-queries log, most recent first.
func (s *Search) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recent...)
}

// SetSearchQuery stores the query and (re)arms the debounce timer. A blank
// query clears results immediately and suspends search activity.
func (s *Search) SetSearchQuery(query string) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.stopTimerLocked()
	if strings.TrimSpace(query) == "" {
		s.results = domain.EmptySearchResult()
		s.searching = false
		s.mu.Unlock()
		s.notify()
		return
	}
	s.searching = true
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(gen, query)
	})
	s.mu.Unlock()
	s.notify()
}

// run executes the debounced search unless a newer query or Dispose
// superseded it.
func (s *Search) run(gen int, query string) {
	s.mu.Lock()
	if s.disposed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.results = s.match(query)
	s.searching = false
	s.mu.Unlock()
	s.notify()
}

// Execute runs the same matching synchronously, bypassing the debounce. It
// does not touch the index's query/results state; callers that want a
// one-shot answer (the HTTP surface) use this.
func (s *Search) Execute(query string) domain.SearchResult {
	if strings.TrimSpace(query) == "" {
		return domain.EmptySearchResult()
	}
	return s.match(query)
}

// match is the case-insensitive substring filter over title, artist, album,
// and genre. Artists and albums are derived from the matched tracks and then
// re-filtered by the query, which is deliberately narrower than a full
// artist-name search.
func (s *Search) match(query string) domain.SearchResult {
	q := strings.ToLower(query)

	tracks := lo.Filter(s.catalog, func(t domain.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Artist), q) ||
			strings.Contains(strings.ToLower(t.Album), q) ||
			strings.Contains(strings.ToLower(t.Genre), q)
	})

	artists := lo.Filter(lo.Uniq(lo.Map(tracks, func(t domain.Track, _ int) string {
		return t.Artist
	})), func(artist string, _ int) bool {
		return strings.Contains(strings.ToLower(artist), q)
	})

	albums := lo.Filter(lo.Uniq(lo.Map(tracks, func(t domain.Track, _ int) string {
		return t.Album
	})), func(album string, _ int) bool {
		return strings.Contains(strings.ToLower(album), q)
	})

	return domain.SearchResult{
		Tracks:    tracks,
		Playlists: []domain.Playlist{},
		Artists:   artists,
		Albums:    albums,
	}
}

// AddToRecentSearches moves or inserts the query at the front of the log,
// dropping any earlier occurrence and trimming to capacity. Blank input is a
// no-op.
func (s *Search) AddToRecentSearches(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	s.mu.Lock()
	recent := make([]string, 0, len(s.recent)+1)
	recent = append(recent, query)
	for _, q := range s.recent {
		if q != query {
			recent = append(recent, q)
		}
	}
	if len(recent) > maxRecentSearches {
		recent = recent[:maxRecentSearches]
	}
	s.recent = recent
	s.persistRecentLocked()
	s.mu.Unlock()
	s.notify()
}

// ClearSearch resets the query and results.
func (s *Search) ClearSearch() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.query = ""
	s.results = domain.EmptySearchResult()
	s.searching = false
	s.mu.Unlock()
	s.notify()
}

// ClearRecentSearches empties the recent-queries log.
func (s *Search) ClearRecentSearches() {
	s.mu.Lock()
	s.recent = []string{}
	s.persistRecentLocked()
	s.mu.Unlock()
	s.notify()
}

// Dispose cancels any pending debounced run permanently. Further SetSearchQuery
// calls are ignored.
func (s *Search) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.stopTimerLocked()
	s.searching = false
	s.mu.Unlock()
}

// stopTimerLocked discards the pending run, if any. Caller holds s.mu.
func (s *Search) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// persistRecentLocked rewrites the recent-searches blob. Caller holds s.mu.
func (s *Search) persistRecentLocked() {
	raw, err := json.Marshal(s.recent)
	if err != nil {
		log.Printf("WARN search: marshal recent searches: %v", err)
		return
	}
	if err := s.store.Put(context.Background(), ports.KeyRecentSearches, raw); err != nil {
		log.Printf("WARN search: persist recent searches: %v", err)
	}
}

func (s *Search) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
