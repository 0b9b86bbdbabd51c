package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ewilliams-labs/chorus/internal/catalog"
	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
	"github.com/ewilliams-labs/chorus/internal/core/services"
)

// fakeMedia is a stand-in media handle: every start request succeeds.
type fakeMedia struct {
	events    chan ports.MediaEvent
	closeOnce sync.Once
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{events: make(chan ports.MediaEvent, 8)}
}

func (f *fakeMedia) Load(url string) error             { return nil }
func (f *fakeMedia) Play() error                       { return nil }
func (f *fakeMedia) Pause()                            {}
func (f *fakeMedia) Seek(seconds float64)              {}
func (f *fakeMedia) SetVolume(v float64)               {}
func (f *fakeMedia) Events() <-chan ports.MediaEvent   { return f.events }
func (f *fakeMedia) Close() error                      { f.closeOnce.Do(func() { close(f.events) }); return nil }

// memStore is an in-memory blob store.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return value, nil
}

func (m *memStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	tracks, err := catalog.Static{}.Tracks(context.Background())
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	store := newMemStore()
	engine := services.NewEngine(newFakeMedia())
	t.Cleanup(func() { _ = engine.Close() })
	library := services.NewLibrary(store)
	search := services.NewSearch(tracks, store, services.WithDebounce(10*time.Millisecond))
	t.Cleanup(search.Dispose)
	return NewHandler(engine, library, search, tracks)
}

func doRequest(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_HealthCheck(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListTracks(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/tracks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var tracks []domain.Track
	if err := json.Unmarshal(rec.Body.Bytes(), &tracks); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(tracks) != 10 {
		t.Fatalf("expected the 10 seed tracks, got %d", len(tracks))
	}
}

func TestHandler_PlaylistLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/playlists", `{"name":"Road Trip","description":"highway songs"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var created domain.Playlist
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if created.ID == "" || created.Name != "Road Trip" {
		t.Fatalf("unexpected playlist: %+v", created)
	}
	if len(created.Tracks) != 0 {
		t.Fatal("new playlist must start empty")
	}

	// add a track, reject the duplicate silently
	trackBody := `{"id":"1","title":"KU LO SA (with Camila Cabello)","artist":"Oxlade, Camila Cabello"}`
	if rec := doRequest(t, h, http.MethodPost, "/playlists/"+created.ID+"/tracks", trackBody); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodPost, "/playlists/"+created.ID+"/tracks", trackBody); rec.Code != http.StatusNoContent {
		t.Fatalf("expected duplicate add to be a silent no-op, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/playlists/"+created.ID, "")
	var got domain.Playlist
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(got.Tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(got.Tracks))
	}

	// rename via PATCH
	if rec := doRequest(t, h, http.MethodPatch, "/playlists/"+created.ID, `{"name":"Renamed"}`); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doRequest(t, h, http.MethodGet, "/playlists/"+created.ID, "")
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got.Name != "Renamed" || got.Description != "highway songs" {
		t.Fatalf("patch must shallow-merge: %+v", got)
	}

	// delete
	if rec := doRequest(t, h, http.MethodDelete, "/playlists/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodGet, "/playlists/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestHandler_CreatePlaylistValidation(t *testing.T) {
	h := newTestHandler(t)
	if rec := doRequest(t, h, http.MethodPost, "/playlists", `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing name, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodPost, "/playlists", `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestHandler_Likes(t *testing.T) {
	h := newTestHandler(t)
	trackBody := `{"id":"2","title":"Jo Tum Mere Ho","artist":"Prateek Kuhad"}`

	rec := doRequest(t, h, http.MethodPost, "/likes/toggle", trackBody)
	var status map[string]bool
	_ = json.Unmarshal(rec.Body.Bytes(), &status)
	if !status["liked"] {
		t.Fatal("expected track liked after first toggle")
	}

	rec = doRequest(t, h, http.MethodGet, "/likes/2", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &status)
	if !status["liked"] {
		t.Fatal("membership query disagrees with toggle")
	}

	rec = doRequest(t, h, http.MethodPost, "/likes/toggle", trackBody)
	_ = json.Unmarshal(rec.Body.Bytes(), &status)
	if status["liked"] {
		t.Fatal("expected toggle pair to restore the original state")
	}
}

func TestHandler_QueueAndPlayback(t *testing.T) {
	h := newTestHandler(t)

	queueBody := `{"tracks":[{"id":"1","audioUrl":"u1"},{"id":"2","audioUrl":"u2"},{"id":"3","audioUrl":"u3"}],"startIndex":1}`
	rec := doRequest(t, h, http.MethodPost, "/queue", queueBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state domain.PlaybackState
	rec = doRequest(t, h, http.MethodGet, "/playback", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	if state.CurrentIndex != 1 || !state.HasTrack() || state.CurrentTrack.ID != "2" {
		t.Fatalf("unexpected state after queue set: %+v", state)
	}
	if state.IsPlaying {
		t.Fatal("setting the queue must not start playback")
	}

	if rec := doRequest(t, h, http.MethodPost, "/playback/next", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	rec = doRequest(t, h, http.MethodGet, "/playback", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &state)
	if state.CurrentIndex != 2 {
		t.Fatalf("expected cursor advanced to 2, got %d", state.CurrentIndex)
	}

	if rec := doRequest(t, h, http.MethodDelete, "/queue/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric index, got %d", rec.Code)
	}
	if rec := doRequest(t, h, http.MethodDelete, "/queue/0", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doRequest(t, h, http.MethodGet, "/playback", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &state)
	if len(state.Queue) != 2 || state.CurrentIndex != 1 {
		t.Fatalf("unexpected state after removal: %+v", state)
	}
}

func TestHandler_VolumeAndRepeat(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/playback/volume", `{"volume":250}`)
	var state domain.PlaybackState
	_ = json.Unmarshal(rec.Body.Bytes(), &state)
	if state.Volume != 100 {
		t.Fatalf("expected volume clamped to 100, got %d", state.Volume)
	}

	rec = doRequest(t, h, http.MethodPost, "/playback/repeat", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &state)
	if state.RepeatMode != domain.RepeatAll {
		t.Fatalf("expected repeat all after one toggle, got %s", state.RepeatMode)
	}
}

func TestHandler_SearchNow(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/search?q=bengali", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var results domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(results.Tracks) == 0 {
		t.Fatal("expected matches for bengali")
	}
	for _, album := range results.Albums {
		if !strings.Contains(strings.ToLower(album), "bengali") {
			t.Fatalf("album %q surfaced without containing the token", album)
		}
	}
}

func TestHandler_RecentSearches(t *testing.T) {
	h := newTestHandler(t)

	doRequest(t, h, http.MethodPost, "/search/recent", `{"query":"a"}`)
	doRequest(t, h, http.MethodPost, "/search/recent", `{"query":"b"}`)
	rec := doRequest(t, h, http.MethodPost, "/search/recent", `{"query":"a"}`)

	var recent []string
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(recent) != 2 || recent[0] != "a" || recent[1] != "b" {
		t.Fatalf("expected [a b], got %v", recent)
	}

	if rec := doRequest(t, h, http.MethodDelete, "/search/recent", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doRequest(t, h, http.MethodGet, "/search/recent", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &recent)
	if len(recent) != 0 {
		t.Fatalf("expected empty log, got %v", recent)
	}
}

func TestHandler_DebouncedSearch(t *testing.T) {
	h := newTestHandler(t)

	if rec := doRequest(t, h, http.MethodPost, "/search/query", `{"query":"bengali"}`); rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		rec := doRequest(t, h, http.MethodGet, "/search/results", "")
		var resp struct {
			Query       string              `json:"query"`
			IsSearching bool                `json:"isSearching"`
			Results     domain.SearchResult `json:"results"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if !resp.IsSearching && len(resp.Results.Tracks) > 0 {
			if resp.Query != "bengali" {
				t.Fatalf("unexpected query: %q", resp.Query)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced search never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if rec := doRequest(t, h, http.MethodDelete, "/search/query", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
