package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// fakeMedia is an in-memory media handle for engine tests.
type fakeMedia struct {
	mu        sync.Mutex
	events    chan ports.MediaEvent
	closeOnce sync.Once

	playErr   error
	loadedURL string
	loads     int
	plays     int
	pauses    int
	position  float64
	volume    float64
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{events: make(chan ports.MediaEvent, 32)}
}

func (f *fakeMedia) Load(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadedURL = url
	f.loads++
	return nil
}

func (f *fakeMedia) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return f.playErr
}

func (f *fakeMedia) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
}

func (f *fakeMedia) Seek(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = seconds
}

func (f *fakeMedia) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakeMedia) Events() <-chan ports.MediaEvent { return f.events }

func (f *fakeMedia) Close() error {
	f.closeOnce.Do(func() { close(f.events) })
	return nil
}

func (f *fakeMedia) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func (f *fakeMedia) lastVolume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakeMedia) emit(ev ports.MediaEvent) {
	f.events <- ev
}

// mockStore is an in-memory blob store for library and search tests.
type mockStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return value, nil
}

func (m *mockStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for: %s", msg)
}

func testTracks(n int) []domain.Track {
	tracks := make([]domain.Track, n)
	for i := range tracks {
		id := string(rune('a' + i))
		tracks[i] = domain.Track{
			ID:       "t-" + id,
			Title:    "Track " + id,
			Artist:   "Artist " + id,
			Album:    "Album " + id,
			Duration: 100,
			AudioURL: "https://cdn.example.com/" + id + ".mp3",
		}
	}
	return tracks
}
