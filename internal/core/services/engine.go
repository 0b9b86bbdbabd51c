// Package services holds the core state containers: playback engine,
// library store, and search index. Each owns its state exclusively and
// notifies subscribers synchronously after every mutation.
package services

import (
	"log"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// DefaultVolume is the engine's initial volume on the 0-100 scale.
const DefaultVolume = 75

// Prefetcher warms the audio for a track the cursor is about to reach.
type Prefetcher interface {
	Prefetch(trackID, audioURL string)
}

// Engine is the single source of truth for what is playing, whether it is
// playing, and what plays next. All mutations go through its methods; shared
// state is never handed out by reference.
type Engine struct {
	mu       sync.Mutex
	media    ports.MediaPlayer
	prefetch Prefetcher

	current  *domain.Track
	playing  bool
	position float64
	duration float64
	volume   int
	shuffled bool
	repeat   domain.RepeatMode

	queue    []domain.Track
	original []domain.Track // pre-shuffle order, restored when shuffle turns off
	index    int

	subs   map[int]func()
	nextID int

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithPrefetcher wires a prefetcher for upcoming queue entries.
func WithPrefetcher(p Prefetcher) EngineOption {
	return func(e *Engine) { e.prefetch = p }
}

// NewEngine constructs the playback engine around a media handle and starts
// consuming its event stream. Call Close to detach.
func NewEngine(media ports.MediaPlayer, opts ...EngineOption) *Engine {
	e := &Engine{
		media:  media,
		volume: DefaultVolume,
		repeat: domain.RepeatOff,
		subs:   map[int]func(){},
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	media.SetVolume(float64(e.volume) / 100)

	e.wg.Add(1)
	go e.consumeEvents()
	return e
}

// Close detaches from the media handle's event stream and closes the handle.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.done)
		err = e.media.Close()
		e.wg.Wait()
	})
	return err
}

// Subscribe registers a callback invoked synchronously after every mutation.
// The returned function unsubscribes.
func (e *Engine) Subscribe(fn func()) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// State returns a snapshot of the playback state. The queue is cloned so the
// caller cannot mutate engine-owned memory.
func (e *Engine) State() domain.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()
	var current *domain.Track
	if e.current != nil {
		t := *e.current
		current = &t
	}
	return domain.PlaybackState{
		CurrentTrack: current,
		IsPlaying:    e.playing,
		CurrentTime:  e.position,
		Duration:     e.duration,
		Volume:       e.volume,
		IsShuffled:   e.shuffled,
		RepeatMode:   e.repeat,
		Queue:        slices.Clone(e.queue),
		CurrentIndex: e.index,
	}
}

// Play loads the given track if it differs by id from the loaded one, then
// requests playback to start. The start request is fire-and-forget: IsPlaying
// flips true only after the platform confirms, and a refusal is logged, never
// surfaced.
func (e *Engine) Play(track *domain.Track) {
	e.mu.Lock()
	if track != nil && (e.current == nil || e.current.ID != track.ID) {
		t := *track
		e.current = &t
		e.position = 0
		if err := e.media.Load(t.AudioURL); err != nil {
			log.Printf("WARN engine: load track %s: %v", t.ID, err)
			e.mu.Unlock()
			e.notify()
			return
		}
	}
	e.mu.Unlock()
	e.notify()
	go e.requestStart()
}

// requestStart asks the media handle to start and records success.
func (e *Engine) requestStart() {
	if err := e.media.Play(); err != nil {
		log.Printf("WARN engine: playback refused: %v", err)
		return
	}
	e.mu.Lock()
	e.playing = true
	e.mu.Unlock()
	e.notify()
}

// Pause stops playback. Stopping is assumed synchronous and always succeeds.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.media.Pause()
	e.playing = false
	e.mu.Unlock()
	e.notify()
}

// TogglePlayPause pauses when playing, otherwise resumes the current track.
func (e *Engine) TogglePlayPause() {
	e.mu.Lock()
	playing := e.playing
	e.mu.Unlock()
	if playing {
		e.Pause()
	} else {
		e.Play(nil)
	}
}

// NextTrack advances the cursor. Past the end it wraps under repeat-all,
// otherwise playback stops and the cursor stays on the last index.
func (e *Engine) NextTrack() {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return
	}
	next := e.index + 1
	if next >= len(e.queue) {
		if e.repeat != domain.RepeatAll {
			e.media.Pause()
			e.playing = false
			e.mu.Unlock()
			e.notify()
			return
		}
		next = 0
	}
	e.index = next
	t := e.queue[next]
	e.prefetchUpcomingLocked()
	e.mu.Unlock()
	e.Play(&t)
}

// PreviousTrack steps the cursor back, wrapping to the last index from zero
// regardless of repeat mode.
func (e *Engine) PreviousTrack() {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return
	}
	prev := e.index - 1
	if prev < 0 {
		prev = len(e.queue) - 1
	}
	e.index = prev
	t := e.queue[prev]
	e.prefetchUpcomingLocked()
	e.mu.Unlock()
	e.Play(&t)
}

// SeekTo moves the playback position, clamped to [0, duration].
func (e *Engine) SeekTo(seconds float64) {
	e.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if e.duration > 0 && seconds > e.duration {
		seconds = e.duration
	}
	e.media.Seek(seconds)
	e.position = seconds
	e.mu.Unlock()
	e.notify()
}

// SetVolume stores the 0-100 volume, clamped, and forwards the 0-1 scalar to
// the media handle.
func (e *Engine) SetVolume(v int) {
	e.mu.Lock()
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	e.volume = v
	e.media.SetVolume(float64(v) / 100)
	e.mu.Unlock()
	e.notify()
}

// ToggleShuffle shuffles the live queue with a uniform permutation, keeping a
// shadow copy of the previous order; toggling again restores it. The cursor
// follows the current track in both directions.
func (e *Engine) ToggleShuffle() {
	e.mu.Lock()
	currentID := ""
	if e.index >= 0 && e.index < len(e.queue) {
		currentID = e.queue[e.index].ID
	}
	if !e.shuffled {
		e.original = slices.Clone(e.queue)
		shuffled := slices.Clone(e.queue)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		e.queue = shuffled
	} else {
		e.queue = slices.Clone(e.original)
	}
	e.index = indexOfTrack(e.queue, currentID)
	e.shuffled = !e.shuffled
	e.mu.Unlock()
	e.notify()
}

// ToggleRepeat cycles off -> all -> one -> off.
func (e *Engine) ToggleRepeat() {
	e.mu.Lock()
	e.repeat = e.repeat.Next()
	e.mu.Unlock()
	e.notify()
}

// AddToQueue appends a track to the end of the live queue. Duplicates are
// allowed.
func (e *Engine) AddToQueue(track domain.Track) {
	e.mu.Lock()
	e.queue = append(e.queue, track)
	e.mu.Unlock()
	e.notify()
}

// SetQueue replaces the live queue and its shadow copy, points the cursor at
// startIndex, and loads the track there as current without starting playback.
// A stale startIndex is clamped into range so later cursor moves stay valid.
func (e *Engine) SetQueue(tracks []domain.Track, startIndex int) {
	e.mu.Lock()
	e.queue = slices.Clone(tracks)
	e.original = slices.Clone(tracks)
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > len(e.queue)-1 && len(e.queue) > 0 {
		startIndex = len(e.queue) - 1
	}
	e.index = startIndex
	if startIndex < len(e.queue) {
		t := e.queue[startIndex]
		if e.current == nil || e.current.ID != t.ID {
			e.current = &t
			e.position = 0
			if err := e.media.Load(t.AudioURL); err != nil {
				log.Printf("WARN engine: load track %s: %v", t.ID, err)
			}
		}
	}
	e.prefetchUpcomingLocked()
	e.mu.Unlock()
	e.notify()
}

// RemoveFromQueue drops the entry at index. Removing before the cursor shifts
// it back so the same track stays current; removing the current entry clamps
// the cursor and starts the track now at that position. Emptying the queue
// stops playback and clears the current track.
func (e *Engine) RemoveFromQueue(index int) {
	e.mu.Lock()
	if index < 0 || index >= len(e.queue) {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue[:index:index], e.queue[index+1:]...)

	var toPlay *domain.Track
	switch {
	case index < e.index:
		e.index--
	case index == e.index:
		if len(e.queue) == 0 {
			e.media.Pause()
			e.playing = false
			e.current = nil
			e.position = 0
			break
		}
		if e.index > len(e.queue)-1 {
			e.index = len(e.queue) - 1
		}
		t := e.queue[e.index]
		toPlay = &t
	}
	e.mu.Unlock()
	e.notify()
	if toPlay != nil {
		e.Play(toPlay)
	}
}

// consumeEvents mirrors the media handle's event stream into engine state.
func (e *Engine) consumeEvents() {
	defer e.wg.Done()
	events := e.media.Events()
	for {
		select {
		case <-e.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			e.handleMediaEvent(ev)
		}
	}
}

func (e *Engine) handleMediaEvent(ev ports.MediaEvent) {
	switch ev.Kind {
	case ports.MediaPosition:
		e.mu.Lock()
		e.position = ev.Position
		e.mu.Unlock()
		e.notify()
	case ports.MediaDuration:
		e.mu.Lock()
		e.duration = ev.Duration
		e.mu.Unlock()
		e.notify()
	case ports.MediaEnded:
		e.mu.Lock()
		repeat := e.repeat
		e.mu.Unlock()
		if repeat == domain.RepeatOne {
			e.media.Seek(0)
			e.mu.Lock()
			e.position = 0
			e.mu.Unlock()
			e.notify()
			e.requestStart()
			return
		}
		e.NextTrack()
	}
}

// prefetchUpcomingLocked submits the next queue entry to the prefetcher.
// Caller holds e.mu.
func (e *Engine) prefetchUpcomingLocked() {
	if e.prefetch == nil || len(e.queue) == 0 {
		return
	}
	next := e.index + 1
	if next >= len(e.queue) {
		if e.repeat != domain.RepeatAll {
			return
		}
		next = 0
	}
	t := e.queue[next]
	e.prefetch.Prefetch(t.ID, t.AudioURL)
}

// notify invokes subscribers outside the lock so they can read state freely.
func (e *Engine) notify() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func indexOfTrack(tracks []domain.Track, id string) int {
	_, idx, found := lo.FindIndexOf(tracks, func(t domain.Track) bool {
		return t.ID == id
	})
	if !found {
		return 0
	}
	return idx
}
