//go:build (linux && cgo) || windows || darwin

package speaker

import (
	"bytes"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// positionInterval is how often the player reports playback position.
const positionInterval = 500 * time.Millisecond

// Player renders mp3 audio through the system speaker using beep.
type Player struct {
	mu sync.Mutex

	fetch       FetchFunc
	sampleRate  beep.SampleRate
	initialized bool

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	vol      *effects.Volume
	started  bool // current streamer has been handed to the speaker
	volume   float64

	evMu      sync.Mutex
	evClosed  bool
	events    chan ports.MediaEvent
	done      chan struct{}
	closeOnce sync.Once
}

// compile-time interface assertion
var _ ports.MediaPlayer = (*Player)(nil)

// NewPlayer creates a speaker-backed player. fetch may be nil, in which case
// audio is downloaded directly over HTTP.
func NewPlayer(fetch FetchFunc) *Player {
	if fetch == nil {
		fetch = HTTPFetch
	}
	p := &Player{
		fetch:      fetch,
		sampleRate: beep.SampleRate(44100), // Standard sample rate
		volume:     1,
		events:     make(chan ports.MediaEvent, 16),
		done:       make(chan struct{}),
	}
	go p.reportPosition()
	return p
}

// Events returns the player's event stream.
func (p *Player) Events() <-chan ports.MediaEvent {
	return p.events
}

// Load fetches and decodes the audio at url, replacing any loaded media.
func (p *Player) Load(url string) error {
	data, err := p.fetch(url)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(nopCloser{bytes.NewReader(data)})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	p.streamer = streamer
	p.format = format
	p.started = false

	// Resample to the speaker's fixed rate and wrap for pause and volume
	// control.
	resampled := beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	p.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	p.vol = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolumeLocked()

	p.emit(ports.MediaEvent{
		Kind:     ports.MediaDuration,
		Duration: format.SampleRate.D(streamer.Len()).Seconds(),
	})
	return nil
}

// Play starts or resumes playback of the loaded media.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return ErrNoMedia
	}
	if !p.initialized {
		if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/10)); err != nil {
			return err
		}
		p.initialized = true
	}

	if !p.started {
		p.started = true
		speaker.Play(beep.Seq(p.vol, beep.Callback(p.onEnded)))
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// onEnded runs inside the speaker's streaming goroutine; hand off so we never
// take p.mu while the speaker lock is held.
func (p *Player) onEnded() {
	go func() {
		p.mu.Lock()
		p.started = false
		p.mu.Unlock()
		p.emit(ports.MediaEvent{Kind: ports.MediaEnded})
	}()
}

// Pause halts playback without unloading the media.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Seek moves the playback position, in seconds.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return
	}
	sample := p.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if sample < 0 {
		sample = 0
	}
	if max := p.streamer.Len(); sample > max {
		sample = max
	}
	speaker.Lock()
	err := p.streamer.Seek(sample)
	speaker.Unlock()
	_ = err // a failed seek leaves the position unchanged
}

// SetVolume sets output volume as a 0-1 scalar.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.vol == nil {
		return
	}
	speaker.Lock()
	p.applyVolumeLocked()
	speaker.Unlock()
}

// applyVolumeLocked maps the linear 0-1 scalar onto beep's logarithmic
// volume. Caller holds p.mu (and the speaker lock once playing).
func (p *Player) applyVolumeLocked() {
	if p.vol == nil {
		return
	}
	if p.volume <= 0 {
		p.vol.Silent = true
		return
	}
	p.vol.Silent = false
	p.vol.Volume = math.Log2(p.volume)
}

// Close stops playback and closes the event stream.
func (p *Player) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		p.stopLocked()
		p.mu.Unlock()
		p.evMu.Lock()
		p.evClosed = true
		close(p.events)
		p.evMu.Unlock()
	})
	return nil
}

// stopLocked tears down the current streamer. Caller holds p.mu.
func (p *Player) stopLocked() {
	if p.ctrl != nil && p.initialized {
		speaker.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.vol = nil
	p.started = false
}

// reportPosition emits the playback position while media is playing.
func (p *Player) reportPosition() {
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.streamer == nil || p.ctrl == nil {
				p.mu.Unlock()
				continue
			}
			speaker.Lock()
			paused := p.ctrl.Paused
			pos := p.format.SampleRate.D(p.streamer.Position()).Seconds()
			speaker.Unlock()
			p.mu.Unlock()
			if paused {
				continue
			}
			p.emit(ports.MediaEvent{Kind: ports.MediaPosition, Position: pos})
		}
	}
}

// emit sends without blocking; a slow consumer just misses ticks.
func (p *Player) emit(ev ports.MediaEvent) {
	p.evMu.Lock()
	defer p.evMu.Unlock()
	if p.evClosed {
		return
	}
	select {
	case p.events <- ev:
	default:
	}
}

type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }
