//go:build !((linux && cgo) || windows || darwin)

package speaker

import (
	"sync"

	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = false

// Player is the no-audio stub. Load succeeds so state stays coherent, but
// every start request is refused with ErrAudioUnavailable.
type Player struct {
	events    chan ports.MediaEvent
	closeOnce sync.Once
}

// compile-time interface assertion
var _ ports.MediaPlayer = (*Player)(nil)

// NewPlayer creates the stub player. fetch is accepted for interface parity
// and ignored.
func NewPlayer(fetch FetchFunc) *Player {
	return &Player{events: make(chan ports.MediaEvent)}
}

func (p *Player) Load(url string) error { return nil }

func (p *Player) Play() error { return ErrAudioUnavailable }

func (p *Player) Pause() {}

func (p *Player) Seek(seconds float64) {}

func (p *Player) SetVolume(v float64) {}

func (p *Player) Events() <-chan ports.MediaEvent { return p.events }

func (p *Player) Close() error {
	p.closeOnce.Do(func() { close(p.events) })
	return nil
}
