// Package speaker implements the media player port on top of beep, rendering
// audio through the system speaker. On platforms without audio support the
// stub build returns ErrAudioUnavailable from Play, which the engine treats
// as a platform refusal.
package speaker

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrAudioUnavailable indicates this build has no audio output.
var ErrAudioUnavailable = errors.New("speaker: audio output unavailable")

// ErrNoMedia indicates Play was requested before any Load.
var ErrNoMedia = errors.New("speaker: no media loaded")

// FetchFunc resolves an audio URL to its raw bytes. The default fetches over
// HTTP; the player wiring usually routes through the prefetch cache first.
type FetchFunc func(url string) ([]byte, error)

// HTTPFetch downloads the audio at url.
func HTTPFetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("speaker: fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speaker: fetch audio: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speaker: fetch audio: %w", err)
	}
	return data, nil
}
