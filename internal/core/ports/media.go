package ports

// MediaEventKind identifies an event emitted by the media handle.
type MediaEventKind int

const (
	// MediaPosition reports playback position advancing.
	MediaPosition MediaEventKind = iota
	// MediaDuration reports the total duration once it is known.
	MediaDuration
	// MediaEnded reports the loaded media playing to completion.
	MediaEnded
)

// MediaEvent is one entry in the media handle's event stream.
// Position and Duration are in seconds; only the field matching Kind
// carries meaning.
type MediaEvent struct {
	Kind     MediaEventKind
	Position float64
	Duration float64
}

// MediaPlayer is the opaque playback handle the engine drives. The engine is
// defined entirely against this contract and does not care how the audio is
// decoded or rendered.
type MediaPlayer interface {
	// Load replaces the loaded media with the audio at url.
	Load(url string) error

	// Play requests playback to start and blocks until the platform accepts
	// or refuses. The engine calls it from its own goroutine, so a refusal
	// never stalls a caller.
	Play() error

	// Pause stops playback. Pausing is assumed to always succeed.
	Pause()

	// Seek moves the playback position, in seconds.
	Seek(seconds float64)

	// SetVolume sets the output volume as a 0.0-1.0 scalar.
	SetVolume(v float64)

	// Events returns the handle's event stream. The channel is closed by Close.
	Events() <-chan MediaEvent

	// Close releases the handle and closes the event stream.
	Close() error
}
