package domain

// RepeatMode controls what happens when the queue cursor runs past the end.
type RepeatMode string

const (
	RepeatOff RepeatMode = "off"
	RepeatAll RepeatMode = "all"
	RepeatOne RepeatMode = "one"
)

// Next returns the mode that follows in the off -> all -> one cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// PlaybackState is a snapshot of the playback engine.
type PlaybackState struct {
	CurrentTrack *Track     `json:"currentTrack"`
	IsPlaying    bool       `json:"isPlaying"`
	CurrentTime  float64    `json:"currentTime"`
	Duration     float64    `json:"duration"`
	Volume       int        `json:"volume"` // 0-100
	IsShuffled   bool       `json:"isShuffled"`
	RepeatMode   RepeatMode `json:"repeatMode"`
	Queue        []Track    `json:"queue"`
	CurrentIndex int        `json:"currentIndex"`
}

// HasTrack reports whether a track is loaded.
func (s PlaybackState) HasTrack() bool {
	return s.CurrentTrack != nil
}
