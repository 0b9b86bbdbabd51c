package domain

import "time"

// Playlist is a user-owned, ordered collection of tracks.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Tracks      []Track   `json:"tracks"`
	CreatedAt   time.Time `json:"createdAt"`
	IsLiked     bool      `json:"isLiked,omitempty"`
}

// ContainsTrack reports whether a track with the given id is already present.
func (p *Playlist) ContainsTrack(trackID string) bool {
	for _, t := range p.Tracks {
		if t.ID == trackID {
			return true
		}
	}
	return false
}

// AddTrack appends a track unless one with the same id is already present.
// It reports whether the track was added.
func (p *Playlist) AddTrack(t Track) bool {
	if p.ContainsTrack(t.ID) {
		return false
	}
	p.Tracks = append(p.Tracks, t)
	return true
}

// RemoveTrack drops every entry matching the given track id.
func (p *Playlist) RemoveTrack(trackID string) {
	kept := p.Tracks[:0]
	for _, t := range p.Tracks {
		if t.ID != trackID {
			kept = append(kept, t)
		}
	}
	p.Tracks = kept
}
