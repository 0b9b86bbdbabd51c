package remote

import "github.com/ewilliams-labs/chorus/internal/core/domain"

// trackListing represents the catalog service's track listing response.
type trackListing struct {
	Tracks []wireTrack `json:"tracks"`
}

// wireTrack represents one track in the catalog service's wire format.
type wireTrack struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album,omitempty"`
	Duration float64 `json:"duration"`
	AudioURL string  `json:"audioUrl"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Genre    string  `json:"genre,omitempty"`
	Year     int     `json:"year,omitempty"`
}

// toDomain converts a wireTrack to a domain.Track.
func (wt wireTrack) toDomain() domain.Track {
	return domain.Track{
		ID:       wt.ID,
		Title:    wt.Title,
		Artist:   wt.Artist,
		Album:    wt.Album,
		Duration: wt.Duration,
		AudioURL: wt.AudioURL,
		ImageURL: wt.ImageURL,
		Genre:    wt.Genre,
		Year:     wt.Year,
	}
}
