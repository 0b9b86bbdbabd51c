package domain

// Track represents a musical track in the domain layer.
// Identity is ID; every other field is display metadata.
type Track struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"` // seconds
	AudioURL string  `json:"audioUrl"`
	ImageURL string  `json:"imageUrl"`
	Genre    string  `json:"genre,omitempty"`
	Year     int     `json:"year,omitempty"`
}
