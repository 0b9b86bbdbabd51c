package domain

// SearchResult groups everything a free-text query matched.
// Playlists stays empty here: playlist search belongs to the library
// surface, not the catalog index.
type SearchResult struct {
	Tracks    []Track    `json:"tracks"`
	Playlists []Playlist `json:"playlists"`
	Artists   []string   `json:"artists"`
	Albums    []string   `json:"albums"`
}

// EmptySearchResult returns a result with allocated, zero-length slices so
// callers and the JSON surface always see arrays rather than null.
func EmptySearchResult() SearchResult {
	return SearchResult{
		Tracks:    []Track{},
		Playlists: []Playlist{},
		Artists:   []string{},
		Albums:    []string{},
	}
}
