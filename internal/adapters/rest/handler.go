// Package rest is the driving HTTP adapter. It exposes every core operation
// so a front end (or curl) can drive the player; it holds no state of its own.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/services"
)

// Handler manages the HTTP interface for the player core.
type Handler struct {
	engine  *services.Engine
	library *services.Library
	search  *services.Search
	tracks  []domain.Track // catalog snapshot for browsing
	router  *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(engine *services.Engine, library *services.Library, search *services.Search, tracks []domain.Track) *Handler {
	h := &Handler{
		engine:  engine,
		library: library,
		search:  search,
		tracks:  tracks,
		router:  http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)
	h.router.HandleFunc("GET /tracks", h.ListTracks)
	h.router.HandleFunc("GET /events", h.StreamEvents)

	// Playback transport
	h.router.HandleFunc("GET /playback", h.GetPlaybackState)
	h.router.HandleFunc("POST /playback/play", h.Play)
	h.router.HandleFunc("POST /playback/pause", h.Pause)
	h.router.HandleFunc("POST /playback/toggle", h.TogglePlayPause)
	h.router.HandleFunc("POST /playback/next", h.NextTrack)
	h.router.HandleFunc("POST /playback/previous", h.PreviousTrack)
	h.router.HandleFunc("POST /playback/seek", h.SeekTo)
	h.router.HandleFunc("POST /playback/volume", h.SetVolume)
	h.router.HandleFunc("POST /playback/shuffle", h.ToggleShuffle)
	h.router.HandleFunc("POST /playback/repeat", h.ToggleRepeat)

	// Queue editing
	h.router.HandleFunc("POST /queue", h.SetQueue)
	h.router.HandleFunc("POST /queue/tracks", h.AddToQueue)
	h.router.HandleFunc("DELETE /queue/{index}", h.RemoveFromQueue)

	// Library
	h.router.HandleFunc("GET /playlists", h.ListPlaylists)
	h.router.HandleFunc("POST /playlists", h.CreatePlaylist)
	h.router.HandleFunc("GET /playlists/{id}", h.GetPlaylist)
	h.router.HandleFunc("PATCH /playlists/{id}", h.UpdatePlaylist)
	h.router.HandleFunc("DELETE /playlists/{id}", h.DeletePlaylist)
	h.router.HandleFunc("POST /playlists/{id}/tracks", h.AddTrackToPlaylist)
	h.router.HandleFunc("DELETE /playlists/{id}/tracks/{trackId}", h.RemoveTrackFromPlaylist)
	h.router.HandleFunc("GET /likes", h.ListLikedSongs)
	h.router.HandleFunc("POST /likes/toggle", h.ToggleLikeTrack)
	h.router.HandleFunc("GET /likes/{trackId}", h.IsTrackLiked)

	// Search
	h.router.HandleFunc("GET /search", h.SearchNow)
	h.router.HandleFunc("POST /search/query", h.SetSearchQuery)
	h.router.HandleFunc("DELETE /search/query", h.ClearSearch)
	h.router.HandleFunc("GET /search/results", h.GetSearchResults)
	h.router.HandleFunc("GET /search/recent", h.ListRecentSearches)
	h.router.HandleFunc("POST /search/recent", h.AddToRecentSearches)
	h.router.HandleFunc("DELETE /search/recent", h.ClearRecentSearches)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTracks returns the browseable catalog.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracks)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
