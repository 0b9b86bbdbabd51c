package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/services"
)

// ListPlaylists handles GET /playlists.
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.library.Playlists())
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlaylist handles POST /playlists.
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "playlist name is required", http.StatusBadRequest)
		return
	}
	playlist := h.library.CreatePlaylist(req.Name, req.Description)
	writeJSON(w, http.StatusCreated, playlist)
}

// GetPlaylist handles GET /playlists/{id}.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.library.Playlist(r.PathValue("id"))
	if !ok {
		http.Error(w, "playlist not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// UpdatePlaylist handles PATCH /playlists/{id}.
func (h *Handler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var update services.PlaylistUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.library.UpdatePlaylist(r.PathValue("id"), update)
	w.WriteHeader(http.StatusNoContent)
}

// DeletePlaylist handles DELETE /playlists/{id}.
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	h.library.DeletePlaylist(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// AddTrackToPlaylist handles POST /playlists/{id}/tracks.
func (h *Handler) AddTrackToPlaylist(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.library.AddTrackToPlaylist(r.PathValue("id"), track)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveTrackFromPlaylist handles DELETE /playlists/{id}/tracks/{trackId}.
func (h *Handler) RemoveTrackFromPlaylist(w http.ResponseWriter, r *http.Request) {
	h.library.RemoveTrackFromPlaylist(r.PathValue("id"), r.PathValue("trackId"))
	w.WriteHeader(http.StatusNoContent)
}

// ListLikedSongs handles GET /likes.
func (h *Handler) ListLikedSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.library.LikedSongs())
}

// ToggleLikeTrack handles POST /likes/toggle.
func (h *Handler) ToggleLikeTrack(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.library.ToggleLikeTrack(track)
	writeJSON(w, http.StatusOK, map[string]bool{"liked": h.library.IsTrackLiked(track.ID)})
}

// IsTrackLiked handles GET /likes/{trackId}.
func (h *Handler) IsTrackLiked(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"liked": h.library.IsTrackLiked(r.PathValue("trackId"))})
}
