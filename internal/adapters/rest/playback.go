package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
)

// GetPlaybackState handles GET /playback.
func (h *Handler) GetPlaybackState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.State())
}

// Play handles POST /playback/play. The body may carry a track to switch to;
// an empty body resumes the current track.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	err := json.NewDecoder(r.Body).Decode(&track)
	switch {
	case errors.Is(err, io.EOF):
		h.engine.Play(nil)
	case err != nil:
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	default:
		h.engine.Play(&track)
	}
	writeJSON(w, http.StatusAccepted, h.engine.State())
}

// Pause handles POST /playback/pause.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	writeJSON(w, http.StatusOK, h.engine.State())
}

// TogglePlayPause handles POST /playback/toggle.
func (h *Handler) TogglePlayPause(w http.ResponseWriter, r *http.Request) {
	h.engine.TogglePlayPause()
	writeJSON(w, http.StatusAccepted, h.engine.State())
}

// NextTrack handles POST /playback/next.
func (h *Handler) NextTrack(w http.ResponseWriter, r *http.Request) {
	h.engine.NextTrack()
	writeJSON(w, http.StatusAccepted, h.engine.State())
}

// PreviousTrack handles POST /playback/previous.
func (h *Handler) PreviousTrack(w http.ResponseWriter, r *http.Request) {
	h.engine.PreviousTrack()
	writeJSON(w, http.StatusAccepted, h.engine.State())
}

type seekRequest struct {
	Time float64 `json:"time"`
}

// SeekTo handles POST /playback/seek.
func (h *Handler) SeekTo(w http.ResponseWriter, r *http.Request) {
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.engine.SeekTo(req.Time)
	writeJSON(w, http.StatusOK, h.engine.State())
}

type volumeRequest struct {
	Volume int `json:"volume"`
}

// SetVolume handles POST /playback/volume.
func (h *Handler) SetVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.engine.SetVolume(req.Volume)
	writeJSON(w, http.StatusOK, h.engine.State())
}

// ToggleShuffle handles POST /playback/shuffle.
func (h *Handler) ToggleShuffle(w http.ResponseWriter, r *http.Request) {
	h.engine.ToggleShuffle()
	writeJSON(w, http.StatusOK, h.engine.State())
}

// ToggleRepeat handles POST /playback/repeat.
func (h *Handler) ToggleRepeat(w http.ResponseWriter, r *http.Request) {
	h.engine.ToggleRepeat()
	writeJSON(w, http.StatusOK, h.engine.State())
}

type setQueueRequest struct {
	Tracks     []domain.Track `json:"tracks"`
	StartIndex int            `json:"startIndex"`
}

// SetQueue handles POST /queue.
func (h *Handler) SetQueue(w http.ResponseWriter, r *http.Request) {
	var req setQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.engine.SetQueue(req.Tracks, req.StartIndex)
	writeJSON(w, http.StatusOK, h.engine.State())
}

// AddToQueue handles POST /queue/tracks.
func (h *Handler) AddToQueue(w http.ResponseWriter, r *http.Request) {
	var track domain.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.engine.AddToQueue(track)
	writeJSON(w, http.StatusOK, h.engine.State())
}

// RemoveFromQueue handles DELETE /queue/{index}. Out-of-range indexes are a
// no-op, mirroring the engine's contract.
func (h *Handler) RemoveFromQueue(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid queue index", http.StatusBadRequest)
		return
	}
	h.engine.RemoveFromQueue(index)
	writeJSON(w, http.StatusOK, h.engine.State())
}
