package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StreamEvents handles GET /events as a server-sent-events stream. Every
// mutation on any of the three state containers pushes a fresh playback
// snapshot; clients re-read collections they care about over the REST surface.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Coalesce bursts: a full channel already implies a pending wakeup.
	changed := make(chan struct{}, 1)
	ping := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	unsubEngine := h.engine.Subscribe(ping)
	defer unsubEngine()
	unsubLibrary := h.library.Subscribe(ping)
	defer unsubLibrary()
	unsubSearch := h.search.Subscribe(ping)
	defer unsubSearch()

	send := func() bool {
		payload, err := json.Marshal(h.engine.State())
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			if !send() {
				return
			}
		}
	}
}
