package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// placeholderArtURL builds the generated cover for a new playlist from the
// first letter of its name.
func placeholderArtURL(name string) string {
	initial := ""
	for _, r := range name {
		initial = string(unicode.ToUpper(r))
		break
	}
	return fmt.Sprintf("https://via.placeholder.com/300x300/f97316/ffffff?text=%s", url.QueryEscape(initial))
}

// Library owns the user's playlists and liked-songs set, independent of
// playback. Every mutation rewrites the affected collection in the blob
// store; store failures are logged and never surfaced to callers.
type Library struct {
	mu        sync.Mutex
	store     ports.BlobStore
	playlists []domain.Playlist
	liked     []domain.Track

	subs   map[int]func()
	nextID int
}

// NewLibrary loads both collections from the store. Malformed or missing
// blobs start the collection empty; loading never fails.
func NewLibrary(store ports.BlobStore) *Library {
	l := &Library{
		store:     store,
		playlists: []domain.Playlist{},
		liked:     []domain.Track{},
		subs:      map[int]func(){},
	}
	l.load()
	return l
}

func (l *Library) load() {
	ctx := context.Background()
	if raw, err := l.store.Get(ctx, ports.KeyPlaylists); err == nil {
		var playlists []domain.Playlist
		if err := json.Unmarshal(raw, &playlists); err != nil {
			log.Printf("WARN library: malformed playlists blob, starting empty: %v", err)
		} else {
			l.playlists = playlists
		}
	} else if !errors.Is(err, ports.ErrKeyNotFound) {
		log.Printf("WARN library: load playlists: %v", err)
	}

	if raw, err := l.store.Get(ctx, ports.KeyLikedSongs); err == nil {
		var liked []domain.Track
		if err := json.Unmarshal(raw, &liked); err != nil {
			log.Printf("WARN library: malformed liked-songs blob, starting empty: %v", err)
		} else {
			l.liked = liked
		}
	} else if !errors.Is(err, ports.ErrKeyNotFound) {
		log.Printf("WARN library: load liked songs: %v", err)
	}
}

// Subscribe registers a callback invoked synchronously after every mutation.
// The returned function unsubscribes.
func (l *Library) Subscribe(fn func()) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// Playlists returns a snapshot of the playlist collection.
func (l *Library) Playlists() []domain.Playlist {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Playlist, len(l.playlists))
	for i, p := range l.playlists {
		out[i] = p
		out[i].Tracks = slices.Clone(p.Tracks)
	}
	return out
}

// Playlist looks up a playlist by id.
func (l *Library) Playlist(id string) (domain.Playlist, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.playlists {
		if p.ID == id {
			p.Tracks = slices.Clone(p.Tracks)
			return p, true
		}
	}
	return domain.Playlist{}, false
}

// LikedSongs returns a snapshot of the liked-songs set in insertion order.
func (l *Library) LikedSongs() []domain.Track {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.liked)
}

// CreatePlaylist builds an empty playlist with a generated id and placeholder
// art, stores it, and returns it.
func (l *Library) CreatePlaylist(name, description string) domain.Playlist {
	p := domain.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ImageURL:    placeholderArtURL(name),
		Tracks:      []domain.Track{},
		CreatedAt:   time.Now().UTC(),
	}
	l.mu.Lock()
	l.playlists = append(l.playlists, p)
	l.persistPlaylistsLocked()
	l.mu.Unlock()
	l.notify()

	p.Tracks = slices.Clone(p.Tracks)
	return p
}

// DeletePlaylist removes the playlist with the given id. Unknown ids are a
// no-op.
func (l *Library) DeletePlaylist(id string) {
	l.mu.Lock()
	kept := l.playlists[:0]
	for _, p := range l.playlists {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	l.playlists = kept
	l.persistPlaylistsLocked()
	l.mu.Unlock()
	l.notify()
}

// AddTrackToPlaylist appends the track to the named playlist unless a track
// with the same id is already there. Unknown playlist ids are a no-op.
func (l *Library) AddTrackToPlaylist(playlistID string, track domain.Track) {
	l.mu.Lock()
	for i := range l.playlists {
		if l.playlists[i].ID == playlistID {
			l.playlists[i].AddTrack(track)
			break
		}
	}
	l.persistPlaylistsLocked()
	l.mu.Unlock()
	l.notify()
}

// RemoveTrackFromPlaylist removes every entry matching trackID from the named
// playlist.
func (l *Library) RemoveTrackFromPlaylist(playlistID, trackID string) {
	l.mu.Lock()
	for i := range l.playlists {
		if l.playlists[i].ID == playlistID {
			l.playlists[i].RemoveTrack(trackID)
			break
		}
	}
	l.persistPlaylistsLocked()
	l.mu.Unlock()
	l.notify()
}

// PlaylistUpdate carries the fields UpdatePlaylist merges; nil fields are
// left untouched.
type PlaylistUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsLiked     *bool   `json:"isLiked,omitempty"`
}

// UpdatePlaylist shallow-merges the given fields into the matching playlist.
// Unknown ids are a no-op.
func (l *Library) UpdatePlaylist(id string, update PlaylistUpdate) {
	l.mu.Lock()
	for i := range l.playlists {
		if l.playlists[i].ID != id {
			continue
		}
		if update.Name != nil {
			l.playlists[i].Name = *update.Name
		}
		if update.Description != nil {
			l.playlists[i].Description = *update.Description
		}
		if update.ImageURL != nil {
			l.playlists[i].ImageURL = *update.ImageURL
		}
		if update.IsLiked != nil {
			l.playlists[i].IsLiked = *update.IsLiked
		}
		break
	}
	l.persistPlaylistsLocked()
	l.mu.Unlock()
	l.notify()
}

// ToggleLikeTrack adds the track to the liked set if absent, otherwise
// removes it. Membership is keyed by track id.
func (l *Library) ToggleLikeTrack(track domain.Track) {
	l.mu.Lock()
	liked := slices.ContainsFunc(l.liked, func(t domain.Track) bool {
		return t.ID == track.ID
	})
	if liked {
		kept := l.liked[:0]
		for _, t := range l.liked {
			if t.ID != track.ID {
				kept = append(kept, t)
			}
		}
		l.liked = kept
	} else {
		l.liked = append(l.liked, track)
	}
	l.persistLikedLocked()
	l.mu.Unlock()
	l.notify()
}

// IsTrackLiked reports membership in the liked set.
func (l *Library) IsTrackLiked(trackID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.liked, func(t domain.Track) bool {
		return t.ID == trackID
	})
}

// persistPlaylistsLocked rewrites the playlist blob. Caller holds l.mu.
func (l *Library) persistPlaylistsLocked() {
	raw, err := json.Marshal(l.playlists)
	if err != nil {
		log.Printf("WARN library: marshal playlists: %v", err)
		return
	}
	if err := l.store.Put(context.Background(), ports.KeyPlaylists, raw); err != nil {
		log.Printf("WARN library: persist playlists: %v", err)
	}
}

// persistLikedLocked rewrites the liked-songs blob. Caller holds l.mu.
func (l *Library) persistLikedLocked() {
	raw, err := json.Marshal(l.liked)
	if err != nil {
		log.Printf("WARN library: marshal liked songs: %v", err)
		return
	}
	if err := l.store.Put(context.Background(), ports.KeyLikedSongs, raw); err != nil {
		log.Printf("WARN library: persist liked songs: %v", err)
	}
}

func (l *Library) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
