package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by BlobStore.Get when no value exists for a key.
var ErrKeyNotFound = errors.New("store: key not found")

// Storage keys for the durable collections. Each holds one JSON blob that is
// rewritten in full on every mutation.
const (
	KeyPlaylists      = "music-playlists"
	KeyLikedSongs     = "music-liked-songs"
	KeyRecentSearches = "music-recent-searches"
)

// BlobStore is durable string-keyed blob storage. Writes are best-effort from
// the services' point of view: a failed write is logged, never propagated.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
