package ports

import (
	"context"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
)

// Catalog supplies the read-only track collection the search index and the
// UI browse over. The core only relies on stable unique IDs and the four
// text fields used for matching.
type Catalog interface {
	Tracks(ctx context.Context) ([]domain.Track, error)
}
