// Package remote provides a catalog adapter backed by an HTTP catalog
// service with client-credentials auth.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/chorus/internal/core/domain"
	"github.com/ewilliams-labs/chorus/internal/core/ports"
)

// Client is an HTTP client for the catalog adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetry overrides the retry budget and base backoff.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient constructs a catalog client. creds may be nil for an
// unauthenticated catalog; otherwise requests carry a client-credentials
// bearer token.
func NewClient(baseURL string, creds *clientcredentials.Config, opts ...Option) *Client {
	httpClient := http.DefaultClient
	if creds != nil {
		httpClient = creds.Client(context.Background())
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tracks retrieves the full track listing from the catalog service and maps
// it to domain tracks.
func (c *Client) Tracks(ctx context.Context) ([]domain.Track, error) {
	url := fmt.Sprintf("%s/tracks", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("catalog adapter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog adapter: status %d", resp.StatusCode)
	}

	var listing trackListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("catalog adapter: %w", err)
	}

	tracks := make([]domain.Track, 0, len(listing.Tracks))
	for _, wt := range listing.Tracks {
		tracks = append(tracks, wt.toDomain())
	}
	return tracks, nil
}
