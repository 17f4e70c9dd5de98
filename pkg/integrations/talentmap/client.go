package talentmap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/talentmap/pkg/buildinfo"
	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/integrations"
)

// DefaultBaseURL is the API root of a local platform backend.
const DefaultBaseURL = "http://localhost:8000/api"

const endpoint = "/talent-map"

// Options configures a [Client].
type Options struct {
	BaseURL string        // API root; empty means DefaultBaseURL
	Token   string        // bearer token, optional
	TTL     time.Duration // snapshot cache lifetime; zero means cache.SnapshotTTL
	Keyer   cache.Keyer   // nil means cache.DefaultKeyer
}

// Client fetches talent-map snapshots.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient creates a client caching snapshots in backend. A nil backend
// disables caching.
func NewClient(backend cache.Cache, opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.SnapshotTTL
	}
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}

	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
	}
	return &Client{
		Client:  integrations.NewClient(backend, "talentmap", ttl, headers),
		baseURL: baseURL,
		keyer:   keyer,
	}
}

// URL returns the snapshot endpoint.
func (c *Client) URL() string { return c.baseURL + endpoint }

// FetchSnapshot retrieves and normalizes the current snapshot.
//
// If refresh is true, the cache is bypassed and a fresh API call is made;
// the fresh snapshot still replaces the cached one.
//
// Returns:
//   - [integrations.ErrNotFound] if the endpoint does not exist
//   - [integrations.ErrUnauthorized] if the token is missing or rejected
//   - [integrations.ErrNetwork] for HTTP failures after retries
//   - [integrations.ErrInvalidResponse] if the body is not JSON
func (c *Client) FetchSnapshot(ctx context.Context, refresh bool) (distribution.Snapshot, error) {
	var snap distribution.Snapshot
	err := c.Cached(ctx, c.keyer.SnapshotKey(c.URL()), refresh, &snap, func() error {
		data, err := c.GetBytes(ctx, c.URL())
		if err != nil {
			return err
		}
		if snap, err = distribution.Parse(data); err != nil {
			return fmt.Errorf("%w: %v", integrations.ErrInvalidResponse, err)
		}
		return nil
	})
	if err != nil {
		return distribution.Snapshot{}, err
	}
	return snap, nil
}
