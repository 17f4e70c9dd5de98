// Package cache stores fetched snapshots and rendered artifacts.
//
// Three backends implement [Cache]: [NullCache] (caching disabled),
// [FileCache] (CLI, one JSON file per entry under ~/.cache/talentmap) and
// [RedisCache] (server, shared across instances). Keys come from a [Keyer]
// so callers never build them by hand.
//
// The layout itself is never cached; it is recomputed from the snapshot on
// every request. Artifacts are keyed by everything that affects their bytes.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default TTLs.
const (
	SnapshotTTL = 10 * time.Minute
	ArtifactTTL = 24 * time.Hour
	HTTPTTL     = 10 * time.Minute
)

// Cache is a byte store with per-entry expiry. A zero ttl means no expiry.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey keys a raw HTTP response body.
	HTTPKey(namespace, key string) string
	// SnapshotKey keys the normalized snapshot fetched from source.
	SnapshotKey(source string) string
	// ArtifactKey keys one rendered output of a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Category      string  `json:"category"`
	Dataset       string  `json:"dataset"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MinRadius     float64 `json:"min_radius"`
	MaxRadiusSpan float64 `json:"max_radius_span"`
	Palette       string  `json:"palette"`
	Title         string  `json:"title,omitempty"`
	Background    string  `json:"background,omitempty"`
	Format        string  `json:"format"`
}

// DefaultKeyer produces "http:", "snapshot:" and "artifact:" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) SnapshotKey(source string) string {
	return hashKey("snapshot", source)
}

func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", snapshotHash, opts)
}

// KeyType returns the prefix of a key built by [DefaultKeyer], ignoring any
// scope added by [ScopedKeyer]. It labels cache metrics.
func KeyType(key string) string {
	segments := strings.Split(key, ":")
	for _, seg := range segments[:len(segments)-1] {
		switch seg {
		case "snapshot", "artifact", "http":
			return seg
		}
	}
	return "other"
}
