package cache

import (
	"context"
	"time"
)

// NullCache is the backend behind --no-cache: lookups always miss and
// writes are dropped. Like the real backends it reports a cancelled context.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(ctx context.Context, _ string) error { return ctx.Err() }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
