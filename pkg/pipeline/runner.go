package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/talentmap/pkg/cache"
	"github.com/matzehuels/talentmap/pkg/distribution"
	"github.com/matzehuels/talentmap/pkg/observability"
)

// Source provides talent-map snapshots. The API client in
// pkg/integrations/talentmap implements it.
type Source interface {
	FetchSnapshot(ctx context.Context, refresh bool) (distribution.Snapshot, error)
}

// StaticSource serves a fixed snapshot, e.g. one read from a file.
type StaticSource distribution.Snapshot

func (s StaticSource) FetchSnapshot(context.Context, bool) (distribution.Snapshot, error) {
	return distribution.Snapshot(s), nil
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Source Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables artifact caching, a nil
// keyer means [cache.DefaultKeyer] and a nil logger means log.Default().
func NewRunner(src Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → filter → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	snap, err := r.Fetch(ctx, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	fetchTime := time.Since(fetchStart)

	result, err := r.ExecuteSnapshot(ctx, snap, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = fetchTime
	return result, nil
}

// Fetch loads the current snapshot from the runner's source.
func (r *Runner) Fetch(ctx context.Context, refresh bool) (distribution.Snapshot, error) {
	if r.Source == nil {
		return distribution.Snapshot{}, fmt.Errorf("no snapshot source configured")
	}
	name := sourceName(r.Source)
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, name)

	start := time.Now()
	snap, err := r.Source.FetchSnapshot(ctx, refresh)
	duration := time.Since(start)
	hooks.OnFetchComplete(ctx, name, len(snap.Skills)+len(snap.Languages), duration, err)
	if err != nil {
		return distribution.Snapshot{}, err
	}

	r.Logger.Info("fetched snapshot",
		"skills", len(snap.Skills),
		"languages", len(snap.Languages),
		"users", snap.TotalUsers,
		"duration", duration)
	return snap, nil
}

// ExecuteSnapshot runs filter → layout → render on an already loaded snapshot.
func (r *Runner) ExecuteSnapshot(ctx context.Context, snap distribution.Snapshot, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	snap = distribution.Normalize(snap)

	result := &Result{
		ID:         uuid.NewString(),
		Snapshot:   snap,
		Categories: distribution.Categories(snap.Skills),
	}
	if data, err := json.Marshal(snap); err == nil {
		result.SnapshotHash = cache.Hash(data)
	}

	result.Entries = Select(snap, opts)
	result.Stats.Entries = len(result.Entries)

	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.Category, len(result.Entries))
	result.Bubbles = GenerateLayout(result.Entries, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.Category, result.Stats.LayoutTime)

	logger := r.loggerFor(opts).With("run", result.ID)
	logger.Info("computed layout",
		"dataset", opts.Dataset,
		"category", opts.Category,
		"bubbles", len(result.Bubbles),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders the result's bubbles, serving formats from the
// artifact cache where possible. It reports whether every format was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.SnapshotHash, opts.ArtifactKeyOpts(format))
		if result.SnapshotHash != "" {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		allCached = false

		data, err := RenderFormat(ctx, result.Bubbles, opts, format)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if result.SnapshotHash != "" {
			if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
				r.loggerFor(opts).Warn("cache write failed", "run", result.ID, "format", format, "error", err)
			}
		}
	}
	return artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// loggerFor returns the run's own logger if set, else the runner's.
func (r *Runner) loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func sourceName(src Source) string {
	if u, ok := src.(interface{ URL() string }); ok {
		return u.URL()
	}
	return fmt.Sprintf("%T", src)
}
