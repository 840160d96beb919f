package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/primetree/pkg/cache"
	"github.com/matzehuels/primetree/pkg/observability"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to every cache write. Zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		TreeKey:   r.Keyer.TreeKey(opts.TreeKeyOpts()),
	}

	// Stages 1 and 2: Build and layout
	t, treeHit, err := r.TreeWithCacheInfo(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.CacheInfo.TreeHit = treeHit
	result.Stats.NodeCount = t.Len()
	result.Stats.EdgeCount = len(t.Edges)
	for i := range t.Nodes {
		if t.Nodes[i].Prime {
			result.Stats.PrimeCount++
		}
	}

	r.Logger.Info("built tree",
		"range", fmt.Sprintf("%d..%d", opts.Start, opts.End),
		"policy", opts.Policy,
		"nodes", t.Len(),
		"primes", result.Stats.PrimeCount,
		"cached", treeHit)

	// Stage 3: Render
	result.Scene = SceneFor(t, opts)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.TreeKey, result.Scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime,
		"cached", renderHit)

	return result, nil
}

// TreeWithCacheInfo returns the laid-out tree for opts, from cache when
// possible. Stage timings are recorded in result when it is non-nil.
func (r *Runner) TreeWithCacheInfo(ctx context.Context, opts Options, result *Result) (*tree.Tree, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.TreeKey(opts.TreeKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var t tree.Tree
			if err := json.Unmarshal(data, &t); err == nil && t.Validate() == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return &t, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "error", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	hooks := observability.Pipeline()
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, opts.Start, opts.End, opts.Policy)
	t, err := BuildTree(opts)
	buildTime := time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, buildTime, err)
		return nil, false, fmt.Errorf("build: %w", err)
	}
	hooks.OnBuildComplete(ctx, t.Len(), buildTime, nil)

	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, t.Len())
	err = LayoutTree(t, opts)
	layoutTime := time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, layoutTime, err)
	if err != nil {
		return nil, false, fmt.Errorf("layout: %w", err)
	}

	if result != nil {
		result.Stats.BuildTime = buildTime
		result.Stats.LayoutTime = layoutTime
	}
	r.Logger.Debug("computed layout", "nodes", t.Len(), "build", buildTime, "layout", layoutTime)

	if data, err := json.Marshal(t); err == nil {
		r.store(ctx, "tree", key, data)
	}
	return t, false, nil // Cache miss
}

// Tree is a convenience wrapper that calls TreeWithCacheInfo and discards the cache hit info.
func (r *Runner) Tree(ctx context.Context, opts Options) (*tree.Tree, error) {
	t, _, err := r.TreeWithCacheInfo(ctx, opts, nil)
	return t, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, treeKey string, s render.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(treeKey, opts.ArtifactKeyOpts(format, s.View))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(treeKey, opts.ArtifactKeyOpts(format, s.View)), data)
	}
	return rendered, false, nil // Cache miss
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
