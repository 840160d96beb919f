// Package observability lets a host attach metrics or tracing to primetree
// without the libraries importing any telemetry backend.
//
// Three hook sets exist: [PipelineHooks] for tree builds, layout and
// rendering, [CacheHooks] for artifact cache traffic and [HTTPHooks] for the
// API server. Each starts as a no-op; main registers real implementations
// before serving:
//
//	observability.SetPipelineHooks(promHooks{})
//
// Libraries fetch the current set at the call site:
//
//	observability.Pipeline().OnBuildStart(ctx, start, end, policy)
//	t, err := tree.Build(start, end, p, opts)
//	observability.Pipeline().OnBuildComplete(ctx, t.Len(), time.Since(began), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives the stage events of one pipeline run.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, start, end int, policy string)
	OnBuildComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups and writes. keyType is "tree"
// or the artifact format.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives API server traffic.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError is called for 5xx responses only.
	OnError(ctx context.Context, method, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int, int, string)                   {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// registry holds the active hooks. A nil argument to a setter keeps the
// current value.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

// SetPipelineHooks registers pipeline hooks. Call it before the first run.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers cache hooks.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks registers API server hooks.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op hooks. Tests use it in cleanup.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	hooks.pipeline, hooks.cache, hooks.http = fresh.pipeline, fresh.cache, fresh.http
	hooks.mu.Unlock()
}
