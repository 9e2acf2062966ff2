// Package observability provides hooks for metrics, tracing, and logging.
//
// Layout runs, cache lookups and API requests report events through hook
// interfaces. Nothing is recorded unless a consumer registers an
// implementation at startup, so the layout packages carry no dependency on
// any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, "stream", len(blocks))
//	// ... place blocks ...
//	observability.Pipeline().OnLayoutComplete(ctx, "stream", duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from layout runs.
type PipelineHooks interface {
	// Stream insertion. mode is always "stream" today.
	OnLayoutStart(ctx context.Context, mode string, blockCount int)
	OnLayoutComplete(ctx context.Context, mode string, duration time.Duration, err error)

	// Group tree packing.
	OnPackStart(ctx context.Context, groupCount int)
	OnPackComplete(ctx context.Context, blockCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives lookups and writes of the pipeline cache. keyType is
// "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API. route is the matched route
// pattern, such as "/v1/layouts/{id}", not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	// OnError is called before the error response is written.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnPackStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnPackComplete(context.Context, int, time.Duration, error)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet holds one registration of every hook kind. It is replaced as a
// whole, never mutated after being stored.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var noopSet = hookSet{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

var (
	registered atomic.Pointer[hookSet]
	registerMu sync.Mutex
)

func current() *hookSet {
	if s := registered.Load(); s != nil {
		return s
	}
	return &noopSet
}

func register(apply func(*hookSet)) {
	registerMu.Lock()
	defer registerMu.Unlock()
	next := *current()
	apply(&next)
	registered.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored. Call it at
// startup, before any layout runs.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		register(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		register(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		register(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current().http }

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	registerMu.Lock()
	defer registerMu.Unlock()
	registered.Store(nil)
}
