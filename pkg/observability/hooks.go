// Package observability provides hooks for metrics, tracing, and logging.
//
// The package lets consumers instrument the engine without adding hard
// dependencies on specific observability backends. Hooks default to
// no-ops; applications register their own implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnScoreStart(ctx, algo, g.Size())
//	// ... run the algorithm ...
//	observability.Engine().OnScoreComplete(ctx, algo, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from graph computations.
type EngineHooks interface {
	// Score events
	OnScoreStart(ctx context.Context, algo string, nodeCount int)
	OnScoreComplete(ctx context.Context, algo string, duration time.Duration, err error)

	// Path enumeration events
	OnPathsStart(ctx context.Context, from, to int)
	OnPathsComplete(ctx context.Context, from, to, pathCount int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnScoreStart(context.Context, string, int)                      {}
func (NoopEngineHooks) OnScoreComplete(context.Context, string, time.Duration, error)  {}
func (NoopEngineHooks) OnPathsStart(context.Context, int, int)                         {}
func (NoopEngineHooks) OnPathsComplete(context.Context, int, int, int, time.Duration)  {}
func (NoopEngineHooks) OnRenderStart(context.Context, string, int)                     {}
func (NoopEngineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks. Call once at application
// startup before any graph operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at application
// startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
}
