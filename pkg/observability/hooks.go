// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks keep the search packages free of any observability backend. The
// binary registers implementations at startup; libraries fire events
// through the package-level getters, which default to no-ops.
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    // ... run application
//	}
//
// Emitting events:
//
//	observability.Search().OnSearchStart(ctx, "gen")
//	// ... search ...
//	observability.Search().OnSearchComplete(ctx, "gen", count, reason, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SearchHooks receives events from pattern and transition searches.
// kind is "gen" or "trans".
type SearchHooks interface {
	OnSearchStart(ctx context.Context, kind string)
	// OnPeriod fires when the generator finishes one period.
	OnPeriod(ctx context.Context, kind string, period, count int)
	// OnSearchComplete reports the emitted count and why the search stopped.
	OnSearchComplete(ctx context.Context, kind string, count int, reason string, duration time.Duration, err error)
}

// CacheHooks receives events from result caching.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, path string, err error)
}

// NoopSearchHooks ignores every event.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string)      {}
func (NoopSearchHooks) OnPeriod(context.Context, string, int, int) {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, int, string, time.Duration, error) {
}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers search hooks. A nil h is ignored.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
