// Package cache stores finished search results and rendered state graphs.
//
// A search is deterministic in its configuration, so the rendered result
// lines of a run can be replayed later instead of searching again. Keys are
// built by a [Keyer] from the hashed configuration; values are opaque bytes.
//
// Backends:
//
//   - [NullCache] stores nothing.
//   - [FileCache] keeps one JSON file per entry under a directory.
//   - [BoltCache] keeps entries in a single bbolt database file.
//   - [RedisCache] shares entries through a Redis server.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	TTLSearch = 7 * 24 * time.Hour
	TTLGraph  = 30 * 24 * time.Hour
)

// keyVersion changes whenever the cached result format changes.
const keyVersion = 1

// Cache is a byte store with per-entry expiry.
// Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*BoltCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)

// GraphKeyOpts are the rendering options that change a state graph.
type GraphKeyOpts struct {
	Format string `json:"format"`
	Full   bool   `json:"full"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SearchKey keys a run of the named search kind ("gen" or "trans")
	// by its configuration.
	SearchKey(kind string, config any) string
	// GraphKey keys a rendered state graph of a pattern.
	GraphKey(pattern string, opts GraphKeyOpts) string
}

// DefaultKeyer hashes the JSON form of its inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SearchKey implements Keyer.
func (DefaultKeyer) SearchKey(kind string, config any) string {
	return hashKey("search:"+kind, keyVersion, config)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(pattern string, opts GraphKeyOpts) string {
	return hashKey("graph", keyVersion, pattern, opts)
}
