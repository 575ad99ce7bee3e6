// Package lru implements the single-threaded and lock-striped concurrent
// LRU caches from spec.md §4.4 / §4.9. Eviction candidate: the tail of a
// single recency list — tie-breaking is impossible, the tail is unique.
package lru

import (
	"github.com/mkrylov/cachekit/internal/hashutil"
	"github.com/rs/zerolog"
)

// Config configures both Cache and ConcurrentCache. Zero value fields other
// than Capacity are safe defaults: MaxSize 0 means no size budget (only the
// entry-count Capacity is enforced), Segments 0 means the concurrent
// variant picks a segment count automatically, Hash nil means
// hashutil.Default[K](), and a zero-value Logger is silent.
type Config[K comparable] struct {
	// Capacity is the maximum entry count. Must be non-zero.
	Capacity uint32
	// MaxSize is the maximum sum of entry sizes. 0 disables size-based
	// eviction (only Capacity is enforced).
	MaxSize uint64
	// Segments is the lock-stripe count for ConcurrentCache. 0 = auto.
	Segments uint32
	// Hash is the key-hashing strategy for ConcurrentCache's segment
	// routing. nil = hashutil.Default[K]().
	Hash hashutil.Hasher[K]
	// Logger receives a debug trace when the cache is constructed.
	// nil is silent (internally substituted with zerolog.Nop()).
	Logger *zerolog.Logger
}
