// Package lfu implements the single-threaded and concurrent Least
// Frequently Used caches from spec.md §4.6 / §4.9: a hash index over
// frequency-bucketed recency lists, with a cached minimum frequency so
// eviction never scans the frequency distribution.
package lfu

import (
	"github.com/mkrylov/cachekit/internal/hashutil"
	"github.com/rs/zerolog"
)

// Config configures both Cache and ConcurrentCache.
type Config[K comparable] struct {
	// Capacity is the maximum entry count. Must be non-zero.
	Capacity uint32
	// MaxSize is the maximum sum of entry sizes. 0 disables size-based
	// eviction.
	MaxSize uint64
	// Segments is the lock-stripe count for ConcurrentCache. 0 = auto.
	Segments uint32
	// Hash is the key-hashing strategy for ConcurrentCache. nil =
	// hashutil.Default[K]().
	Hash hashutil.Hasher[K]
	// Logger receives a debug trace when the cache is constructed. nil is
	// silent.
	Logger *zerolog.Logger
}
