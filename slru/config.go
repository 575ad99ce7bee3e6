// Package slru implements the single-threaded and concurrent Segmented LRU
// caches from spec.md §4.5 / §4.9: two recency lists, probationary and
// protected, with promotion on a probationary hit and demotion when
// promotion would overflow the protected segment.
package slru

import (
	"github.com/mkrylov/cachekit/internal/hashutil"
	"github.com/rs/zerolog"
)

// Config configures both Cache and ConcurrentCache.
type Config[K comparable] struct {
	// Capacity is the total maximum entry count (C). Must be non-zero.
	Capacity uint32
	// ProtectedCapacity is the size of the protected segment (P). Must be
	// non-zero and <= Capacity; probationary capacity is Capacity-P.
	ProtectedCapacity uint32
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
