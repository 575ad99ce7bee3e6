// Package gdsf implements the single-threaded and concurrent Greedy
// Dual-Size Frequency caches from spec.md §4.8 / §4.9: priority combines
// frequency, size, and a monotone global_age, quantized into integer
// buckets so GDSF can reuse the same ordered-map-of-lists structure as
// LFU/LFUDA despite its fractional priority space.
package gdsf

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
	// InitialAge seeds global_age at construction and after Clear.
	InitialAge float64
	// Segments is the lock-stripe count for ConcurrentCache. 0 = auto.
	Segments uint32
	// Hash is the key-hashing strategy for ConcurrentCache. nil =
	// hashutil.Default[K]().
	Hash hashutil.Hasher[K]
	// Logger receives a debug trace when the cache is constructed. nil is
	// silent.
	Logger *zerolog.Logger
}
