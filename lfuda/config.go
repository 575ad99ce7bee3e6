// Package lfuda implements the single-threaded and concurrent LFU-with-
// Dynamic-Aging caches from spec.md §4.7 / §4.9: entries are bucketed by
// effective priority (frequency + age at insertion) instead of raw
// frequency, and a monotone global_age absorbs the priority of each evicted
// entry so that later insertions start competitive rather than always at
// the bottom.
package lfuda

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
	InitialAge uint64
	// Segments is the lock-stripe count for ConcurrentCache. 0 = auto.
	Segments uint32
	// Hash is the key-hashing strategy for ConcurrentCache. nil =
	// hashutil.Default[K]().
	Hash hashutil.Hasher[K]
	// Logger receives a debug trace when the cache is constructed. nil is
	// silent.
	Logger *zerolog.Logger
}
