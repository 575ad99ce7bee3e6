package slru

import (
	"sync"

	"github.com/mkrylov/cachekit"
	"github.com/mkrylov/cachekit/internal/hashutil"
	"github.com/mkrylov/cachekit/metrics"
)

type segmentShard[K comparable, V any] struct {
	mu sync.Mutex
	c  *Cache[K, V]
}

// ConcurrentCache shards the key space across a fixed array of segments,
// each an independent SLRU Cache guarded by its own mutex.
type ConcurrentCache[K comparable, V any] struct {
	segments []*segmentShard[K, V]
	hash     hashutil.Hasher[K]
}

// NewConcurrent constructs a concurrent SLRU cache. Total and protected
// capacity are both split as evenly as possible (ceiling division) across
// segments; Segments==0 picks an automatic count via hashutil.DefaultSegments.
func NewConcurrent[K comparable, V any](cfg Config[K]) (*ConcurrentCache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	if err := cachekit.ValidateProtectedCapacity(cfg.ProtectedCapacity, cfg.Capacity); err != nil {
		return nil, err
	}
	if err := cachekit.ValidateSegments(cfg.Segments, cfg.Capacity); err != nil {
		return nil, err
	}
	n := cfg.Segments
	if n == 0 {
		n = hashutil.DefaultSegments(cfg.Capacity)
	}
	hash := cfg.Hash
	if hash == nil {
		hash = hashutil.Default[K]()
	}
	log := cachekit.ResolveLogger(cfg.Logger)

	perSeg := (cfg.Capacity + n - 1) / n
	perSegProtected := (cfg.ProtectedCapacity + n - 1) / n
	if perSegProtected > perSeg {
		perSegProtected = perSeg
	}
	if perSegProtected == 0 {
		perSegProtected = 1
	}
	perSegMaxSize := uint64(0)
	if cfg.MaxSize > 0 {
		perSegMaxSize = (cfg.MaxSize + uint64(n) - 1) / uint64(n)
	}

	segs := make([]*segmentShard[K, V], n)
	for i := range segs {
		segCfg := Config[K]{Capacity: perSeg, ProtectedCapacity: perSegProtected, MaxSize: perSegMaxSize, Logger: cfg.Logger}
		sc, err := New[K, V](segCfg)
		if err != nil {
			return nil, err
		}
		segs[i] = &segmentShard[K, V]{c: sc}
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Uint32("segments", n).Msg("concurrent slru cache constructed")
	return &ConcurrentCache[K, V]{segments: segs, hash: hash}, nil
}

func (c *ConcurrentCache[K, V]) segmentFor(key K) *segmentShard[K, V] {
	h := c.hash(key)
	idx := hashutil.ShardIndex(h, len(c.segments))
	return c.segments[idx]
}

// Get routes key to its segment and delegates to Cache.Get.
func (c *ConcurrentCache[K, V]) Get(key K) (V, bool) {
	s := c.segmentFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// GetWith runs f with a pointer to key's value under the segment lock,
// without copying V out.
func (c *ConcurrentCache[K, V]) GetWith(key K, f func(*V)) bool {
	s := c.segmentFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.WithValue(key, f)
}

// Contains reports whether key is present, without affecting placement.
func (c *ConcurrentCache[K, V]) Contains(key K) bool {
	s := c.segmentFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Contains(key)
}

// Put inserts or updates key with size 1.
func (c *ConcurrentCache[K, V]) Put(key K, value V) (record0[K, V], bool) {
	return c.PutWithSize(key, value, 1)
}

// PutWithSize inserts or updates key→value with an explicit size.
func (c *ConcurrentCache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	s := c.segmentFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.PutWithSize(key, value, size)
}

// Remove deletes key if present, on whichever segment it hashes to.
func (c *ConcurrentCache[K, V]) Remove(key K) (V, bool) {
	s := c.segmentFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(key)
}

// Pop walks segments in fixed index order and returns the first segment's
// eviction candidate — not globally lowest-priority, only "a plausible
// eviction candidate."
func (c *ConcurrentCache[K, V]) Pop() (K, V, bool) {
	for _, s := range c.segments {
		s.mu.Lock()
		k, v, ok := s.c.Pop()
		s.mu.Unlock()
		if ok {
			return k, v, true
		}
	}
	var zk K
	var zv V
	return zk, zv, false
}

// PopReverse mirrors Pop, returning the first segment's MRU candidate.
func (c *ConcurrentCache[K, V]) PopReverse() (K, V, bool) {
	for _, s := range c.segments {
		s.mu.Lock()
		k, v, ok := s.c.PopReverse()
		s.mu.Unlock()
		if ok {
			return k, v, true
		}
	}
	var zk K
	var zv V
	return zk, zv, false
}

// Len sums segment lengths. Not atomic across segments.
func (c *ConcurrentCache[K, V]) Len() int {
	total := 0
	for _, s := range c.segments {
		s.mu.Lock()
		total += s.c.Len()
		s.mu.Unlock()
	}
	return total
}

// IsEmpty reports whether Len() == 0.
func (c *ConcurrentCache[K, V]) IsEmpty() bool { return c.Len() == 0 }

// Clear empties every segment. Not atomic across segments.
func (c *ConcurrentCache[K, V]) Clear() {
	for _, s := range c.segments {
		s.mu.Lock()
		s.c.Clear()
		s.mu.Unlock()
	}
}

// SegmentCount returns the configured number of segments.
func (c *ConcurrentCache[K, V]) SegmentCount() int { return len(c.segments) }

// Metrics aggregates every segment's raw counters under its own lock and
// recomputes rates once from the summed totals.
func (c *ConcurrentCache[K, V]) Metrics() metrics.Snapshot {
	var total metrics.SLRU
	var entries uint64
	for _, s := range c.segments {
		s.mu.Lock()
		total.Add(&s.c.m)
		entries += uint64(s.c.Len())
		s.mu.Unlock()
	}
	return total.ToSnapshot(entries)
}
