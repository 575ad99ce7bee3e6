package lfu

import (
	"github.com/mkrylov/cachekit"
	"github.com/mkrylov/cachekit/internal/clock"
	"github.com/mkrylov/cachekit/internal/list"
	"github.com/mkrylov/cachekit/metrics"
	"github.com/rs/zerolog"
)

type record[K comparable, V any] struct {
	key          K
	value        V
	size         uint64
	createdAt    int64
	lastAccessed int64
	freq         uint64
}

// record0 is the (key, value) pair returned when Put replaces an existing
// entry.
type record0[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a single-threaded LFU cache: one hash index, an ordered-by-key
// map from frequency to a recency list, and a cached minimum frequency so
// eviction never scans the frequency distribution. Not safe for concurrent
// use — see ConcurrentCache.
type Cache[K comparable, V any] struct {
	cfg     Config[K]
	index   map[K]*list.Node[record[K, V]]
	buckets map[uint64]*list.List[record[K, V]]
	minFreq uint64
	clk     clock.Source
	m       metrics.LFU
	log     zerolog.Logger
}

// New constructs an LFU cache. Returns a *cachekit.ConfigError if
// cfg.Capacity is zero.
func New[K comparable, V any](cfg Config[K]) (*Cache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	log := cachekit.ResolveLogger(cfg.Logger)
	c := &Cache[K, V]{
		cfg:     cfg,
		index:   make(map[K]*list.Node[record[K, V]], cfg.Capacity),
		buckets: make(map[uint64]*list.List[record[K, V]]),
		clk:     clock.Real{},
		log:     log,
	}
	if cfg.MaxSize > 0 {
		c.m.Capacity = cfg.MaxSize
	} else {
		c.m.Capacity = uint64(cfg.Capacity)
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Msg("lfu cache constructed")
	return c, nil
}

func (c *Cache[K, V]) now() int64 { return c.clk.NowNano() }

func (c *Cache[K, V]) bucket(f uint64) *list.List[record[K, V]] {
	bl, ok := c.buckets[f]
	if !ok {
		bl = list.New[record[K, V]](0)
		c.buckets[f] = bl
	}
	return bl
}

// bump increments n's frequency, moving it to the front of the next
// frequency's bucket, and advances minFreq if the bucket it left is now
// empty and was the minimum.
func (c *Cache[K, V]) bump(n *list.Node[record[K, V]]) {
	oldF := n.Value.freq
	newF := oldF + 1

	old := c.buckets[oldF]
	old.Detach(n)
	if old.Len() == 0 {
		delete(c.buckets, oldF)
		if oldF == c.minFreq {
			c.minFreq = newF
		}
	}

	n.Value.freq = newF
	c.bucket(newF).AttachExisting(n)
	c.m.IncrementEvents++
}

// Get returns the value for key, incrementing its frequency and moving it
// to the front of the next frequency's bucket.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		var zero V
		return zero, false
	}
	c.bump(n)
	n.Value.lastAccessed = c.now()
	c.m.RecordHit(n.Value.size)
	return n.Value.value, true
}

// WithValue runs f with a pointer to key's value in place, applying the same
// frequency bump as Get. Returns false on a miss, in which case f is not
// called.
func (c *Cache[K, V]) WithValue(key K, f func(*V)) bool {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		return false
	}
	c.bump(n)
	n.Value.lastAccessed = c.now()
	c.m.RecordHit(n.Value.size)
	f(&n.Value.value)
	return true
}

// Contains reports whether key is present, without affecting its frequency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Put inserts or updates key with size 1.
func (c *Cache[K, V]) Put(key K, value V) (record0[K, V], bool) {
	return c.PutWithSize(key, value, 1)
}

// PutWithSize inserts or updates key→value with an explicit declared size.
// An existing key is updated in place within its current frequency bucket,
// without incrementing frequency. A new key always enters frequency bucket
// 1 and resets minFreq to 1; if the cache is full, the tail of the
// min-frequency bucket is evicted first.
func (c *Cache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	if n, ok := c.index[key]; ok {
		old := n.Value
		n.Value.value = value
		n.Value.size = size
		n.Value.lastAccessed = c.now()
		c.bucket(n.Value.freq).MoveToFront(n)
		c.m.RecordResize(old.size, size)
		return record0[K, V]{Key: old.key, Value: old.value}, true
	}

	if len(c.index) >= int(c.cfg.Capacity) {
		c.evictMin()
	}

	now := c.now()
	rec := record[K, V]{key: key, value: value, size: size, createdAt: now, lastAccessed: now, freq: 1}
	n := c.bucket(1).PushFrontUnchecked(rec)
	c.index[key] = n
	c.minFreq = 1
	c.m.RecordInsertion(size)
	c.enforceSizeBudget()

	var zero record0[K, V]
	return zero, false
}

// Remove deletes key if present and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	rec := c.removeNode(n)
	return rec.value, true
}

// Pop removes and returns the tail of the min-frequency bucket: the
// least-frequently, and among those least-recently, used entry.
func (c *Cache[K, V]) Pop() (K, V, bool) {
	bl, ok := c.buckets[c.minFreq]
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := bl.Back()
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	rec := c.removeNode(n)
	return rec.key, rec.value, true
}

// PopReverse removes and returns the front of the highest-occupied
// frequency bucket.
func (c *Cache[K, V]) PopReverse() (K, V, bool) {
	maxF, ok := c.maxFreq()
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := c.buckets[maxF].Front()
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	rec := c.removeNode(n)
	return rec.key, rec.value, true
}

// Clear empties the cache. Cumulative metric counters are not reset.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[record[K, V]], c.cfg.Capacity)
	c.buckets = make(map[uint64]*list.List[record[K, V]])
	c.minFreq = 0
	c.m.Size = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// Metrics returns a deterministic snapshot of this cache's counters.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	c.m.MinFrequency = c.minFreq
	if maxF, ok := c.maxFreq(); ok {
		c.m.MaxFrequency = maxF
	} else {
		c.m.MaxFrequency = 0
	}
	c.m.ActiveLevels = uint64(len(c.buckets))
	return c.m.ToSnapshot(uint64(len(c.index)))
}

func (c *Cache[K, V]) evictMin() {
	bl, ok := c.buckets[c.minFreq]
	if !ok {
		return
	}
	n := bl.Back()
	if n == nil {
		return
	}
	c.removeNode(n)
}

func (c *Cache[K, V]) removeNode(n *list.Node[record[K, V]]) record[K, V] {
	f := n.Value.freq
	bl := c.buckets[f]
	rec := bl.Remove(n)
	delete(c.index, rec.key)
	if bl.Len() == 0 {
		delete(c.buckets, f)
		if f == c.minFreq {
			c.minFreq = c.recomputeMinFreq()
		}
	}
	c.m.RecordEviction(rec.size)
	return rec
}

// recomputeMinFreq scans the (small, capacity-bounded) set of occupied
// frequency levels. Called from removeNode whenever the bucket at the current
// minFreq becomes empty (Remove, Pop, PopReverse, and evictions, including
// the one Put makes before inserting; Put then resets minFreq to 1 itself).
func (c *Cache[K, V]) recomputeMinFreq() uint64 {
	min, ok := uint64(0), false
	for f := range c.buckets {
		if !ok || f < min {
			min, ok = f, true
		}
	}
	return min
}

func (c *Cache[K, V]) maxFreq() (uint64, bool) {
	var max uint64
	ok := false
	for f := range c.buckets {
		if !ok || f > max {
			max, ok = f, true
		}
	}
	return max, ok
}

func (c *Cache[K, V]) enforceSizeBudget() {
	if c.cfg.MaxSize == 0 {
		return
	}
	for c.m.Size > c.cfg.MaxSize {
		if len(c.index) == 0 {
			break
		}
		c.evictMin()
	}
}
