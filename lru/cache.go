package lru

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
}

// Cache is a single-threaded LRU cache: one hash index over one recency
// list, front = MRU, tail = the eviction candidate. Not safe for concurrent
// use — see ConcurrentCache for the lock-striped variant.
type Cache[K comparable, V any] struct {
	cfg   Config[K]
	index map[K]*list.Node[record[K, V]]
	order *list.List[record[K, V]]
	clk   clock.Source
	m     metrics.Core
	log   zerolog.Logger
}

// New constructs an LRU cache. Returns a *cachekit.ConfigError if
// cfg.Capacity is zero.
func New[K comparable, V any](cfg Config[K]) (*Cache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	log := cachekit.ResolveLogger(cfg.Logger)
	c := &Cache[K, V]{
		cfg:   cfg,
		index: make(map[K]*list.Node[record[K, V]], cfg.Capacity),
		order: list.New[record[K, V]](int(cfg.Capacity)),
		clk:   clock.Real{},
		log:   log,
	}
	if cfg.MaxSize > 0 {
		c.m.Capacity = cfg.MaxSize
	} else {
		c.m.Capacity = uint64(cfg.Capacity)
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Uint64("max_size", cfg.MaxSize).Msg("lru cache constructed")
	return c, nil
}

func (c *Cache[K, V]) now() int64 { return c.clk.NowNano() }

// Get returns the value for key, promoting it to MRU on hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(n)
	n.Value.lastAccessed = c.now()
	c.m.RecordHit(n.Value.size)
	return n.Value.value, true
}

// WithValue runs f with a pointer to key's value in place, under whatever
// lock the caller holds (none, for the single-threaded Cache). On hit it
// promotes the entry to MRU and records a hit, exactly like Get, but avoids
// copying V out. f must not call back into this cache. Returns false on a
// miss, in which case f is not called.
func (c *Cache[K, V]) WithValue(key K, f func(*V)) bool {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		return false
	}
	c.order.MoveToFront(n)
	n.Value.lastAccessed = c.now()
	c.m.RecordHit(n.Value.size)
	f(&n.Value.value)
	return true
}

// Contains reports whether key is present, without affecting recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Put inserts or updates key with size 1. See PutWithSize for size-aware
// insertion. Returns the replaced (key, value) when key was already present.
func (c *Cache[K, V]) Put(key K, value V) (evicted record0[K, V], ok bool) {
	return c.PutWithSize(key, value, 1)
}

// record0 is the (key, value) pair returned by Put/PutWithSize when an
// existing entry was replaced. Entries evicted to make room are not
// returned.
type record0[K comparable, V any] struct {
	Key   K
	Value V
}

// PutWithSize inserts or updates key→value with an explicit declared size.
// If key is already present, its value is updated in place, it moves to
// MRU, and the previous (key, value) is returned. Otherwise, if the cache
// is at capacity, the LRU tail is evicted first; the new entry is always
// pushed to MRU.
func (c *Cache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	if n, ok := c.index[key]; ok {
		old := n.Value
		n.Value.value = value
		n.Value.size = size
		n.Value.lastAccessed = c.now()
		c.order.MoveToFront(n)
		c.m.RecordResize(old.size, size)
		return record0[K, V]{Key: old.key, Value: old.value}, true
	}

	now := c.now()
	rec := record[K, V]{key: key, value: value, size: size, createdAt: now, lastAccessed: now}

	if c.order.Len() >= c.order.Cap() && c.order.Cap() > 0 {
		c.evictTail()
	}
	n, ok := c.order.PushFront(rec)
	if !ok {
		// Defensive: capacity 0 is rejected at New(), so this only fires if
		// the tail eviction above somehow didn't free a slot.
		c.evictTail()
		n, _ = c.order.PushFront(rec)
	}
	c.index[key] = n
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

// Pop removes and returns the LRU (tail) entry, or ok=false if empty.
func (c *Cache[K, V]) Pop() (K, V, bool) {
	n := c.order.Back()
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	rec := c.removeNode(n)
	return rec.key, rec.value, true
}

// PopReverse removes and returns the MRU (front) entry, or ok=false if empty.
func (c *Cache[K, V]) PopReverse() (K, V, bool) {
	n := c.order.Front()
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
	c.order.Clear()
	c.index = make(map[K]*list.Node[record[K, V]], c.cfg.Capacity)
	c.m.Size = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return c.order.Len() }

// Metrics returns a deterministic snapshot of this cache's counters.
func (c *Cache[K, V]) Metrics() metrics.Snapshot { return c.m.ToSnapshot(uint64(c.order.Len())) }

func (c *Cache[K, V]) evictTail() {
	n := c.order.Back()
	if n == nil {
		return
	}
	c.removeNode(n)
}

func (c *Cache[K, V]) removeNode(n *list.Node[record[K, V]]) record[K, V] {
	rec := c.order.Remove(n)
	delete(c.index, rec.key)
	c.m.RecordEviction(rec.size)
	return rec
}

func (c *Cache[K, V]) enforceSizeBudget() {
	if c.cfg.MaxSize == 0 {
		return
	}
	for c.m.Size > c.cfg.MaxSize {
		if c.order.Len() == 0 {
			break
		}
		c.evictTail()
	}
}
