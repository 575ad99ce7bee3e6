package slru

import (
	"github.com/mkrylov/cachekit"
	"github.com/mkrylov/cachekit/internal/clock"
	"github.com/mkrylov/cachekit/internal/list"
	"github.com/mkrylov/cachekit/metrics"
	"github.com/rs/zerolog"
)

type segmentTag uint8

const (
	probationary segmentTag = iota
	protected
)

type record[K comparable, V any] struct {
	key          K
	value        V
	size         uint64
	createdAt    int64
	lastAccessed int64
	seg          segmentTag
}

// record0 is the (key, value) pair returned when Put replaces an existing
// entry.
type record0[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a single-threaded Segmented LRU cache: one hash index shared over
// two recency lists, probationary and protected. A key is promoted to
// protected on its second access and can be demoted back to probationary to
// make room for a fresher promotion. Not safe for concurrent use.
type Cache[K comparable, V any] struct {
	cfg          Config[K]
	index        map[K]*list.Node[record[K, V]]
	probationary *list.List[record[K, V]]
	protected    *list.List[record[K, V]]
	clk          clock.Source
	m            metrics.SLRU
	log          zerolog.Logger
}

// New constructs an SLRU cache. Returns a *cachekit.ConfigError if
// cfg.Capacity is zero or cfg.ProtectedCapacity is zero or exceeds Capacity.
func New[K comparable, V any](cfg Config[K]) (*Cache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	if err := cachekit.ValidateProtectedCapacity(cfg.ProtectedCapacity, cfg.Capacity); err != nil {
		return nil, err
	}
	log := cachekit.ResolveLogger(cfg.Logger)
	probCap := cfg.Capacity - cfg.ProtectedCapacity
	c := &Cache[K, V]{
		cfg:          cfg,
		index:        make(map[K]*list.Node[record[K, V]], cfg.Capacity),
		probationary: list.New[record[K, V]](int(probCap)),
		protected:    list.New[record[K, V]](int(cfg.ProtectedCapacity)),
		clk:          clock.Real{},
		log:          log,
	}
	if cfg.MaxSize > 0 {
		c.m.Capacity = cfg.MaxSize
	} else {
		c.m.Capacity = uint64(cfg.Capacity)
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Uint32("protected_capacity", cfg.ProtectedCapacity).
		Msg("slru cache constructed")
	return c, nil
}

func (c *Cache[K, V]) now() int64 { return c.clk.NowNano() }

func (c *Cache[K, V]) listFor(seg segmentTag) *list.List[record[K, V]] {
	if seg == protected {
		return c.protected
	}
	return c.probationary
}

// Get returns the value for key. A probationary hit promotes the entry to
// protected, possibly demoting the protected tail back to probationary (and
// possibly evicting the probationary tail first to make room for that
// demotion). A protected hit just moves the entry to the front of protected.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		var zero V
		return zero, false
	}
	c.recordHit(n)
	return n.Value.value, true
}

// WithValue runs f with a pointer to key's value in place, applying the same
// promotion bookkeeping as Get but without copying V out. Returns false on a
// miss, in which case f is not called.
func (c *Cache[K, V]) WithValue(key K, f func(*V)) bool {
	n, ok := c.index[key]
	if !ok {
		c.m.RecordMiss(0)
		return false
	}
	c.recordHit(n)
	f(&n.Value.value)
	return true
}

// recordHit applies the promotion/demotion dance for a hit on n, in whichever
// segment it currently occupies, and records the hit metrics.
func (c *Cache[K, V]) recordHit(n *list.Node[record[K, V]]) {
	if n.Value.seg == protected {
		c.protected.MoveToFront(n)
		c.m.ProtectedHits++
	} else {
		c.probationary.Detach(n)
		if c.protected.Cap() > 0 && c.protected.Len() >= c.protected.Cap() {
			if tail := c.protected.Back(); tail != nil {
				c.protected.Detach(tail)
				tail.Value.seg = probationary
				if c.probationary.Cap() > 0 && c.probationary.Len() >= c.probationary.Cap() {
					c.evictProbationaryTail()
				}
				c.probationary.AttachExisting(tail)
				c.m.Demotions++
			}
		}
		n.Value.seg = protected
		c.protected.AttachExisting(n)
		c.m.Promotions++
		c.m.ProbationaryHits++
	}

	n.Value.lastAccessed = c.now()
	c.m.RecordHit(n.Value.size)
}

// Contains reports whether key is present, without affecting segment
// placement or recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Put inserts or updates key with size 1.
func (c *Cache[K, V]) Put(key K, value V) (record0[K, V], bool) {
	return c.PutWithSize(key, value, 1)
}

// PutWithSize inserts or updates key→value with an explicit declared size.
// An existing key is updated in place and moved to the front of its current
// segment. A new key always enters probationary; if the cache is full, the
// probationary tail is evicted first, falling back to the protected tail
// only when probationary is empty.
func (c *Cache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	if n, ok := c.index[key]; ok {
		old := n.Value
		n.Value.value = value
		n.Value.size = size
		n.Value.lastAccessed = c.now()
		c.listFor(n.Value.seg).MoveToFront(n)
		c.m.RecordResize(old.size, size)
		return record0[K, V]{Key: old.key, Value: old.value}, true
	}

	now := c.now()
	rec := record[K, V]{key: key, value: value, size: size, createdAt: now, lastAccessed: now, seg: probationary}

	if c.totalLen() >= int(c.cfg.Capacity) {
		c.evictForInsert()
	}
	n := c.probationary.PushFrontUnchecked(rec)
	c.index[key] = n
	c.m.RecordInsertion(size)
	c.enforceSizeBudget()

	var zero record0[K, V]
	return zero, false
}

// Remove deletes key if present, from whichever segment it currently lives
// in, and returns its value.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	rec := c.removeNode(n)
	return rec.value, true
}

// Pop removes and returns an eviction candidate, preferring the
// probationary tail (mirroring the insert-time eviction order) and falling
// back to the protected tail when probationary is empty.
func (c *Cache[K, V]) Pop() (K, V, bool) {
	n := c.probationary.Back()
	if n == nil {
		n = c.protected.Back()
	}
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	rec := c.removeNode(n)
	return rec.key, rec.value, true
}

// PopReverse removes and returns the most-recently-used entry overall,
// preferring the protected front (protected holds the more durably valuable
// keys) and falling back to the probationary front when protected is empty.
func (c *Cache[K, V]) PopReverse() (K, V, bool) {
	n := c.protected.Front()
	if n == nil {
		n = c.probationary.Front()
	}
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
	c.probationary.Clear()
	c.protected.Clear()
	c.index = make(map[K]*list.Node[record[K, V]], c.cfg.Capacity)
	c.m.Size = 0
}

// Len returns the number of resident entries across both segments.
func (c *Cache[K, V]) Len() int { return c.totalLen() }

// Metrics returns a deterministic snapshot of this cache's counters.
func (c *Cache[K, V]) Metrics() metrics.Snapshot { return c.m.ToSnapshot(uint64(c.totalLen())) }

func (c *Cache[K, V]) totalLen() int { return c.probationary.Len() + c.protected.Len() }

func (c *Cache[K, V]) evictForInsert() {
	if c.probationary.Len() > 0 {
		c.evictProbationaryTail()
		return
	}
	c.evictProtectedTail()
}

func (c *Cache[K, V]) evictProbationaryTail() {
	if n := c.probationary.Back(); n != nil {
		c.m.ProbationaryEvictions++
		c.removeNode(n)
	}
}

func (c *Cache[K, V]) evictProtectedTail() {
	if n := c.protected.Back(); n != nil {
		c.m.ProtectedEvictions++
		c.removeNode(n)
	}
}

func (c *Cache[K, V]) removeNode(n *list.Node[record[K, V]]) record[K, V] {
	rec := c.listFor(n.Value.seg).Remove(n)
	delete(c.index, rec.key)
	c.m.RecordEviction(rec.size)
	return rec
}

func (c *Cache[K, V]) enforceSizeBudget() {
	if c.cfg.MaxSize == 0 {
		return
	}
	for c.m.Size > c.cfg.MaxSize {
		if c.totalLen() == 0 {
			break
		}
		c.evictForInsert()
	}
}
