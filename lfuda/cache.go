package lfuda

import (
	"github.com/mkrylov/cachekit"
	"github.com/mkrylov/cachekit/internal/clock"
	"github.com/mkrylov/cachekit/internal/list"
	"github.com/mkrylov/cachekit/metrics"
	"github.com/rs/zerolog"
)

type record[K comparable, V any] struct {
	key            K
	value          V
	size           uint64
	createdAt      int64
	lastAccessed   int64
	freq           uint64
	ageAtInsertion uint64
}

func (r *record[K, V]) priority() uint64 { return r.freq + r.ageAtInsertion }

// record0 is the (key, value) pair returned when Put replaces an existing
// entry.
type record0[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a single-threaded LFUDA cache: entries are bucketed by effective
// priority (frequency + age at insertion) rather than raw frequency, and
// global_age absorbs the priority of each evicted entry. Not safe for
// concurrent use — see ConcurrentCache.
type Cache[K comparable, V any] struct {
	cfg         Config[K]
	index       map[K]*list.Node[record[K, V]]
	buckets     map[uint64]*list.List[record[K, V]]
	minPriority uint64
	globalAge   uint64
	clk         clock.Source
	m           metrics.LFUDA
	log         zerolog.Logger
}

// New constructs an LFUDA cache. Returns a *cachekit.ConfigError if
// cfg.Capacity is zero.
func New[K comparable, V any](cfg Config[K]) (*Cache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	log := cachekit.ResolveLogger(cfg.Logger)
	c := &Cache[K, V]{
		cfg:       cfg,
		index:     make(map[K]*list.Node[record[K, V]], cfg.Capacity),
		buckets:   make(map[uint64]*list.List[record[K, V]]),
		globalAge: cfg.InitialAge,
		clk:       clock.Real{},
		log:       log,
	}
	if cfg.MaxSize > 0 {
		c.m.Capacity = cfg.MaxSize
	} else {
		c.m.Capacity = uint64(cfg.Capacity)
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Uint64("initial_age", cfg.InitialAge).Msg("lfuda cache constructed")
	return c, nil
}

func (c *Cache[K, V]) now() int64 { return c.clk.NowNano() }

func (c *Cache[K, V]) bucket(p uint64) *list.List[record[K, V]] {
	bl, ok := c.buckets[p]
	if !ok {
		bl = list.New[record[K, V]](0)
		c.buckets[p] = bl
	}
	return bl
}

// bump increments n's frequency, moving it to the front of its new priority
// bucket. Priorities are integers that advance by exactly 1 per bump, so
// when the vacated bucket empties and was the minimum, the node's
// destination bucket is provably the new minimum.
func (c *Cache[K, V]) bump(n *list.Node[record[K, V]]) {
	oldP := n.Value.priority()
	n.Value.freq++
	newP := n.Value.priority()

	if newP == oldP {
		c.bucket(oldP).MoveToFront(n)
		return
	}

	old := c.buckets[oldP]
	old.Detach(n)
	if old.Len() == 0 {
		delete(c.buckets, oldP)
		if oldP == c.minPriority {
			c.minPriority = newP
		}
	}
	c.bucket(newP).AttachExisting(n)
}

// Get returns the value for key, bumping its frequency and moving it to the
// new priority bucket.
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
// priority bump as Get. Returns false on a miss, in which case f is not
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

// Contains reports whether key is present, without affecting its priority.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Put inserts or updates key with size 1.
func (c *Cache[K, V]) Put(key K, value V) (record0[K, V], bool) {
	return c.PutWithSize(key, value, 1)
}

// PutWithSize inserts or updates key→value with an explicit declared size.
// An existing key is updated in place, its metadata untouched, and moved to
// the front of its current bucket. A new key starts at frequency 1 with
// age_at_insertion = global_age, i.e. priority 1+global_age; if the cache is
// full, the tail of the min-priority bucket is evicted first and
// global_age advances to that entry's priority.
func (c *Cache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	if n, ok := c.index[key]; ok {
		old := n.Value
		n.Value.value = value
		n.Value.size = size
		n.Value.lastAccessed = c.now()
		c.bucket(n.Value.priority()).MoveToFront(n)
		c.m.RecordResize(old.size, size)
		return record0[K, V]{Key: old.key, Value: old.value}, true
	}

	wasEmpty := len(c.index) == 0
	if len(c.index) >= int(c.cfg.Capacity) {
		c.evictMin()
		wasEmpty = len(c.index) == 0
	}

	now := c.now()
	age := c.globalAge
	rec := record[K, V]{key: key, value: value, size: size, createdAt: now, lastAccessed: now, freq: 1, ageAtInsertion: age}
	p := rec.priority()
	n := c.bucket(p).PushFrontUnchecked(rec)
	c.index[key] = n
	if wasEmpty || p < c.minPriority {
		c.minPriority = p
	}
	c.m.AgingBenefitSum += float64(age)
	c.m.RecordInsertion(size)
	c.enforceSizeBudget()

	var zero record0[K, V]
	return zero, false
}

// Remove deletes key if present and returns its value. Does not advance
// global_age — only eviction-path removals do.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	rec := c.removeNode(n)
	return rec.value, true
}

// Pop removes and returns the tail of the min-priority bucket, and advances
// global_age to that priority.
func (c *Cache[K, V]) Pop() (K, V, bool) {
	bl, ok := c.buckets[c.minPriority]
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
	p := n.Value.priority()
	rec := c.removeNode(n)
	c.advanceAge(p)
	return rec.key, rec.value, true
}

// PopReverse removes and returns the front of the highest-priority bucket.
// Unlike Pop, this does not advance global_age: it is not an eviction.
func (c *Cache[K, V]) PopReverse() (K, V, bool) {
	maxP, ok := c.maxPriority()
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := c.buckets[maxP].Front()
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	rec := c.removeNode(n)
	return rec.key, rec.value, true
}

// Clear empties the cache and resets global_age to the configured initial
// age. Cumulative metric counters are not reset.
func (c *Cache[K, V]) Clear() {
	c.index = make(map[K]*list.Node[record[K, V]], c.cfg.Capacity)
	c.buckets = make(map[uint64]*list.List[record[K, V]])
	c.minPriority = 0
	c.globalAge = c.cfg.InitialAge
	c.m.Size = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// Metrics returns a deterministic snapshot of this cache's counters.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	c.m.GlobalAge = c.globalAge
	c.m.MinPriority = c.minPriority
	if maxP, ok := c.maxPriority(); ok {
		c.m.MaxPriority = maxP
	} else {
		c.m.MaxPriority = 0
	}
	return c.m.ToSnapshot(uint64(len(c.index)))
}

func (c *Cache[K, V]) evictMin() {
	bl, ok := c.buckets[c.minPriority]
	if !ok {
		return
	}
	n := bl.Back()
	if n == nil {
		return
	}
	p := n.Value.priority()
	c.removeNode(n)
	c.advanceAge(p)
}

func (c *Cache[K, V]) advanceAge(evictedPriority uint64) {
	c.globalAge = evictedPriority
	c.m.AgingEvents++
}

func (c *Cache[K, V]) removeNode(n *list.Node[record[K, V]]) record[K, V] {
	p := n.Value.priority()
	bl := c.buckets[p]
	rec := bl.Remove(n)
	delete(c.index, rec.key)
	if bl.Len() == 0 {
		delete(c.buckets, p)
		if p == c.minPriority {
			c.minPriority = c.recomputeMinPriority()
		}
	}
	c.m.RecordEviction(rec.size)
	return rec
}

// recomputeMinPriority scans the (small, capacity-bounded) set of occupied
// priority levels. Needed because, unlike bump's always-populated
// destination bucket, the next priority above an emptied bucket is not
// guaranteed to be occupied here.
func (c *Cache[K, V]) recomputeMinPriority() uint64 {
	min, ok := uint64(0), false
	for p := range c.buckets {
		if !ok || p < min {
			min, ok = p, true
		}
	}
	return min
}

func (c *Cache[K, V]) maxPriority() (uint64, bool) {
	var max uint64
	ok := false
	for p := range c.buckets {
		if !ok || p > max {
			max, ok = p, true
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
