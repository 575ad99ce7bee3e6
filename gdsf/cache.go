package gdsf

import (
	"math"

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
	quant        int64 // quantized priority bucket this node currently lives in
}

// record0 is the (key, value) pair returned when Put replaces an existing
// entry.
type record0[K comparable, V any] struct {
	Key   K
	Value V
}

func priorityOf(freq, size uint64, globalAge float64) float64 {
	return float64(freq)/float64(size) + globalAge
}

func quantize(priority float64) int64 {
	return int64(math.Floor(priority * 1000))
}

// Cache is a single-threaded GDSF cache: entries are bucketed by quantized
// priority (frequency/size + global_age), which lets GDSF reuse the
// ordered-map-of-lists shape LFU and LFUDA use despite its fractional
// priority space. Not safe for concurrent use — see ConcurrentCache.
type Cache[K comparable, V any] struct {
	cfg         Config[K]
	index       map[K]*list.Node[record[K, V]]
	buckets     map[int64]*list.List[record[K, V]]
	minQuant    int64
	hasMin      bool
	globalAge   float64
	sumInvSize  float64
	clk         clock.Source
	m           metrics.GDSF
	log         zerolog.Logger
}

// New constructs a GDSF cache. Returns a *cachekit.ConfigError if
// cfg.Capacity is zero.
func New[K comparable, V any](cfg Config[K]) (*Cache[K, V], error) {
	if err := cachekit.ValidateCapacity("Capacity", cfg.Capacity); err != nil {
		return nil, err
	}
	log := cachekit.ResolveLogger(cfg.Logger)
	c := &Cache[K, V]{
		cfg:       cfg,
		index:     make(map[K]*list.Node[record[K, V]], cfg.Capacity),
		buckets:   make(map[int64]*list.List[record[K, V]]),
		globalAge: cfg.InitialAge,
		clk:       clock.Real{},
		log:       log,
	}
	if cfg.MaxSize > 0 {
		c.m.Capacity = cfg.MaxSize
	} else {
		c.m.Capacity = uint64(cfg.Capacity)
	}
	log.Debug().Uint32("capacity", cfg.Capacity).Float64("initial_age", cfg.InitialAge).Msg("gdsf cache constructed")
	return c, nil
}

func (c *Cache[K, V]) now() int64 { return c.clk.NowNano() }

func (c *Cache[K, V]) bucket(q int64) *list.List[record[K, V]] {
	bl, ok := c.buckets[q]
	if !ok {
		bl = list.New[record[K, V]](0)
		c.buckets[q] = bl
	}
	return bl
}

func (c *Cache[K, V]) noteMinCandidate(q int64) {
	if !c.hasMin || q < c.minQuant {
		c.minQuant, c.hasMin = q, true
	}
}

// bump increments n's frequency, moving it to the front of its (possibly
// unchanged) quantized bucket.
func (c *Cache[K, V]) bump(n *list.Node[record[K, V]]) {
	oldQ := n.Value.quant
	n.Value.freq++
	newQ := quantize(priorityOf(n.Value.freq, n.Value.size, c.globalAge))

	if newQ == oldQ {
		c.bucket(oldQ).MoveToFront(n)
		return
	}

	old := c.buckets[oldQ]
	old.Detach(n)
	if old.Len() == 0 {
		delete(c.buckets, oldQ)
		if c.hasMin && oldQ == c.minQuant {
			c.minQuant, c.hasMin = c.recomputeMinQuant()
		}
	}
	n.Value.quant = newQ
	c.bucket(newQ).AttachExisting(n)
	c.noteMinCandidate(newQ)
}

// Get returns the value for key, bumping its frequency and moving it to its
// new quantized priority bucket.
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
// size == 0 is rejected outright: the cache state is left unchanged and the
// key stays absent. An existing key's old node is pulled from its bucket,
// its frequency is reused, size and priority are recomputed, and it is
// reinserted at the front of the (possibly new) bucket. A new key starts at
// frequency 1; if the cache is full, the tail of the lowest quantized
// bucket is evicted first and global_age advances to that entry's priority.
func (c *Cache[K, V]) PutWithSize(key K, value V, size uint64) (record0[K, V], bool) {
	if size == 0 {
		var zero record0[K, V]
		return zero, false
	}

	if n, ok := c.index[key]; ok {
		old := n.Value
		freq := n.Value.freq
		oldQ := n.Value.quant

		ob := c.buckets[oldQ]
		ob.Detach(n)
		if ob.Len() == 0 {
			delete(c.buckets, oldQ)
			if c.hasMin && oldQ == c.minQuant {
				c.minQuant, c.hasMin = c.recomputeMinQuant()
			}
		}
		c.sumInvSize += 1/float64(size) - 1/float64(old.size)

		// n is detached from every bucket here, so it cannot be chosen as
		// its own eviction victim while we make room for its new size.
		if c.cfg.MaxSize > 0 {
			for c.m.Size-old.size+size > c.cfg.MaxSize && c.evictMin() {
			}
		}

		n.Value.value = value
		n.Value.size = size
		n.Value.lastAccessed = c.now()
		newQ := quantize(priorityOf(freq, size, c.globalAge))
		n.Value.quant = newQ
		c.bucket(newQ).AttachExisting(n)
		c.noteMinCandidate(newQ)
		c.m.RecordResize(old.size, size)
		return record0[K, V]{Key: old.key, Value: old.value}, true
	}

	if len(c.index) >= int(c.cfg.Capacity) {
		c.evictMin()
	}
	// Reserve room for the incoming entry before it exists, so it can never
	// be selected as its own eviction victim even if its size gives it the
	// lowest priority of anything in the cache.
	if c.cfg.MaxSize > 0 {
		for c.m.Size+size > c.cfg.MaxSize && c.evictMin() {
		}
	}

	now := c.now()
	q := quantize(priorityOf(1, size, c.globalAge))
	rec := record[K, V]{key: key, value: value, size: size, createdAt: now, lastAccessed: now, freq: 1, quant: q}
	n := c.bucket(q).PushFrontUnchecked(rec)
	c.index[key] = n
	c.noteMinCandidate(q)
	c.sumInvSize += 1 / float64(size)
	c.m.RecordInsertion(size)

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

// Pop removes and returns the tail of the lowest quantized priority bucket,
// and advances global_age to that entry's (unquantized) priority.
func (c *Cache[K, V]) Pop() (K, V, bool) {
	if !c.hasMin {
		var zk K
		var zv V
		return zk, zv, false
	}
	bl, ok := c.buckets[c.minQuant]
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
	p := priorityOf(n.Value.freq, n.Value.size, c.globalAge)
	rec := c.removeNode(n)
	c.advanceAge(p)
	return rec.key, rec.value, true
}

// PopReverse removes and returns the front of the highest quantized
// priority bucket. Unlike Pop, this does not advance global_age.
func (c *Cache[K, V]) PopReverse() (K, V, bool) {
	maxQ, ok := c.maxQuant()
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := c.buckets[maxQ].Front()
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
	c.buckets = make(map[int64]*list.List[record[K, V]])
	c.minQuant, c.hasMin = 0, false
	c.globalAge = c.cfg.InitialAge
	c.sumInvSize = 0
	c.m.Size = 0
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// Metrics returns a deterministic snapshot of this cache's counters.
func (c *Cache[K, V]) Metrics() metrics.Snapshot {
	c.m.GlobalAge = c.globalAge
	if c.hasMin {
		c.m.MinPriority = float64(c.minQuant) / 1000.0
	} else {
		c.m.MinPriority = 0
	}
	if maxQ, ok := c.maxQuant(); ok {
		c.m.MaxPriority = float64(maxQ) / 1000.0
	} else {
		c.m.MaxPriority = 0
	}
	if n := len(c.index); n > 0 {
		c.m.SizeBalance = c.sumInvSize / float64(n)
	} else {
		c.m.SizeBalance = 0
	}
	return c.m.ToSnapshot(uint64(len(c.index)))
}

// evictMin evicts the tail of the lowest quantized priority bucket and
// reports whether it found anything to evict.
func (c *Cache[K, V]) evictMin() bool {
	if !c.hasMin {
		return false
	}
	bl, ok := c.buckets[c.minQuant]
	if !ok {
		return false
	}
	n := bl.Back()
	if n == nil {
		return false
	}
	p := priorityOf(n.Value.freq, n.Value.size, c.globalAge)
	c.removeNode(n)
	c.advanceAge(p)
	return true
}

func (c *Cache[K, V]) advanceAge(evictedPriority float64) {
	c.globalAge = evictedPriority
}

func (c *Cache[K, V]) removeNode(n *list.Node[record[K, V]]) record[K, V] {
	q := n.Value.quant
	bl := c.buckets[q]
	rec := bl.Remove(n)
	delete(c.index, rec.key)
	if bl.Len() == 0 {
		delete(c.buckets, q)
		if c.hasMin && q == c.minQuant {
			c.minQuant, c.hasMin = c.recomputeMinQuant()
		}
	}
	c.sumInvSize -= 1 / float64(rec.size)
	// Count every removal (eviction, Pop, PopReverse or Remove) of an entry
	// never revisited since insertion, whose frequency term is still 1/size.
	if rec.freq == 1 {
		c.m.SizeWeightedEvict++
	}
	c.m.RecordEviction(rec.size)
	return rec
}

// recomputeMinQuant scans the (small, capacity-bounded) set of occupied
// quantized priority levels. Needed because, unlike LFUDA's integer
// priorities, the quantized priority a vacated bucket's occupant moves to
// is not guaranteed adjacent to the bucket it left.
func (c *Cache[K, V]) recomputeMinQuant() (int64, bool) {
	var min int64
	ok := false
	for q := range c.buckets {
		if !ok || q < min {
			min, ok = q, true
		}
	}
	return min, ok
}

func (c *Cache[K, V]) maxQuant() (int64, bool) {
	var max int64
	ok := false
	for q := range c.buckets {
		if !ok || q > max {
			max, ok = q, true
		}
	}
	return max, ok
}
