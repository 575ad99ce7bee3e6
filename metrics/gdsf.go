package metrics

// GDSF extends Core with global age, priority bounds, a size-distribution
// balance figure and a size-based eviction count, grounded on
// original_source/src/metrics/gdsf.rs.
type GDSF struct {
	Core

	GlobalAge         float64
	MinPriority       float64
	MaxPriority       float64
	SizeWeightedEvict uint64  // removals (evictions, Pop, PopReverse, Remove) of entries still at frequency 1
	SizeBalance       float64 // running mean of 1/size across resident entries, as a cheap size-distribution signal
}

// Add sums counters; GlobalAge/MinPriority/MaxPriority take the max/min
// across segments, matching LFUDA's treatment of cache-wide scalars.
func (m *GDSF) Add(o *GDSF) {
	m.Core.Add(&o.Core)
	m.SizeWeightedEvict += o.SizeWeightedEvict
	if o.GlobalAge > m.GlobalAge {
		m.GlobalAge = o.GlobalAge
	}
	if m.MinPriority == 0 || (o.MinPriority != 0 && o.MinPriority < m.MinPriority) {
		m.MinPriority = o.MinPriority
	}
	if o.MaxPriority > m.MaxPriority {
		m.MaxPriority = o.MaxPriority
	}
	// SizeBalance is an average, not a sum. Add has no entry counts, so it
	// only takes the midpoint of the two values; gdsf.ConcurrentCache.Metrics
	// overwrites the result with the entry-weighted mean.
	m.SizeBalance = (m.SizeBalance + o.SizeBalance) / 2
}

// ToSnapshot renders Core plus the GDSF-specific counters.
func (m *GDSF) ToSnapshot(entries uint64) Snapshot {
	s := m.Core.ToSnapshot(entries)
	s["gdsf_global_age"] = m.GlobalAge
	s["gdsf_min_priority"] = m.MinPriority
	s["gdsf_max_priority"] = m.MaxPriority
	s["gdsf_size_weighted_evictions"] = float64(m.SizeWeightedEvict)
	s["gdsf_size_balance"] = m.SizeBalance
	return s
}
