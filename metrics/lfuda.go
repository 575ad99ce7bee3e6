package metrics

// LFUDA extends Core with global age and aging-benefit counters, grounded
// on original_source/src/metrics/lfuda.rs.
type LFUDA struct {
	Core

	GlobalAge        uint64
	AgingEvents      uint64  // number of evictions that advanced GlobalAge
	AgingBenefitSum  float64 // sum of (new entry priority - its frequency) at insertion time, i.e. the age component it inherited
	MinPriority      uint64
	MaxPriority      uint64
}

// Add sums counters; GlobalAge/MinPriority/MaxPriority take the max/min
// across segments rather than summing (they are cache-wide scalars, one
// genuine value per segment, not independent contributions).
func (m *LFUDA) Add(o *LFUDA) {
	m.Core.Add(&o.Core)
	m.AgingEvents += o.AgingEvents
	m.AgingBenefitSum += o.AgingBenefitSum
	if o.GlobalAge > m.GlobalAge {
		m.GlobalAge = o.GlobalAge
	}
	if m.MinPriority == 0 || (o.MinPriority != 0 && o.MinPriority < m.MinPriority) {
		m.MinPriority = o.MinPriority
	}
	if o.MaxPriority > m.MaxPriority {
		m.MaxPriority = o.MaxPriority
	}
}

// ToSnapshot renders Core plus the LFUDA-specific counters.
func (m *LFUDA) ToSnapshot(entries uint64) Snapshot {
	s := m.Core.ToSnapshot(entries)
	s["lfuda_global_age"] = float64(m.GlobalAge)
	s["lfuda_aging_events"] = float64(m.AgingEvents)
	s["lfuda_aging_benefit_sum"] = m.AgingBenefitSum
	s["lfuda_min_priority"] = float64(m.MinPriority)
	s["lfuda_max_priority"] = float64(m.MaxPriority)
	return s
}
