package metrics

// LFU extends Core with the frequency-distribution counters spec.md §4.3
// calls for: min/max/active frequency levels and the increment count.
// Grounded on original_source/src/metrics/lfu.rs, which is authoritative for
// which counters exist (spec.md only describes the category in prose).
type LFU struct {
	Core

	MinFrequency    uint64
	MaxFrequency    uint64
	ActiveLevels    uint64 // number of distinct non-empty frequency buckets
	IncrementEvents uint64 // number of frequency increments (hits that bump f)
}

// Add sums another LFU's counters into m, taking the union's min/max for
// the frequency bounds rather than summing them.
func (m *LFU) Add(o *LFU) {
	m.Core.Add(&o.Core)
	m.IncrementEvents += o.IncrementEvents
	m.ActiveLevels += o.ActiveLevels
	if m.MinFrequency == 0 || (o.MinFrequency != 0 && o.MinFrequency < m.MinFrequency) {
		m.MinFrequency = o.MinFrequency
	}
	if o.MaxFrequency > m.MaxFrequency {
		m.MaxFrequency = o.MaxFrequency
	}
}

// ToSnapshot renders Core plus the LFU-specific counters.
func (m *LFU) ToSnapshot(entries uint64) Snapshot {
	s := m.Core.ToSnapshot(entries)
	s["lfu_min_frequency"] = float64(m.MinFrequency)
	s["lfu_max_frequency"] = float64(m.MaxFrequency)
	s["lfu_active_levels"] = float64(m.ActiveLevels)
	s["lfu_increment_events"] = float64(m.IncrementEvents)
	return s
}
