package metrics

// SLRU extends Core with per-segment hit/eviction counters and
// promotion/demotion counts, grounded on
// original_source/src/metrics/slru.rs.
type SLRU struct {
	Core

	ProbationaryHits      uint64
	ProtectedHits         uint64
	ProbationaryEvictions uint64
	ProtectedEvictions    uint64
	Promotions            uint64 // probationary -> protected
	Demotions             uint64 // protected -> probationary (on promotion overflow)
}

// Add sums another SLRU's counters into m.
func (m *SLRU) Add(o *SLRU) {
	m.Core.Add(&o.Core)
	m.ProbationaryHits += o.ProbationaryHits
	m.ProtectedHits += o.ProtectedHits
	m.ProbationaryEvictions += o.ProbationaryEvictions
	m.ProtectedEvictions += o.ProtectedEvictions
	m.Promotions += o.Promotions
	m.Demotions += o.Demotions
}

// ToSnapshot renders Core plus the SLRU-specific counters.
func (m *SLRU) ToSnapshot(entries uint64) Snapshot {
	s := m.Core.ToSnapshot(entries)
	s["slru_probationary_hits"] = float64(m.ProbationaryHits)
	s["slru_protected_hits"] = float64(m.ProtectedHits)
	s["slru_probationary_evictions"] = float64(m.ProbationaryEvictions)
	s["slru_protected_evictions"] = float64(m.ProtectedEvictions)
	s["slru_promotions"] = float64(m.Promotions)
	s["slru_demotions"] = float64(m.Demotions)
	return s
}
