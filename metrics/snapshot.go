// Package metrics implements the two-layer metrics model from spec.md §4.3:
// Core (requests, hits, bytes in/out, evictions, occupancy, capacity, and
// derived rates) shared by every cache, plus an extension type for each of
// SLRU, LFU, LFUDA and GDSF carrying algorithm-specific counters. The reporting contract is a
// deterministically ordered name->value mapping; Go has no ordered map in
// the standard library, so Snapshot sorts at report time, the same tradeoff
// original_source/src/metrics/mod.rs documents for choosing BTreeMap over
// HashMap ("negligible performance difference... deterministic behavior is
// invaluable for a simulation system").
package metrics

import "sort"

// Snapshot is a point-in-time metrics dump: metric name -> value.
type Snapshot map[string]float64

// KV is one entry of an Ordered() dump.
type KV struct {
	Name  string
	Value float64
}

// Ordered returns the snapshot's entries sorted lexicographically by name,
// so two runs over identical input produce byte-identical metric dumps.
func (s Snapshot) Ordered() []KV {
	out := make([]KV, 0, len(s))
	for k, v := range s {
		out = append(out, KV{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Concurrent caches never merge Snapshots directly (that would sum
// already-computed rates, which is wrong). Instead each policy's metrics
// type implements an Add(*T) method that sums raw counters across segments;
// the wrapper calls ToSnapshot once on the summed totals so every rate is
// recomputed from cache-wide sums. See (e.g.) lru.ConcurrentCache.Metrics.
