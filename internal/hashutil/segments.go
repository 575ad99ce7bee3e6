package hashutil

import "runtime"

// DefaultSegments picks a practical segment count for a concurrent cache of
// the given total entry capacity: nextPow2(2*GOMAXPROCS), clamped to
// [1, capacity], mirroring the teacher's ReasonableShardCount heuristic and
// the spec's "typically 16, clamped to [1, C]" guidance.
func DefaultSegments(capacity uint32) uint32 {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := NextPow2(uint64(p * 2))
	if n > uint64(capacity) {
		n = uint64(capacity)
	}
	if n < 1 {
		n = 1
	}
	return uint32(n)
}
