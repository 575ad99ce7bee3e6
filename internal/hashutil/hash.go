// Package hashutil provides the default key-hashing strategy for the
// concurrent (lock-striped) cache variants, plus the small bit-twiddling
// helpers (power-of-two rounding, shard index) the segmented caches need. It
// generalizes the teacher's internal/util package (Fnv64a / NextPow2 /
// ReasonableShardCount) and promotes cespare/xxhash — already pulled in
// transitively through prometheus/client_golang — to the default
// string/byte hasher, matching the spec's call for "a hasher with good
// worst-case distribution."
package hashutil

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes a 64-bit digest for a key. This is the hash_builder
// option from the spec's configuration table.
type Hasher[K comparable] func(K) uint64

// Default returns the built-in hasher for K. string/[]byte/fixed-size byte
// arrays are hashed with xxhash; integer-like keys are mixed through FNV-1a
// over their little-endian bytes; fmt.Stringer is a last-resort fallback.
// Unsupported key types panic at first use — deliberately, to avoid silently
// degrading to a poor-quality hash.
func Default[K comparable]() Hasher[K] {
	return func(k K) uint64 {
		switch v := any(k).(type) {
		case string:
			return xxhash.Sum64String(v)
		case []byte:
			return xxhash.Sum64(v)
		case [16]byte:
			return xxhash.Sum64(v[:])
		case [32]byte:
			return xxhash.Sum64(v[:])
		case [64]byte:
			return xxhash.Sum64(v[:])
		case uint8:
			return fnvMix(uint64(v))
		case uint16:
			return fnvMix(uint64(v))
		case uint32:
			return fnvMix(uint64(v))
		case uint64:
			return fnvMix(v)
		case uint:
			return fnvMix(uint64(v))
		case uintptr:
			return fnvMix(uint64(v))
		case int8:
			return fnvMix(uint64(uint8(v)))
		case int16:
			return fnvMix(uint64(uint16(v)))
		case int32:
			return fnvMix(uint64(uint32(v)))
		case int64:
			return fnvMix(uint64(v))
		case int:
			return fnvMix(uint64(v))
		case fmt.Stringer:
			return xxhash.Sum64String(v.String())
		default:
			panic(fmt.Sprintf("hashutil.Default: unsupported key type %T; provide a Hash func in Config", k))
		}
	}
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

// fnvMix hashes the 8 little-endian bytes of u without allocating. Used for
// integer-keyed caches, where xxhash's block structure gives no mixing
// advantage over FNV-1a on a single 8-byte input.
func fnvMix(u uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
