// Package cachekit provides the shared configuration-error type used by
// every policy package (lru, slru, lfu, lfuda, gdsf). The policies
// themselves live in their own packages because the spec defines five
// closed, named cache types rather than one mechanism with a pluggable
// strategy — see SPEC_FULL.md for the rationale.
//
// Design
//
//   - Concurrency: each policy's single-threaded Cache[K,V] is not safe for
//     concurrent use. Its ConcurrentCache[K,V] sibling shards the key space
//     into a fixed array of segments, each an independent single-threaded
//     cache guarded by its own exclusive mutex (no reader/writer lock: every
//     Get mutates policy state, so RWMutex would promote to exclusive on
//     every read anyway).
//
//   - Storage: every policy composes a map[K]*list.Node[record] hash index
//     with one or more internal/list.List orderings. Lookups, inserts and
//     list moves are O(1) expected; LFU, LFUDA and GDSF additionally scan
//     their set of occupied frequency/priority buckets when the minimum
//     bucket empties, and in PopReverse and Metrics.
//
//   - Metrics: package metrics defines metrics.Core (used directly by LRU)
//     plus an extension type for each of SLRU, LFU, LFUDA and GDSF, reported
//     through a deterministically (lexicographically)
//     ordered metrics.Snapshot, and an optional Prometheus reporter adapter.
//
//   - Configuration: each policy package defines its own Config struct with
//     exported fields (no builder, no functional options); invalid values
//     are rejected at construction with a *cachekit.ConfigError. There are
//     no errors anywhere else in the API: misses are (value, false), a Put
//     that replaces an existing key returns (old entry, true), and GDSF's
//     size-0 rejection is a silent no-op, per the spec's error taxonomy.
//     Entries evicted to make room are not returned by Put; they show up
//     only in the evictions metric.
package cachekit
