package gdsf

import "testing"

// S6 — GDSF with a size budget. A (size 100) and B (size 100) are inserted;
// A is hit five times, raising its frequency and thus its priority well
// above B's. C (size 0) must be rejected outright. D (size 900) then forces
// an eviction: B, the lowest-priority resident, is evicted to make room, but
// D — despite being by far the largest object and having the lowest
// frequency/size ratio of anything ever inserted — must survive, because its
// own insertion can never select itself as a victim.
func TestScenarioS6(t *testing.T) {
	c, err := New[string, string](Config[string]{Capacity: 10, MaxSize: 1000})
	if err != nil {
		t.Fatal(err)
	}
	c.PutWithSize("A", "a", 100)
	c.PutWithSize("B", "b", 100)
	for i := 0; i < 5; i++ {
		c.Get("A")
	}

	if _, ok := c.PutWithSize("C", "c", 0); ok {
		t.Fatal("size-0 insert must be rejected")
	}
	if _, ok := c.Get("C"); ok {
		t.Fatal("C must not be present after a rejected insert")
	}

	c.PutWithSize("D", "d", 900)

	if _, ok := c.Get("B"); ok {
		t.Fatal("B should have been evicted to make room for D")
	}
	if v, ok := c.Get("A"); !ok || v != "a" {
		t.Fatalf("A = %v,%v want a,true", v, ok)
	}
	if v, ok := c.Get("D"); !ok || v != "d" {
		t.Fatalf("D = %v,%v want d,true — D must not evict itself", v, ok)
	}
}

func TestConfigRejectsZeroCapacity(t *testing.T) {
	_, err := New[string, int](Config[string]{Capacity: 0})
	if err == nil {
		t.Fatal("expected a ConfigError for zero capacity")
	}
}

func TestSizeZeroInsertLeavesStateUnchanged(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4, MaxSize: 100})
	c.PutWithSize("a", 1, 10)
	before := c.Len()

	if _, ok := c.PutWithSize("z", 99, 0); ok {
		t.Fatal("expected size-0 PutWithSize to report ok=false")
	}
	if c.Len() != before {
		t.Fatalf("len changed from %d to %d after a rejected insert", before, c.Len())
	}
	if _, ok := c.Get("z"); ok {
		t.Fatal("rejected key must not appear")
	}
}

// A large, never-revisited object must be evicted before a small,
// frequently-hit one even when the large object was inserted more recently.
func TestLargeLowFrequencyObjectEvictedBeforeSmallHighFrequencyObject(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 10, MaxSize: 500})
	c.PutWithSize("small", 1, 10)
	for i := 0; i < 20; i++ {
		c.Get("small")
	}
	c.PutWithSize("big", 2, 480) // fits alongside small: 10+480 <= 500

	// Force a genuine squeeze: insert another big object that cannot coexist
	// with "big" under the budget.
	c.PutWithSize("big2", 3, 480)

	if _, ok := c.Get("small"); !ok {
		t.Fatal("small, high-frequency object should have survived")
	}
	if _, ok := c.Get("big"); ok {
		t.Fatal("big, never-revisited object should have been evicted first")
	}
}

func TestClearResetsGlobalAgeAndOccupancy(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 1, InitialAge: 3})
	c.Put("a", 1)
	c.Put("b", 2) // evicts a, global_age advances

	if snap := c.Metrics(); snap["gdsf_global_age"] == 3 {
		t.Fatal("global_age should have advanced past the initial age")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0 after Clear", c.Len())
	}
	if snap := c.Metrics(); snap["gdsf_global_age"] != 3 {
		t.Fatalf("global_age after Clear = %v, want initial age 3", snap["gdsf_global_age"])
	}
}

func TestPutOnExistingKeyReturnsOldEntryAndPreservesFrequency(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4})
	c.Put("a", 1)
	c.Get("a")
	c.Get("a")

	old, replaced := c.Put("a", 99)
	if !replaced || old.Value != 1 {
		t.Fatalf("Put on existing key = %v,%v want 1,true", old, replaced)
	}
	if f := c.index["a"].Value.freq; f != 3 {
		t.Fatalf("frequency after update = %d, want 3 (preserved)", f)
	}
	if v, ok := c.Get("a"); !ok || v != 99 {
		t.Fatalf("a = %v,%v want 99,true", v, ok)
	}
}

func TestPopReturnsLowestPriorityTail(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4})
	if _, _, ok := c.Pop(); ok {
		t.Fatal("Pop on empty cache must report absent")
	}
	c.Put("a", 1)
	c.Put("b", 2)
	for i := 0; i < 5; i++ {
		c.Get("b")
	}
	k, _, ok := c.Pop()
	if !ok || k != "a" {
		t.Fatalf("Pop = %v,%v, want a,true (lowest priority)", k, ok)
	}
}

func TestClearResetsOccupancyNotCumulativeMetrics(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4})
	c.Put("a", 1)
	c.Get("a")
	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0 after Clear", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after Clear")
	}
	snap := c.Metrics()
	if snap["hits"] == 0 {
		t.Fatal("cumulative hits should survive Clear")
	}
}
