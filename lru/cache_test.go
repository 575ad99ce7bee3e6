package lru

import "testing"

// S1 — LRU capacity 3, no repeats.
func TestScenarioS1(t *testing.T) {
	c, err := New[string, int](Config[string]{Capacity: 3})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)
	c.Put("D", 4)

	if _, ok := c.Get("A"); ok {
		t.Fatal("A should have been evicted")
	}
	if v, ok := c.Get("B"); !ok || v != 2 {
		t.Fatalf("B = %v,%v want 2,true", v, ok)
	}
	if v, ok := c.Get("C"); !ok || v != 3 {
		t.Fatalf("C = %v,%v want 3,true", v, ok)
	}
	if v, ok := c.Get("D"); !ok || v != 4 {
		t.Fatalf("D = %v,%v want 4,true", v, ok)
	}
	if c.Len() != 3 {
		t.Fatalf("len = %d, want 3", c.Len())
	}
}

// S2 — LRU with touch.
func TestScenarioS2(t *testing.T) {
	c, err := New[string, int](Config[string]{Capacity: 3})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("A", 1)
	c.Put("B", 2)
	c.Put("C", 3)
	c.Get("A")
	c.Put("D", 4)

	if v, ok := c.Get("A"); !ok || v != 1 {
		t.Fatalf("A = %v,%v want 1,true", v, ok)
	}
	if _, ok := c.Get("B"); ok {
		t.Fatal("B should have been evicted")
	}
	if v, ok := c.Get("C"); !ok || v != 3 {
		t.Fatalf("C = %v,%v want 3,true", v, ok)
	}
	if v, ok := c.Get("D"); !ok || v != 4 {
		t.Fatalf("D = %v,%v want 4,true", v, ok)
	}
}

func TestConfigRejectsZeroCapacity(t *testing.T) {
	_, err := New[string, int](Config[string]{Capacity: 0})
	if err == nil {
		t.Fatal("expected a ConfigError for zero capacity")
	}
}

func TestPutExistingKeyReturnsOldEntryAndLeavesLenUnchanged(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4})
	c.Put("a", 1)
	before := c.Len()
	old, ok := c.Put("a", 2)
	if !ok || old.Value != 1 {
		t.Fatalf("Put on existing key = %v,%v want old value 1, true", old, ok)
	}
	if c.Len() != before {
		t.Fatalf("len changed: %d -> %d", before, c.Len())
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("a = %d, want 2", v)
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

func TestPopAndPopReverse(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 4})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	// order front->back: c, b, a

	k, v, ok := c.Pop()
	if !ok || k != "a" || v != 1 {
		t.Fatalf("Pop = %v,%v,%v want a,1,true", k, v, ok)
	}
	k, v, ok = c.PopReverse()
	if !ok || k != "c" || v != 3 {
		t.Fatalf("PopReverse = %v,%v,%v want c,3,true", k, v, ok)
	}
}

func TestMaxSizeEvictsBySize(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 10, MaxSize: 10})
	c.PutWithSize("a", 1, 6)
	c.PutWithSize("b", 2, 6) // total 12 > 10, evict tail (a)

	if _, ok := c.Get("a"); ok {
		t.Fatal("a should have been evicted to respect MaxSize")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("b = %v,%v want 2,true", v, ok)
	}
}

func TestTouchThenInsertPreservesKey(t *testing.T) {
	c, _ := New[string, int](Config[string]{Capacity: 3})
	c.Put("k", 0)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("k")
	c.Put("c", 3) // evicts a (next-oldest), not k

	if _, ok := c.Get("k"); !ok {
		t.Fatal("k should survive: it was touched")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a should have been evicted")
	}
}
