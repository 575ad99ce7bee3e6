package gdsf

import (
	"fmt"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestConcurrentSegmentCount(t *testing.T) {
	c, err := NewConcurrent[string, int](Config[string]{Capacity: 64, Segments: 8})
	if err != nil {
		t.Fatal(err)
	}
	if c.SegmentCount() != 8 {
		t.Fatalf("segment count = %d, want 8", c.SegmentCount())
	}
}

func TestConcurrentRejectsTooManySegments(t *testing.T) {
	_, err := NewConcurrent[string, int](Config[string]{Capacity: 4, Segments: 8})
	if err == nil {
		t.Fatal("expected ConfigError: segments > capacity")
	}
}

func TestConcurrentLenNeverExceedsCapacity(t *testing.T) {
	c, _ := NewConcurrent[int, int](Config[int]{Capacity: 100, Segments: 4})
	for i := 0; i < 1000; i++ {
		c.Put(i, i)
	}
	if c.Len() > 100 {
		t.Fatalf("len = %d, exceeds capacity 100", c.Len())
	}
}

func TestConcurrentGetPutRemoveUnderLoad(t *testing.T) {
	c, _ := NewConcurrent[int, int](Config[int]{Capacity: 256, Segments: 8})

	var g errgroup.Group
	for w := 0; w < 16; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 2000; i++ {
				key := (w*2000 + i) % 512
				c.Put(key, key)
				if v, ok := c.Get(key); ok && v != key {
					return fmt.Errorf("got %d for key %d", v, key)
				}
				if i%7 == 0 {
					c.Remove(key)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestConcurrentCumulativeHitsNeverExceedRequests(t *testing.T) {
	c, _ := NewConcurrent[int, int](Config[int]{Capacity: 32, Segments: 4})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Put(i%16, i)
				c.Get(i % 32)
			}
		}(w)
	}
	wg.Wait()

	snap := c.Metrics()
	if snap["hits"] > snap["requests"] {
		t.Fatalf("hits %v exceed requests %v", snap["hits"], snap["requests"])
	}
}

func TestConcurrentGetWithNoCopy(t *testing.T) {
	c, _ := NewConcurrent[string, []int](Config[string]{Capacity: 8})
	c.Put("k", []int{1, 2, 3})

	found := c.GetWith("k", func(v *[]int) {
		*v = append(*v, 4)
	})
	if !found {
		t.Fatal("expected GetWith to find k")
	}
	v, _ := c.Get("k")
	if len(v) != 4 || v[3] != 4 {
		t.Fatalf("value not mutated in place: %v", v)
	}
}

func TestConcurrentPopWalksSegmentsInOrder(t *testing.T) {
	c, _ := NewConcurrent[int, int](Config[int]{Capacity: 16, Segments: 4})
	if _, _, ok := c.Pop(); ok {
		t.Fatal("Pop on empty cache must report absent")
	}
	c.Put(1, 1)
	k, v, ok := c.Pop()
	if !ok || k != 1 || v != 1 {
		t.Fatalf("Pop = %v,%v,%v want 1,1,true", k, v, ok)
	}
}
