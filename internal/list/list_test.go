package list

import "testing"

func TestPushFrontOrder(t *testing.T) {
	l := New[int](0)
	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)

	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}
	if got := l.Front().Value; got != 3 {
		t.Fatalf("front = %d, want 3", got)
	}
	if got := l.Back().Value; got != 1 {
		t.Fatalf("back = %d, want 1", got)
	}
}

func TestPushFrontCapacity(t *testing.T) {
	l := New[int](2)
	if _, ok := l.PushFront(1); !ok {
		t.Fatal("first push should succeed")
	}
	if _, ok := l.PushFront(2); !ok {
		t.Fatal("second push should succeed")
	}
	if _, ok := l.PushFront(3); ok {
		t.Fatal("third push should fail: list is at capacity")
	}
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2 (failed push must not mutate)", l.Len())
	}
}

func TestPushFrontUncheckedBypassesCapacity(t *testing.T) {
	l := New[int](1)
	l.PushFrontUnchecked(1)
	l.PushFrontUnchecked(2)
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}
}

func TestMoveToFront(t *testing.T) {
	l := New[int](0)
	_, _ = l.PushFront(1)
	n2, _ := l.PushFront(2)
	_, _ = l.PushFront(3)
	// order: 3,2,1

	l.MoveToFront(n2)
	if l.Front().Value != 2 {
		t.Fatalf("front = %d, want 2", l.Front().Value)
	}
	if l.Back().Value != 1 {
		t.Fatalf("back = %d, want 1", l.Back().Value)
	}
	if l.Len() != 3 {
		t.Fatalf("len changed by MoveToFront: %d", l.Len())
	}

	// moving the current front is a no-op
	l.MoveToFront(l.Front())
	if l.Front().Value != 2 {
		t.Fatalf("front changed unexpectedly: %d", l.Front().Value)
	}
}

func TestDetachAndAttachExisting(t *testing.T) {
	a := New[string](0)
	b := New[string](0)

	n, _ := a.PushFront("x")
	a.PushFront("y")

	a.Detach(n)
	if a.Len() != 1 {
		t.Fatalf("a.Len() = %d, want 1 after detach", a.Len())
	}

	b.AttachExisting(n)
	if b.Len() != 1 {
		t.Fatalf("b.Len() = %d, want 1 after attach", b.Len())
	}
	if b.Front().Value != "x" {
		t.Fatalf("b.Front() = %q, want x", b.Front().Value)
	}
}

func TestRemove(t *testing.T) {
	l := New[int](0)
	n1, _ := l.PushFront(1)
	l.PushFront(2)

	v := l.Remove(n1)
	if v != 1 {
		t.Fatalf("Remove returned %d, want 1", v)
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}

	// double-remove is a documented no-op
	if v := l.Remove(n1); v != 0 {
		t.Fatalf("double remove returned %d, want zero value", v)
	}
}

func TestPopFrontPopBack(t *testing.T) {
	l := New[int](0)
	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)
	// order: 3,2,1

	v, ok := l.PopFront()
	if !ok || v != 3 {
		t.Fatalf("PopFront = %d,%v want 3,true", v, ok)
	}
	v, ok = l.PopBack()
	if !ok || v != 1 {
		t.Fatalf("PopBack = %d,%v want 1,true", v, ok)
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
}

func TestClearEmptiesList(t *testing.T) {
	l := New[int](0)
	for i := 0; i < 5; i++ {
		l.PushFront(i)
	}
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("len = %d, want 0 after Clear", l.Len())
	}
	if _, ok := l.PopFront(); ok {
		t.Fatal("PopFront after Clear should report absent")
	}
}

func TestEmptyListOperationsAreSafe(t *testing.T) {
	l := New[int](0)
	if l.Front() != nil || l.Back() != nil {
		t.Fatal("empty list must report nil front/back")
	}
	if _, ok := l.PopFront(); ok {
		t.Fatal("PopFront on empty list must report absent")
	}
	if _, ok := l.PopBack(); ok {
		t.Fatal("PopBack on empty list must report absent")
	}
	l.Detach(nil)  // must not panic
	l.Remove(nil)  // must not panic
	l.MoveToFront(nil) // must not panic
}
