package queue_test

import (
	"errors"
	"testing"

	"github.com/randomizedcoder/constqueue/queue"
)

// TestNew_InvalidSize_Panics verifies that a ring without slots is refused.
func TestNew_InvalidSize_Panics(t *testing.T) {
	for _, size := range []int{0, -1} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected New(%d) to panic", size)
				}
			}()
			queue.New[int](size)
		}()
	}
}

// TestRing_SizeOne tests the degenerate ring: one slot, always reserved,
// so it is empty and full at the same time.
func TestRing_SizeOne(t *testing.T) {
	q := queue.New[int](1)

	if !q.Empty() {
		t.Error("expected Empty() = true")
	}
	if !q.Full() {
		t.Error("expected Full() = true")
	}
	if q.Cap() != 0 {
		t.Errorf("expected Cap() = 0, got %d", q.Cap())
	}
	if err := q.Push(1); !errors.Is(err, queue.ErrQueueFull) {
		t.Errorf("expected Push() = ErrQueueFull, got %v", err)
	}
	if _, err := q.Pop(); !errors.Is(err, queue.ErrEmpty) {
		t.Errorf("expected Pop() = ErrEmpty, got %v", err)
	}
}

// TestRing_ForcePush_Full_Panics verifies that ForcePush turns overflow into
// a panic and that the recovered ring is still intact.
//
// This test intentionally overflows the ring.
func TestRing_ForcePush_Full_Panics(t *testing.T) {
	q := queue.New[int](4)
	for i := 0; i < 3; i++ {
		q.ForcePush(i)
	}

	panicked := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
			}
		}()
		q.ForcePush(99)
	}()

	if !panicked {
		t.Fatal("expected ForcePush on a full ring to panic")
	}
	if q.Len() != 3 {
		t.Errorf("expected Len() = 3 after recovered panic, got %d", q.Len())
	}
	for i := 0; i < 3; i++ {
		got, err := q.Pop()
		if err != nil || got != i {
			t.Errorf("expected Pop() = %d, nil; got %d, %v", i, got, err)
		}
	}
}

// TestRing_ErrorsWrap verifies callers can wrap the sentinels and still match.
func TestRing_ErrorsWrap(t *testing.T) {
	q := queue.New[int](2)
	q.ForcePush(1)

	err := q.Push(2)
	wrapped := errors.Join(errors.New("enqueue job 2"), err)
	if !errors.Is(wrapped, queue.ErrQueueFull) {
		t.Errorf("expected wrapped error to match ErrQueueFull, got %v", wrapped)
	}
	if errors.Is(wrapped, queue.ErrEmpty) {
		t.Error("expected wrapped error not to match ErrEmpty")
	}
}
