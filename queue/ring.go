package queue

import (
	"errors"
	"fmt"
	"iter"
)

// slot is one cell of ring storage. full marks whether val holds a queued
// element; a vacant slot always carries the zero value.
type slot[T any] struct {
	val  T
	full bool
}

// Ring is a fixed-capacity FIFO queue.
//
// The slot array is allocated once by New and never grows. start is the index
// of the oldest element, end the index of the next free slot; both wrap
// modulo Size(). Usable capacity is Size()-1.
//
// WARNING: Ring is NOT safe for concurrent use.
type Ring[T any] struct {
	slots []slot[T]
	start int
	end   int
}

var _ Queue[int] = (*Ring[int])(nil)

// New creates an empty Ring with size slots, of which size-1 are usable.
// Panics if size < 1.
func New[T any](size int) *Ring[T] {
	if size < 1 {
		panic("queue: ring size must be >= 1")
	}
	return &Ring[T]{
		slots: make([]slot[T], size),
	}
}

// next returns the index following i, wrapping to 0 past the last slot.
func (r *Ring[T]) next(i int) int {
	i++
	if i == len(r.slots) {
		return 0
	}
	return i
}

// Empty reports whether the ring holds no elements.
//
// It is answered by Peek so the two can never disagree about emptiness.
func (r *Ring[T]) Empty() bool {
	_, err := r.Peek()
	return errors.Is(err, ErrEmpty)
}

// Full reports whether Push would fail.
func (r *Ring[T]) Full() bool {
	return r.next(r.end) == r.start
}

// Push stores item at the tail of the ring.
// Returns ErrQueueFull, leaving the ring untouched, if no slot is free.
func (r *Ring[T]) Push(item T) error {
	next := r.next(r.end)
	if next == r.start {
		return ErrQueueFull
	}

	r.slots[r.end] = slot[T]{val: item, full: true}
	r.end = next

	return nil
}

// ForcePush stores item at the tail of the ring and panics if the ring is
// full. Use it only where overflow is a bug; anything that can legitimately
// fill up must call Push and handle ErrQueueFull.
func (r *Ring[T]) ForcePush(item T) {
	if err := r.Push(item); err != nil {
		panic(fmt.Sprintf("queue: ForcePush on full ring (size %d)", len(r.slots)))
	}
}

// Peek returns the oldest element without removing it.
// Returns ErrEmpty if the ring holds nothing.
func (r *Ring[T]) Peek() (T, error) {
	if r.start == r.end {
		var zero T
		return zero, ErrEmpty
	}

	s := &r.slots[r.start]
	if !s.full {
		panic("queue: vacant slot inside occupied range")
	}
	return s.val, nil
}

// Pop removes and returns the oldest element.
// Returns ErrEmpty, leaving the ring untouched, if it holds nothing.
func (r *Ring[T]) Pop() (T, error) {
	if r.start == r.end {
		var zero T
		return zero, ErrEmpty
	}

	s := &r.slots[r.start]
	if !s.full {
		panic("queue: vacant slot inside occupied range")
	}

	v := s.val
	// Clear the slot so the ring keeps no reference to the popped value.
	*s = slot[T]{}
	r.start = r.next(r.start)

	return v, nil
}

// All returns a draining iterator: each element it yields is popped from the
// ring, oldest first, until the ring is empty. Breaking out of the loop
// leaves the remaining elements queued. Ranging over an emptied ring yields
// nothing.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Pop()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int {
	n := r.end - r.start
	if n < 0 {
		n += len(r.slots)
	}
	return n
}

// Cap returns the number of elements the ring can hold, Size()-1.
func (r *Ring[T]) Cap() int {
	return len(r.slots) - 1
}

// Size returns the number of slots the ring was created with.
func (r *Ring[T]) Size() int {
	return len(r.slots)
}
