// Package queue provides a fixed-capacity FIFO ring and the contract it shares
// with the baseline queues it is measured against.
//
// This package offers two implementations of the Queue interface:
//   - Ring: bounded ring over explicit per-slot storage, allocated once
//   - ChannelQueue: standard library approach using a buffered channel
//
// # Ring capacity (IMPORTANT)
//
// A Ring created with New(size) holds at most size-1 elements. One slot is
// always left unused so that start == end means empty and end+1 == start
// means full, without a separate element counter. New(1) is a valid ring
// that can never hold anything.
//
// # Ring ownership
//
// Ring has no internal synchronization. Exactly one goroutine may use a Ring
// at a time; callers sharing one across goroutines must hold their own lock.
package queue

import "errors"

var (
	// ErrQueueFull is returned by Push when no free slot is left.
	// The queue is unchanged.
	ErrQueueFull = errors.New("queue: full")

	// ErrEmpty is returned by Peek and Pop when nothing is queued.
	// The queue is unchanged.
	ErrEmpty = errors.New("queue: empty")
)

// Queue is a bounded, non-blocking FIFO.
//
// Push returns ErrQueueFull when there is no room,
// Pop returns ErrEmpty when there is nothing to remove.
type Queue[T any] interface {
	// Push appends an item to the tail of the queue.
	Push(T) error

	// Pop removes and returns the item at the head of the queue.
	Pop() (T, error)
}
