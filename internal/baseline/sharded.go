package baseline

import (
	"fmt"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/randomizedcoder/constqueue/queue"
)

// Sharded wraps go-lock-free-ring's ShardedRing, a multi-producer
// single-consumer ring. All pushes go through producer 0, so with one shard
// it behaves as a FIFO; with more shards ordering across shards is not
// guaranteed and it should only be used for throughput comparisons.
type Sharded[T any] struct {
	r      *ring.ShardedRing
	shards int
}

var _ queue.Queue[int] = (*Sharded[int])(nil)

// NewSharded creates a ShardedRing with the given total capacity split
// across shards.
func NewSharded[T any](capacity, shards int) (*Sharded[T], error) {
	if capacity < 1 || shards < 1 {
		return nil, fmt.Errorf("baseline: invalid sharded ring capacity=%d shards=%d", capacity, shards)
	}
	r, err := ring.NewShardedRing(uint64(capacity), uint64(shards))
	if err != nil {
		return nil, fmt.Errorf("baseline: new sharded ring: %w", err)
	}
	return &Sharded[T]{r: r, shards: shards}, nil
}

// Push writes v as producer 0, or returns queue.ErrQueueFull.
func (s *Sharded[T]) Push(v T) error {
	if !s.r.Write(0, v) {
		return queue.ErrQueueFull
	}
	return nil
}

// Pop reads one element, or returns queue.ErrEmpty.
func (s *Sharded[T]) Pop() (T, error) {
	v, ok := s.r.TryRead()
	if !ok {
		var zero T
		return zero, queue.ErrEmpty
	}
	return v.(T), nil
}

// Shards returns the number of shards the ring was built with.
func (s *Sharded[T]) Shards() int {
	return s.shards
}
