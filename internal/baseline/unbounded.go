package baseline

import (
	eapache "github.com/eapache/queue"

	"github.com/randomizedcoder/constqueue/queue"
)

// Unbounded wraps eapache/queue, which grows its backing array on demand,
// and rejects pushes once limit elements are queued.
//
// Not safe for concurrent use.
type Unbounded[T any] struct {
	q     *eapache.Queue
	limit int
}

var _ queue.Queue[int] = (*Unbounded[int])(nil)

// NewUnbounded creates an Unbounded queue that holds at most limit elements.
// Panics if limit < 1.
func NewUnbounded[T any](limit int) *Unbounded[T] {
	if limit < 1 {
		panic("baseline: limit must be >= 1")
	}
	return &Unbounded[T]{
		q:     eapache.New(),
		limit: limit,
	}
}

// Push appends v, or returns queue.ErrQueueFull at the limit.
func (u *Unbounded[T]) Push(v T) error {
	if u.q.Length() >= u.limit {
		return queue.ErrQueueFull
	}
	u.q.Add(v)
	return nil
}

// Pop removes the oldest element, or returns queue.ErrEmpty.
func (u *Unbounded[T]) Pop() (T, error) {
	if u.q.Length() == 0 {
		var zero T
		return zero, queue.ErrEmpty
	}
	return u.q.Remove().(T), nil
}

// Len returns the number of queued elements.
func (u *Unbounded[T]) Len() int {
	return u.q.Length()
}

// Cap returns the configured limit.
func (u *Unbounded[T]) Cap() int {
	return u.limit
}
