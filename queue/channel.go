package queue

// ChannelQueue is the reference point Ring is measured against: a buffered
// channel driven with non-blocking selects.
//
// Every buffer slot is usable, so NewChannel(n) holds n items where New(n)
// holds n-1. Channel operations synchronize, so a ChannelQueue may be shared
// between goroutines; Ring may not.
type ChannelQueue[T any] struct {
	ch chan T
}

var _ Queue[int] = (*ChannelQueue[int])(nil)

// NewChannel returns a ChannelQueue with room for n items.
func NewChannel[T any](n int) *ChannelQueue[T] {
	return &ChannelQueue[T]{ch: make(chan T, n)}
}

// Push enqueues v, or returns ErrQueueFull without waiting.
func (q *ChannelQueue[T]) Push(v T) error {
	select {
	case q.ch <- v:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop dequeues the oldest item, or returns ErrEmpty without waiting.
func (q *ChannelQueue[T]) Pop() (T, error) {
	select {
	case v := <-q.ch:
		return v, nil
	default:
		var zero T
		return zero, ErrEmpty
	}
}

// Len reports how many items are buffered.
func (q *ChannelQueue[T]) Len() int { return len(q.ch) }

// Cap reports the buffer size.
func (q *ChannelQueue[T]) Cap() int { return cap(q.ch) }
