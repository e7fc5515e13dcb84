// Package baseline adapts third-party FIFO queues to queue.Queue so they can
// be measured and soak-tested next to queue.Ring:
//   - Unbounded: github.com/eapache/queue (growable ring) with a length limit
//   - Sharded: github.com/randomizedcoder/go-lock-free-ring ShardedRing
//
// Both report ErrQueueFull and ErrEmpty from package queue.
package baseline
