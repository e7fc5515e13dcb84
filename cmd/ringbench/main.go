// Command ringbench compares queue.Ring against the baseline queues.
//
// Two workloads are timed for each implementation:
//   - push+pop: one push followed by one pop per iteration
//   - mixed: a random push/pop pattern, identical for every implementation
//
// Usage:
//
//	go run ./cmd/ringbench -n 10000000 -size 1024
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fastrand"

	"github.com/randomizedcoder/constqueue/internal/baseline"
	"github.com/randomizedcoder/constqueue/queue"
)

type candidate struct {
	name string
	q    queue.Queue[int]
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "ring size in slots (usable capacity is size-1)")
	shards := flag.Int("shards", 1, "shards for the lock-free sharded ring")
	seed := flag.Uint("seed", 1, "seed for the mixed workload")
	flag.Parse()

	if *iterations < 1 || *size < 2 {
		fmt.Fprintln(os.Stderr, "ringbench: -n must be >= 1 and -size must be >= 2")
		os.Exit(2)
	}

	candidates, err := build(*size, *shards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringbench: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Benchmarking bounded queues (%d iterations, size=%d, capacity=%d)\n",
		*iterations, *size, *size-1)
	fmt.Println("─────────────────────────────────────────────────")

	pushPop := make([]time.Duration, len(candidates))
	for i, c := range candidates {
		pushPop[i] = timePushPop(c.q, *iterations)
	}
	report("push+pop per iteration", candidates, pushPop, *iterations)

	// Fresh queues so the mixed run does not inherit state.
	fresh, err := build(*size, *shards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringbench: %v\n", err)
		os.Exit(1)
	}

	pattern := mixedPattern(*iterations, uint32(*seed))
	mixed := make([]time.Duration, len(fresh))
	for i, c := range fresh {
		mixed[i] = timeMixed(c.q, pattern)
	}
	report("mixed push/pop (55% push)", candidates, mixed, *iterations)
}

// build returns one of each implementation with the same usable capacity.
// The channel baseline is first; speedups are reported against it.
func build(size, shards int) ([]candidate, error) {
	sharded, err := baseline.NewSharded[int](size-1, shards)
	if err != nil {
		return nil, err
	}
	return []candidate{
		{"Channel", queue.NewChannel[int](size - 1)},
		{"Ring", queue.New[int](size)},
		{"Unbounded", baseline.NewUnbounded[int](size - 1)},
		{"ShardedRing", sharded},
	}, nil
}

func timePushPop(q queue.Queue[int], iterations int) time.Duration {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		q.Push(i)
		q.Pop()
	}
	return time.Since(start)
}

// mixedPattern returns one bool per iteration: true for push, false for pop.
func mixedPattern(iterations int, seed uint32) []bool {
	var rng fastrand.RNG
	rng.Seed(seed)
	p := make([]bool, iterations)
	for i := range p {
		p[i] = rng.Uint32n(100) < 55
	}
	return p
}

func timeMixed(q queue.Queue[int], pattern []bool) time.Duration {
	start := time.Now()
	for i, push := range pattern {
		if push {
			q.Push(i)
		} else {
			q.Pop()
		}
	}
	return time.Since(start)
}

func report(title string, candidates []candidate, durs []time.Duration, iterations int) {
	basePerOp := float64(durs[0].Nanoseconds()) / float64(iterations)

	fmt.Printf("\nResults (%s):\n", title)
	for i, c := range candidates {
		perOp := float64(durs[i].Nanoseconds()) / float64(iterations)
		fmt.Printf("  %-12s %v (%.2f ns/op, %.2fx vs Channel)\n", c.name+":", durs[i], perOp, basePerOp/perOp)
	}

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	for i, c := range candidates {
		perOp := float64(durs[i].Nanoseconds()) / float64(iterations)
		fmt.Printf("  %-12s %.2f M ops/sec\n", c.name+":", 1000/perOp)
	}
}
