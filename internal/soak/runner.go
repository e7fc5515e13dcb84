// Package soak drives a queue.Queue[int] through a long randomized mix of
// pushes and pops and checks that it behaves as a bounded FIFO.
//
// Every pushed value is the next number of a strictly increasing sequence,
// so each successful pop must return exactly the number after the previous
// one. A lost, duplicated or reordered element is reported as an
// *OrderError. The queue is only ever touched from the goroutine that calls
// Run.
package soak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/valyala/fastrand"

	"github.com/randomizedcoder/constqueue/queue"
)

// ErrLenMismatch is returned when a queue's Len disagrees with the number of
// elements the runner has pushed but not yet popped.
var ErrLenMismatch = errors.New("soak: queue length mismatch")

// OrderError reports a pop that did not return the next expected value.
type OrderError struct {
	Op   uint64 // attempt number, or the drain position once the loop ended
	Want int
	Got  int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("soak: FIFO violated at op %d: want %d, got %d", e.Op, e.Want, e.Got)
}

// Stats summarizes a run.
type Stats struct {
	Ops     uint64 // push and pop attempts made by the loop
	Pushes  uint64 // accepted pushes
	Pops    uint64 // successful pops inside the loop
	Full    uint64 // pushes rejected with ErrQueueFull
	Empty   uint64 // pops rejected with ErrEmpty
	Drained uint64 // elements popped after the loop ended
	MaxLen  int
	Elapsed time.Duration
}

// OpsPerSec returns loop attempts per second.
func (s Stats) OpsPerSec() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Ops) / s.Elapsed.Seconds()
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("ops", s.Ops),
		slog.Uint64("pushes", s.Pushes),
		slog.Uint64("pops", s.Pops),
		slog.Uint64("full", s.Full),
		slog.Uint64("empty", s.Empty),
		slog.Uint64("drained", s.Drained),
		slog.Int("max_len", s.MaxLen),
		slog.Duration("elapsed", s.Elapsed),
	)
}

// lener is implemented by queues that can report their length.
type lener interface {
	Len() int
}

// Runner executes soak runs with a fixed configuration.
type Runner struct {
	cfg Config
	log *slog.Logger
}

// NewRunner validates cfg and fills its zero tuning fields from
// DefaultConfig. A nil logger uses slog.Default().
func NewRunner(cfg Config, log *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		cfg: cfg.withDefaults(),
		log: log,
	}, nil
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run soaks q until Config.Ops attempts are made or ctx ends, then drains
// whatever is left and checks that nothing was lost.
//
// With Ops == 0 the end of ctx is the normal way to stop and Run returns a
// nil error. With Ops > 0 an early end of ctx is returned as ctx.Err().
func (r *Runner) Run(ctx context.Context, name string, q queue.Queue[int]) (Stats, error) {
	log := r.log.With(slog.String("impl", name))

	stop, release := watch(ctx)
	defer release()

	var rng fastrand.RNG
	if r.cfg.Seed != 0 {
		rng.Seed(r.cfg.Seed)
	}

	ql, hasLen := q.(lener)

	var (
		st      Stats
		nextIn  int // value of the next push
		nextOut int // value the next pop must return
	)

	log.Info("soak started",
		slog.Int("ops", r.cfg.Ops),
		slog.Uint64("push_pct", uint64(r.cfg.PushPercent)),
		slog.Int("check_every", r.cfg.CheckEvery),
	)

	start := time.Now()
	prog := newProgress(r.cfg.ReportInterval, start)

	stopped := false
	for r.cfg.Ops == 0 || st.Ops < uint64(r.cfg.Ops) {
		if st.Ops%uint64(r.cfg.CheckEvery) == 0 {
			if stop.Done() {
				stopped = true
				break
			}
			if hasLen && ql.Len() != nextIn-nextOut {
				st.Elapsed = time.Since(start)
				return st, fmt.Errorf("%w: op %d: Len() = %d, outstanding %d",
					ErrLenMismatch, st.Ops, ql.Len(), nextIn-nextOut)
			}
			if now := time.Now(); prog.due(now) {
				st.Elapsed = now.Sub(start)
				log.Info("soak progress", slog.Any("stats", st), slog.Int("len", nextIn-nextOut))
			}
		}
		st.Ops++

		if rng.Uint32n(100) < r.cfg.PushPercent {
			err := q.Push(nextIn)
			switch {
			case err == nil:
				nextIn++
				st.Pushes++
			case errors.Is(err, queue.ErrQueueFull):
				st.Full++
			default:
				st.Elapsed = time.Since(start)
				return st, fmt.Errorf("soak: push %d: %w", nextIn, err)
			}
		} else {
			v, err := q.Pop()
			switch {
			case err == nil:
				if v != nextOut {
					st.Elapsed = time.Since(start)
					return st, &OrderError{Op: st.Ops, Want: nextOut, Got: v}
				}
				nextOut++
				st.Pops++
			case errors.Is(err, queue.ErrEmpty):
				st.Empty++
			default:
				st.Elapsed = time.Since(start)
				return st, fmt.Errorf("soak: pop: %w", err)
			}
		}

		if n := nextIn - nextOut; n > st.MaxLen {
			st.MaxLen = n
		}
	}

	if err := r.drain(q, &st, &nextOut); err != nil {
		st.Elapsed = time.Since(start)
		return st, err
	}
	st.Elapsed = time.Since(start)

	if nextOut != nextIn {
		return st, fmt.Errorf("soak: %d elements pushed but never popped", nextIn-nextOut)
	}

	if stopped && r.cfg.Ops > 0 {
		log.Warn("soak interrupted", slog.Any("stats", st), slog.Any("err", ctx.Err()))
		return st, fmt.Errorf("soak: interrupted after %d of %d ops: %w", st.Ops, r.cfg.Ops, ctx.Err())
	}

	log.Info("soak finished", slog.Any("stats", st), slog.Float64("ops_per_sec", st.OpsPerSec()))
	return st, nil
}

// drain pops until the queue reports empty, checking order as it goes.
func (r *Runner) drain(q queue.Queue[int], st *Stats, nextOut *int) error {
	for {
		v, err := q.Pop()
		if errors.Is(err, queue.ErrEmpty) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("soak: drain: %w", err)
		}
		if v != *nextOut {
			return &OrderError{Op: st.Drained, Want: *nextOut, Got: v}
		}
		*nextOut++
		st.Drained++
	}
}
