package soak_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/randomizedcoder/constqueue/internal/baseline"
	"github.com/randomizedcoder/constqueue/internal/soak"
	"github.com/randomizedcoder/constqueue/queue"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRunner(t *testing.T, cfg soak.Config) *soak.Runner {
	t.Helper()
	r, err := soak.NewRunner(cfg, discard())
	require.NoError(t, err)
	return r
}

func TestRun_Ring(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 200_000, PushPercent: 50, Seed: 1})

	st, err := r.Run(context.Background(), "ring", queue.New[int](16))
	require.NoError(t, err)

	assert.Equal(t, uint64(200_000), st.Ops)
	assert.Equal(t, st.Ops, st.Pushes+st.Pops+st.Full+st.Empty)
	assert.Equal(t, st.Pushes, st.Pops+st.Drained)
	assert.LessOrEqual(t, st.MaxLen, 15)
}

func TestRun_PushHeavyHitsFull(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 50_000, PushPercent: 80, Seed: 7})

	st, err := r.Run(context.Background(), "ring", queue.New[int](8))
	require.NoError(t, err)

	assert.Positive(t, st.Full)
	assert.Equal(t, 7, st.MaxLen)
}

func TestRun_PopHeavyHitsEmpty(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 50_000, PushPercent: 20, Seed: 7})

	st, err := r.Run(context.Background(), "ring", queue.New[int](8))
	require.NoError(t, err)

	assert.Positive(t, st.Empty)
}

func TestRun_PopOnly(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 1000, PushPercent: 0, Seed: 1})
	assert.Zero(t, r.Config().PushPercent)

	st, err := r.Run(context.Background(), "ring", queue.New[int](8))
	require.NoError(t, err)

	assert.Zero(t, st.Pushes)
	assert.Zero(t, st.Full)
	assert.Equal(t, uint64(1000), st.Empty)
	assert.Zero(t, st.MaxLen)
}

func TestRun_PushOnly(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 1000, PushPercent: 100, Seed: 1})

	st, err := r.Run(context.Background(), "ring", queue.New[int](8))
	require.NoError(t, err)

	assert.Equal(t, uint64(7), st.Pushes)
	assert.Equal(t, uint64(993), st.Full)
	assert.Zero(t, st.Pops)
	assert.Equal(t, uint64(7), st.Drained)
}

func TestRun_Baselines(t *testing.T) {
	sharded, err := baseline.NewSharded[int](64, 1)
	require.NoError(t, err)

	testCases := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"channel", queue.NewChannel[int](32)},
		{"unbounded", baseline.NewUnbounded[int](32)},
		{"sharded", sharded},
	}

	r := newRunner(t, soak.Config{Ops: 20_000, PushPercent: 50, Seed: 3})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := r.Run(context.Background(), tc.name, tc.q)
			require.NoError(t, err)
			assert.Equal(t, st.Pushes, st.Pops+st.Drained)
		})
	}
}

// stack is a bounded LIFO that claims to be a queue.
type stack struct {
	items []int
	limit int
}

func (s *stack) Push(v int) error {
	if len(s.items) == s.limit {
		return queue.ErrQueueFull
	}
	s.items = append(s.items, v)
	return nil
}

func (s *stack) Pop() (int, error) {
	if len(s.items) == 0 {
		return 0, queue.ErrEmpty
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func TestRun_DetectsLIFO(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 10_000, PushPercent: 60, Seed: 11})

	_, err := r.Run(context.Background(), "stack", &stack{limit: 8})

	var oe *soak.OrderError
	require.ErrorAs(t, err, &oe)
	assert.NotEqual(t, oe.Want, oe.Got)
}

// leaky accepts every push but silently drops every fifth element.
type leaky struct {
	inner *queue.Ring[int]
	n     int
}

func (l *leaky) Push(v int) error {
	l.n++
	if l.n%5 == 0 {
		return nil
	}
	return l.inner.Push(v)
}

func (l *leaky) Pop() (int, error) { return l.inner.Pop() }

func TestRun_DetectsLoss(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 10_000, PushPercent: 60, Seed: 5})

	_, err := r.Run(context.Background(), "leaky", &leaky{inner: queue.New[int](16)})

	var oe *soak.OrderError
	require.ErrorAs(t, err, &oe)
}

// liar reports a length that is off by one.
type liar struct {
	*queue.Ring[int]
}

func (l liar) Len() int { return l.Ring.Len() + 1 }

func TestRun_DetectsLenMismatch(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 10_000, PushPercent: 50, CheckEvery: 1, Seed: 5})

	_, err := r.Run(context.Background(), "liar", liar{queue.New[int](16)})
	require.ErrorIs(t, err, soak.ErrLenMismatch)
}

var errBroken = errors.New("broken")

type broken struct{}

func (broken) Push(int) error    { return errBroken }
func (broken) Pop() (int, error) { return 0, errBroken }

func TestRun_PropagatesQueueErrors(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 100, PushPercent: 50, Seed: 5})

	_, err := r.Run(context.Background(), "broken", broken{})
	require.ErrorIs(t, err, errBroken)
}

func TestRun_UntilCancelled(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 0, PushPercent: 50, CheckEvery: 64})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	st, err := r.Run(ctx, "ring", queue.New[int](64))
	require.NoError(t, err)
	assert.Positive(t, st.Ops)
	assert.Equal(t, st.Pushes, st.Pops+st.Drained)
}

func TestRun_InterruptedReturnsContextError(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 1_000_000, PushPercent: 50})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := r.Run(ctx, "ring", queue.New[int](64))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, st.Ops)
}

func TestRun_LogsStats(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	r, err := soak.NewRunner(soak.Config{Ops: 1000, PushPercent: 50, Seed: 9}, log)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), "ring", queue.New[int](4))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "soak started")
	assert.Contains(t, out, "soak finished")
	assert.Contains(t, out, "impl=ring")
	assert.Contains(t, out, "stats.ops=1000")
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     soak.Config
		wantErr bool
	}{
		{"default", soak.DefaultConfig(), false},
		{"zero", soak.Config{}, false},
		{"negative ops", soak.Config{Ops: -1}, true},
		{"push percent over 100", soak.Config{PushPercent: 101}, true},
		{"negative check", soak.Config{CheckEvery: -1}, true},
		{"negative report", soak.Config{ReportInterval: -time.Second}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewRunner_FillsDefaults(t *testing.T) {
	r := newRunner(t, soak.Config{Ops: 10})
	cfg := r.Config()

	d := soak.DefaultConfig()
	assert.Equal(t, 10, cfg.Ops)
	assert.Zero(t, cfg.PushPercent)
	assert.Equal(t, d.CheckEvery, cfg.CheckEvery)
	assert.Equal(t, d.ReportInterval, cfg.ReportInterval)
}
