// Command ringsoak runs a FIFO soak test against one queue implementation
// and exits non-zero if any element is lost, duplicated or reordered.
//
// Usage:
//
//	go run ./cmd/ringsoak -impl ring -size 64 -ops 50000000
//	go run ./cmd/ringsoak -impl ring -ops 0 -duration 10m -log-format json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/randomizedcoder/constqueue/internal/baseline"
	"github.com/randomizedcoder/constqueue/internal/soak"
	"github.com/randomizedcoder/constqueue/queue"
)

func main() {
	def := soak.DefaultConfig()

	impl := flag.String("impl", "ring", "queue implementation: ring, channel, unbounded, sharded")
	size := flag.Int("size", 64, "ring size in slots (usable capacity is size-1)")
	ops := flag.Int("ops", def.Ops, "push/pop attempts; 0 runs until -duration or interrupt")
	duration := flag.Duration("duration", 0, "stop after this long (0 = no limit)")
	pushPct := uint32Flag(flag.CommandLine, "push-pct", def.PushPercent, "percent of attempts that are pushes")
	checkEvery := flag.Int("check-every", def.CheckEvery, "attempts between stop and progress checks")
	reportEvery := flag.Duration("report", def.ReportInterval, "minimum time between progress lines")
	seed := uint32Flag(flag.CommandLine, "seed", 0, "operation mix seed (0 = from clock)")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log, err := newLogger(*logFormat, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringsoak: %v\n", err)
		os.Exit(2)
	}
	log = log.With(slog.String("run_id", uuid.NewString()))

	q, err := newQueue(*impl, *size)
	if err != nil {
		log.Error("invalid queue", slog.Any("err", err))
		os.Exit(2)
	}

	runner, err := soak.NewRunner(soak.Config{
		Ops:            *ops,
		PushPercent:    *pushPct,
		CheckEvery:     *checkEvery,
		ReportInterval: *reportEvery,
		Seed:           *seed,
	}, log)
	if err != nil {
		log.Error("invalid config", slog.Any("err", err))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	st, err := runner.Run(ctx, *impl, q)
	if err != nil {
		log.Error("soak failed", slog.Any("stats", st), slog.Any("err", err))
		stop()
		os.Exit(1)
	}

	fmt.Printf("%s: %d ops in %v (%.2f M ops/sec), max len %d, %d full, %d empty\n",
		*impl, st.Ops, st.Elapsed.Round(time.Millisecond), st.OpsPerSec()/1e6, st.MaxLen, st.Full, st.Empty)
}

// uint32Flag defines a flag parsed straight into a uint32, so values that
// do not fit are rejected instead of wrapping.
func uint32Flag(fs *flag.FlagSet, name string, value uint32, usage string) *uint32 {
	p := &value
	fs.Func(name, fmt.Sprintf("%s (default %d)", usage, value), func(s string) error {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}
		*p = uint32(v)
		return nil
	})
	return p
}

// newQueue builds the named implementation with size-1 usable slots.
func newQueue(impl string, size int) (queue.Queue[int], error) {
	if size < 2 {
		return nil, fmt.Errorf("size must be >= 2, got %d", size)
	}
	switch impl {
	case "ring":
		return queue.New[int](size), nil
	case "channel":
		return queue.NewChannel[int](size - 1), nil
	case "unbounded":
		return baseline.NewUnbounded[int](size - 1), nil
	case "sharded":
		s, err := baseline.NewSharded[int](size-1, 1)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown implementation %q", impl)
	}
}

func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
