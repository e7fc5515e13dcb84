package soak

import (
	"context"
	"sync/atomic"
)

// stopFlag mirrors ctx.Done() into an atomic.Bool so the hot loop pays a
// single atomic load per check instead of a channel select.
type stopFlag struct {
	done atomic.Bool
}

// watch arms a stopFlag for ctx. The returned release func detaches the
// watcher and must be called when the run ends.
func watch(ctx context.Context) (*stopFlag, func() bool) {
	f := &stopFlag{}
	if ctx.Err() != nil {
		f.done.Store(true)
	}
	release := context.AfterFunc(ctx, func() {
		f.done.Store(true)
	})
	return f, release
}

// Done returns true once the watched context has ended.
func (f *stopFlag) Done() bool {
	return f.done.Load()
}
