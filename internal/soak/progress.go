package soak

import "time"

// progress decides when a run should log its counters. The clock is read
// only when the caller asks, which the runner does every CheckEvery
// attempts, so most loop iterations never touch time.Now.
type progress struct {
	interval time.Duration
	last     time.Time
}

func newProgress(interval time.Duration, now time.Time) *progress {
	return &progress{
		interval: interval,
		last:     now,
	}
}

// due returns true if interval has elapsed since the last report and
// starts a new interval.
func (p *progress) due(now time.Time) bool {
	if now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	return true
}
