package soak

import (
	"fmt"
	"time"
)

// Config controls a soak run.
type Config struct {
	// Ops is the number of push/pop attempts. 0 runs until the context ends.
	Ops int

	// PushPercent is the chance, out of 100, that an attempt is a push.
	// Above 50 the queue tends to sit full, below 50 it tends to sit empty.
	// 0 is a pop-only run and is never replaced by the default.
	PushPercent uint32

	// CheckEvery is how many attempts pass between stop, length and
	// progress checks.
	CheckEvery int

	// ReportInterval is the minimum wall time between progress log lines.
	ReportInterval time.Duration

	// Seed fixes the operation mix. 0 seeds from the clock.
	Seed uint32
}

// DefaultConfig returns a one million operation, slightly push-heavy run.
func DefaultConfig() Config {
	return Config{
		Ops:            1_000_000,
		PushPercent:    55,
		CheckEvery:     1024,
		ReportInterval: time.Second,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Ops < 0:
		return fmt.Errorf("soak: ops must be >= 0, got %d", c.Ops)
	case c.PushPercent > 100:
		return fmt.Errorf("soak: push percent must be <= 100, got %d", c.PushPercent)
	case c.CheckEvery < 0:
		return fmt.Errorf("soak: check interval must be >= 0, got %d", c.CheckEvery)
	case c.ReportInterval < 0:
		return fmt.Errorf("soak: report interval must be >= 0, got %s", c.ReportInterval)
	}
	return nil
}

// withDefaults fills zero-valued tuning fields. Ops, PushPercent and Seed
// keep their zero meaning.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CheckEvery == 0 {
		c.CheckEvery = d.CheckEvery
	}
	if c.ReportInterval == 0 {
		c.ReportInterval = d.ReportInterval
	}
	return c
}
