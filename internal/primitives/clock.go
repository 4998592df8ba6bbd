package primitives

import "time"

// Clock abstracts the time source the kernel reads from. Grant
// expiry and snapshot revalidation read time through a Clock rather than
// calling time.Now() directly, so tests can advance time deterministically
// instead of sleeping. The friction wait is the one place that still
// blocks on real wall time regardless of which Clock is configured.
type Clock interface {
	Now() int64 // Unix nanoseconds
}

// RealClock reads the system wall clock via time.Now().UnixNano().
type RealClock struct{}

// Now returns the current time in Unix nanoseconds.
func (RealClock) Now() int64 { return time.Now().UnixNano() }

// FixedClock is a Clock that never advances until told to, for tests.
type FixedClock struct {
	t int64
}

// NewFixedClock creates a FixedClock starting at t.
func NewFixedClock(t int64) *FixedClock { return &FixedClock{t: t} }

// Now returns the current fixed time.
func (c *FixedClock) Now() int64 { return c.t }

// Advance moves the fixed clock forward by d nanoseconds.
func (c *FixedClock) Advance(d int64) { c.t += d }

// Set pins the fixed clock to an absolute value.
func (c *FixedClock) Set(t int64) { c.t = t }
