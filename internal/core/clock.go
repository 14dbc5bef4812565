package core

import "time"

// SimClock is the simulation time source. It only moves when the owner
// advances it, once per tick, so every timed effect evaluated against it is
// reproducible in tests.
type SimClock struct {
	now  time.Duration
	tick time.Duration
}

// NewSimClock creates a clock at time zero advancing by tick per Advance call.
func NewSimClock(tick time.Duration) *SimClock {
	return &SimClock{tick: tick}
}

// Now returns the elapsed simulation time.
func (c *SimClock) Now() time.Duration {
	return c.now
}

// Tick returns the duration of one tick.
func (c *SimClock) Tick() time.Duration {
	return c.tick
}

// Advance moves the clock forward by one tick and returns the new time.
func (c *SimClock) Advance() time.Duration {
	c.now += c.tick
	return c.now
}

// Since returns the simulation time elapsed since start.
func (c *SimClock) Since(start time.Duration) time.Duration {
	return c.now - start
}
