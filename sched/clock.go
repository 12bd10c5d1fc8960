package sched

import (
	"sync/atomic"
	"time"
)

// SimulationClock carries the fixed timestep, the accumulated un-simulated
// time, and the monotonic tick counter
//
// Ownership: mutated only by the scheduler on its driving goroutine.
// The tick counter is atomic so network and replay layers on other
// goroutines may read it without a handoff; the accumulator is not shared
//
// Invariant: after every drain, 0 <= accumulator < fixedDt
type SimulationClock struct {
	fixedDt     time.Duration
	accumulator time.Duration
	tick        atomic.Uint64
}

func newSimulationClock(fixedDt time.Duration) *SimulationClock {
	return &SimulationClock{fixedDt: fixedDt}
}

// FixedDt returns the constant simulation timestep
func (c *SimulationClock) FixedDt() time.Duration {
	return c.fixedDt
}

// Accumulator returns leftover simulated time not yet consumed by a tick
// Valid only on the driving goroutine
func (c *SimulationClock) Accumulator() time.Duration {
	return c.accumulator
}

// Tick returns the number of completed steps; safe from any goroutine
func (c *SimulationClock) Tick() uint64 {
	return c.tick.Load()
}

// Alpha returns fractional progress toward the next step in [0, 1)
// At accumulator == fixedDt a step executes and resets the accumulator
// before alpha is ever read, so 1.0 is unreachable
func (c *SimulationClock) Alpha() float64 {
	return float64(c.accumulator) / float64(c.fixedDt)
}

// add accrues effective (already clamped) frame time
func (c *SimulationClock) add(d time.Duration) {
	c.accumulator += d
}

// ready reports whether at least one full step is accumulated
func (c *SimulationClock) ready() bool {
	return c.accumulator >= c.fixedDt
}

// consume pays for one step and increments the tick counter
// Returns the ordinal of the executed tick (0-based)
func (c *SimulationClock) consume() uint64 {
	c.accumulator -= c.fixedDt
	executed := c.tick.Load()
	c.tick.Add(1)
	return executed
}

// reset zeroes the accumulator and tick counter for a new session
func (c *SimulationClock) reset() {
	c.accumulator = 0
	c.tick.Store(0)
}
