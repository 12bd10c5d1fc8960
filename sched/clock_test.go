package sched

import (
	"testing"
	"time"
)

func TestSimulationClockConsume(t *testing.T) {
	c := newSimulationClock(10 * time.Millisecond)

	c.add(25 * time.Millisecond)
	if !c.ready() {
		t.Fatal("ready() = false with 25ms accumulated")
	}

	if tick := c.consume(); tick != 0 {
		t.Errorf("First consume returned tick %d, want 0", tick)
	}
	if tick := c.consume(); tick != 1 {
		t.Errorf("Second consume returned tick %d, want 1", tick)
	}
	if c.ready() {
		t.Error("ready() = true with 5ms accumulated")
	}

	if got := c.Accumulator(); got != 5*time.Millisecond {
		t.Errorf("Accumulator = %v, want 5ms", got)
	}
	if got := c.Tick(); got != 2 {
		t.Errorf("Tick = %d, want 2", got)
	}
}

func TestSimulationClockAlpha(t *testing.T) {
	c := newSimulationClock(10 * time.Millisecond)

	if got := c.Alpha(); got != 0 {
		t.Errorf("Alpha with empty accumulator = %v, want 0", got)
	}

	c.add(5 * time.Millisecond)
	if got := c.Alpha(); got != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", got)
	}
}

func TestSimulationClockReset(t *testing.T) {
	c := newSimulationClock(10 * time.Millisecond)
	c.add(35 * time.Millisecond)
	c.consume()
	c.consume()

	c.reset()

	if got := c.Tick(); got != 0 {
		t.Errorf("Tick after reset = %d, want 0", got)
	}
	if got := c.Accumulator(); got != 0 {
		t.Errorf("Accumulator after reset = %v, want 0", got)
	}
}
