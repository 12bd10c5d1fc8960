package sched

import (
	"testing"
	"time"
)

// lcgState is a deliberately chaotic integer state: any divergence in step
// count or ordering produces a completely different value
type lcgState struct {
	value uint64
	tick  uint64
}

func lcgStep(prev, curr *lcgState, dt time.Duration) {
	curr.value = prev.value*6364136223846793005 + 1442695040888963407 + uint64(dt)
	curr.tick = prev.tick + 1
}

type runResult struct {
	ticks  []uint64
	values []uint64
	final  uint64
}

// runLCG drives a fresh scheduler through the given frame durations and
// records the per-tick state sequence via a step observer
func runLCG(t *testing.T, frames []time.Duration) runResult {
	t.Helper()

	var res runResult
	s, err := New(
		Config{FixedDt: 10 * time.Millisecond, MaxFrameTime: 250 * time.Millisecond, Interpolation: true},
		&lcgState{}, &lcgState{}, lcgStep,
		WithStepObserver[*lcgState](func(tick uint64, state *lcgState) {
			res.ticks = append(res.ticks, tick)
			res.values = append(res.values, state.value)
		}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, d := range frames {
		s.Advance(d)
	}

	_, curr := s.Snapshots()
	res.final = curr.value
	return res
}

// TestDeterminismAcrossFrameDistributions: run A delivers simulated time as
// 10 frames of 100ms, run B as 100 frames of 10ms. Both must produce the
// identical (tick, state) sequence because every step sees the same fixed dt
func TestDeterminismAcrossFrameDistributions(t *testing.T) {
	framesA := make([]time.Duration, 10)
	for i := range framesA {
		framesA[i] = 100 * time.Millisecond
	}
	framesB := make([]time.Duration, 100)
	for i := range framesB {
		framesB[i] = 10 * time.Millisecond
	}

	a := runLCG(t, framesA)
	b := runLCG(t, framesB)

	if len(a.ticks) != 100 || len(b.ticks) != 100 {
		t.Fatalf("Step counts = %d and %d, want 100 each", len(a.ticks), len(b.ticks))
	}
	for i := range a.ticks {
		if a.ticks[i] != b.ticks[i] {
			t.Fatalf("Tick ordinal diverged at step %d: %d vs %d", i, a.ticks[i], b.ticks[i])
		}
		if a.values[i] != b.values[i] {
			t.Fatalf("State diverged at tick %d: %#x vs %#x", a.ticks[i], a.values[i], b.values[i])
		}
	}
	if a.final != b.final {
		t.Errorf("Final state diverged: %#x vs %#x", a.final, b.final)
	}
}

// TestDeterminismWithJitteredFrames delivers the same total time with uneven
// frame boundaries; the step sequence must not change
func TestDeterminismWithJitteredFrames(t *testing.T) {
	framesA := []time.Duration{
		100 * time.Millisecond,
		100 * time.Millisecond,
	}
	framesB := []time.Duration{
		3 * time.Millisecond,
		47 * time.Millisecond,
		110 * time.Millisecond,
		40 * time.Millisecond,
	}

	a := runLCG(t, framesA)
	b := runLCG(t, framesB)

	if len(a.values) != len(b.values) {
		t.Fatalf("Step counts differ: %d vs %d", len(a.values), len(b.values))
	}
	for i := range a.values {
		if a.values[i] != b.values[i] {
			t.Fatalf("State diverged at step %d", i)
		}
	}
}

// TestRepeatedRunsBitIdentical: same frame script, fresh schedulers, equal
// state at every tick
func TestRepeatedRunsBitIdentical(t *testing.T) {
	frames := []time.Duration{
		16 * time.Millisecond, 17 * time.Millisecond, 16 * time.Millisecond,
		300 * time.Millisecond, // clamped
		5 * time.Millisecond, 33 * time.Millisecond,
	}

	first := runLCG(t, frames)
	for run := 0; run < 5; run++ {
		again := runLCG(t, frames)
		if len(again.values) != len(first.values) {
			t.Fatalf("Run %d step count = %d, want %d", run, len(again.values), len(first.values))
		}
		for i := range first.values {
			if again.values[i] != first.values[i] {
				t.Fatalf("Run %d diverged at step %d", run, i)
			}
		}
	}
}
