package clock

import "time"

// FrameTimer samples the wall-clock duration between successive render frames
//
// Contract:
//   - Sample returns the elapsed duration since the previous Sample call
//   - The first call after construction or after Discard returns exactly 0,
//     so un-simulated wall-clock time (startup, pause) is never consumed as
//     catch-up debt
//
// Not safe for concurrent use; owned by the frame loop goroutine
type FrameTimer struct {
	provider TimeProvider
	last     time.Time
	primed   bool
}

// NewFrameTimer creates a frame timer driven by the given provider
func NewFrameTimer(provider TimeProvider) *FrameTimer {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameTimer{provider: provider}
}

// Sample returns the raw duration since the previous sample and re-arms
func (ft *FrameTimer) Sample() time.Duration {
	now := ft.provider.Now()
	if !ft.primed {
		ft.primed = true
		ft.last = now
		return 0
	}

	elapsed := now.Sub(ft.last)
	ft.last = now

	// Clock adjustments can produce negative readings; treat as empty frame
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Discard drops the pending interval so the next Sample returns 0
// Called on resume from pause and on session reset
func (ft *FrameTimer) Discard() {
	ft.primed = false
}
