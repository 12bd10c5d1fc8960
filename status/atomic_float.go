package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat holds a float64 behind atomic bit conversion
// Zero value is ready to use (represents 0.0). The scheduler publishes
// its per-frame alpha through one of these so render-side readers never
// tear a partially written value
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
// The scheduler's frame loop calls this once per frame for sched.alpha
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta and returns the new value
// CAS loop rather than fetch-add: float bits do not commute
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(newVal)) {
			return newVal
		}
	}
}
