package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central metrics facade
// The scheduler caches pointers during construction; the frame loop writes
// directly to the atomics without touching the maps
//
// Well-known keys published by the sched package:
//   - sched.ticks            total completed simulation steps
//   - sched.steps_last_frame steps drained by the most recent frame
//   - sched.clamped_frames   frames whose raw duration exceeded the budget
//   - sched.alpha            interpolation alpha of the most recent frame
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Lines renders every metric as "key=value" in sorted key order per type
// Used by the bench and demo commands for reporting
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", key, ptr.Load()))
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", key, ptr.Load()))
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.4f", key, ptr.Get()))
	})
	return lines
}
