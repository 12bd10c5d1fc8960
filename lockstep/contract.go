package lockstep

import "github.com/lixenwraith/fixedstep/sched"

// TickRecord pairs a completed tick ordinal with the checksum of the state
// it produced. Created once per step, handed to the desync layer, never
// retained by the scheduler
type TickRecord struct {
	Tick     uint64
	Checksum uint64
}

// ChecksumFunc reduces a snapshot to a deterministic 64-bit digest
type ChecksumFunc[S any] func(state S) uint64

// RecordSink consumes one TickRecord per completed step
type RecordSink func(rec TickRecord)

// NewStepObserver adapts a checksum function and a record sink into a
// scheduler step observer. The lockstep layer does not drive the simulation;
// it only watches discrete, numbered, constant-dt ticks go by
func NewStepObserver[S any](sum ChecksumFunc[S], sink RecordSink) sched.StepObserverFunc[S] {
	return func(tick uint64, state S) {
		sink(TickRecord{Tick: tick, Checksum: sum(state)})
	}
}
