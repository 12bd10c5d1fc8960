package replay

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Recorder captures (tick, payload) pairs during a live session
//
// Thread-Safety: Record may be called from the input goroutine while the
// session accessors run elsewhere; a mutex guards the slice
type Recorder struct {
	mu      sync.Mutex
	header  Header
	records []Record
	started bool
	last    uint64
}

// NewRecorder starts a recording at the given timestep and world seed
func NewRecorder(fixedDt time.Duration, seed uint64) *Recorder {
	return &Recorder{
		header: Header{
			FixedDt:   fixedDt,
			Seed:      seed,
			CreatedAt: time.Now().UTC(),
		},
	}
}

// Record appends one input payload for the given tick
// Ticks must be non-decreasing; inputs within a tick keep arrival order
func (r *Recorder) Record(tick uint64, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started && tick < r.last {
		return fmt.Errorf("%w: tick %d after tick %d", ErrOutOfOrder, tick, r.last)
	}
	r.started = true
	r.last = tick

	r.records = append(r.records, Record{Tick: tick, Payload: payload})
	return nil
}

// Len returns the number of recorded inputs
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Session snapshots the recording for persistence or playback
func (r *Recorder) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Session{
		Header:  r.header,
		Records: make([]Record, len(r.records)),
	}
	copy(out.Records, r.records)
	return out
}
