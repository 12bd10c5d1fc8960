package replay

import (
	"encoding/json"
	"errors"
	"time"
)

// A replay is the fixed timestep it was recorded at, the seed that built the
// initial state, and the ordered (tick, input payload) pairs fed to the
// simulation. Replaying the same pairs at the same ticks through a
// deterministic step function reproduces the state progression bit for bit

var (
	// ErrOutOfOrder is returned when a record arrives for an earlier tick
	// than one already recorded
	ErrOutOfOrder = errors.New("replay: record tick out of order")

	// ErrTickMismatch is returned when playback skips past un-applied records
	ErrTickMismatch = errors.New("replay: driver skipped a recorded tick")

	// ErrFixedDtMismatch is returned when playback runs at a different
	// timestep than the recording; determinism cannot survive that
	ErrFixedDtMismatch = errors.New("replay: fixed dt differs from recording")
)

// Header describes one recorded session
type Header struct {
	FixedDt   time.Duration `json:"fixedDt"`
	Seed      uint64        `json:"seed"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Record is a single input payload bound to the tick it was gathered for
type Record struct {
	Tick    uint64          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// Session is a complete replay: header plus records in non-decreasing tick
// order (a tick may carry several records; within a tick, order is gather
// order and must be reproduced exactly)
type Session struct {
	Header  Header   `json:"header"`
	Records []Record `json:"records"`
}
