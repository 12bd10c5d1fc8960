package lockstep

import (
	"errors"
	"fmt"
	"sync"
)

// ErrTickClosed is returned when input arrives for a tick whose input set
// was already gathered; lockstep requires gathering exactly once per tick
var ErrTickClosed = errors.New("lockstep: tick input set already gathered")

// ErrTickGathered is returned on a second gather for the same tick
var ErrTickGathered = errors.New("lockstep: duplicate gather for tick")

// Session buffers per-tick input payloads until the tick executes
//
// Contract: all inputs for tick N are queued before InputsFor(N) is called,
// and InputsFor(N) is called exactly once, immediately before tick N runs.
// Payload order within a tick is queue order, which peers must agree on
// (e.g. sorted by player id) for the executed state to match
//
// Thread-Safety: Queue may be called from transport goroutines; InputsFor
// belongs to the simulation goroutine
type Session struct {
	mu       sync.Mutex
	pending  map[uint64][][]byte
	gathered map[uint64]bool
}

// NewSession creates an empty input session
func NewSession() *Session {
	return &Session{
		pending:  make(map[uint64][][]byte),
		gathered: make(map[uint64]bool),
	}
}

// Queue buffers one input payload for the given tick
func (s *Session) Queue(tick uint64, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gathered[tick] {
		return fmt.Errorf("%w: tick %d", ErrTickClosed, tick)
	}
	s.pending[tick] = append(s.pending[tick], payload)
	return nil
}

// InputsFor returns and seals the input set for the given tick
// A second call for the same tick fails rather than silently yielding an
// empty set, which would desync the peer that executed with inputs
func (s *Session) InputsFor(tick uint64) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gathered[tick] {
		return nil, fmt.Errorf("%w: tick %d", ErrTickGathered, tick)
	}
	s.gathered[tick] = true

	inputs := s.pending[tick]
	delete(s.pending, tick)
	return inputs, nil
}

// PendingTicks returns the number of ticks with queued, un-gathered input
func (s *Session) PendingTicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Forget drops gather bookkeeping for ticks before the given tick
// Call periodically from the simulation goroutine to bound memory
func (s *Session) Forget(beforeTick uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for tick := range s.gathered {
		if tick < beforeTick {
			delete(s.gathered, tick)
		}
	}
	for tick := range s.pending {
		if tick < beforeTick {
			delete(s.pending, tick)
		}
	}
}
