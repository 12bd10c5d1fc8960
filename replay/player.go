package replay

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApplyFunc feeds one recorded payload into the simulation before the
// given tick executes
type ApplyFunc func(tick uint64, payload json.RawMessage) error

// Player replays a session's inputs at their exact recorded ticks
//
// The driver calls ApplyTick(n) immediately before executing tick n; the
// player hands over every record bound to n in recorded order. Skipping a
// tick that still has records is an error: the replayed run would diverge
// silently otherwise
//
// Single-goroutine use; playback belongs to the simulation driver
type Player struct {
	session Session
	pos     int
}

// NewPlayer validates the timestep and prepares playback from the start
func NewPlayer(session Session, fixedDt time.Duration) (*Player, error) {
	if session.Header.FixedDt != fixedDt {
		return nil, fmt.Errorf("%w: recorded %v, playing %v",
			ErrFixedDtMismatch, session.Header.FixedDt, fixedDt)
	}
	return &Player{session: session}, nil
}

// Header returns the recording's header
func (p *Player) Header() Header {
	return p.session.Header
}

// ApplyTick delivers all records bound to the given tick
func (p *Player) ApplyTick(tick uint64, apply ApplyFunc) error {
	for p.pos < len(p.session.Records) {
		rec := p.session.Records[p.pos]
		if rec.Tick > tick {
			return nil
		}
		if rec.Tick < tick {
			return fmt.Errorf("%w: record for tick %d still pending at tick %d",
				ErrTickMismatch, rec.Tick, tick)
		}
		if err := apply(rec.Tick, rec.Payload); err != nil {
			return err
		}
		p.pos++
	}
	return nil
}

// Done reports whether every record has been applied
func (p *Player) Done() bool {
	return p.pos >= len(p.session.Records)
}

// Remaining returns the count of un-applied records
func (p *Player) Remaining() int {
	return len(p.session.Records) - p.pos
}
