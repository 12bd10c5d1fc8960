package lockstep

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDesync reports that two peers produced different state checksums for
// the same tick. The scheduler's constant dt and strict tick ordering are
// the preconditions; a divergence means the step callback itself is not
// deterministic (map iteration, float variance, unseeded rand)
var ErrDesync = errors.New("lockstep: state checksum divergence")

// Verifier cross-checks TickRecords submitted by multiple peers
//
// The first checksum submitted for a tick becomes the reference; later
// submissions for the same tick must match it. Verified ticks should be
// trimmed periodically to bound memory
type Verifier struct {
	mu        sync.Mutex
	reference map[uint64]peerChecksum
	peers     map[string]uint64 // highest tick submitted per peer
}

type peerChecksum struct {
	peer     string
	checksum uint64
}

// NewVerifier creates an empty verifier
func NewVerifier() *Verifier {
	return &Verifier{
		reference: make(map[uint64]peerChecksum),
		peers:     make(map[string]uint64),
	}
}

// Submit records one peer's checksum for a tick
// Returns ErrDesync naming both peers and the tick on the first divergence
func (v *Verifier) Submit(peer string, rec TickRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if last, ok := v.peers[peer]; !ok || rec.Tick > last {
		v.peers[peer] = rec.Tick
	}

	ref, ok := v.reference[rec.Tick]
	if !ok {
		v.reference[rec.Tick] = peerChecksum{peer: peer, checksum: rec.Checksum}
		return nil
	}

	if ref.checksum != rec.Checksum {
		return fmt.Errorf("%w: tick %d, peer %q checksum %#x vs peer %q checksum %#x",
			ErrDesync, rec.Tick, peer, rec.Checksum, ref.peer, ref.checksum)
	}
	return nil
}

// Trim drops reference checksums for ticks before the given tick
func (v *Verifier) Trim(beforeTick uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for tick := range v.reference {
		if tick < beforeTick {
			delete(v.reference, tick)
		}
	}
}

// PeerCount returns the number of peers that have submitted records
func (v *Verifier) PeerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.peers)
}
