package lockstep

// Deterministic state hashing for desync detection.
// Keep portable and stable across versions: integer-only, fixed word order,
// no map iteration, no use of rand.

const (
	mixGamma = 0x9e3779b97f4a7c15
	mixK1    = 0xbf58476d1ce4e5b9
	mixK2    = 0x94d049bb133111eb
)

// Mix64 mixes 64-bit input into a well-distributed 64-bit output
// (splitmix64 finalizer-style avalanching)
func Mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= mixK1
	x ^= x >> 27
	x *= mixK2
	x ^= x >> 31
	return x
}

// Hasher accumulates 64-bit words into a running checksum
// Word order matters: peers must hash identical fields in identical order
// Zero value is ready to use
type Hasher struct {
	state uint64
	words uint64
}

// WriteUint64 folds one word into the checksum
func (h *Hasher) WriteUint64(v uint64) {
	h.state = Mix64(h.state + v + mixGamma)
	h.words++
}

// WriteInt64 folds one signed word into the checksum
func (h *Hasher) WriteInt64(v int64) {
	h.WriteUint64(uint64(v))
}

// Sum64 returns the checksum over all written words
// Includes the word count so that trailing zero words change the result
func (h *Hasher) Sum64() uint64 {
	return Mix64(h.state ^ h.words)
}

// Checksum64 returns a stable hash of a byte slice
// Processes 8-byte little-endian words plus a length-tagged tail
func Checksum64(data []byte) uint64 {
	var h Hasher
	i := 0
	for ; i+8 <= len(data); i += 8 {
		w := uint64(data[i]) |
			uint64(data[i+1])<<8 |
			uint64(data[i+2])<<16 |
			uint64(data[i+3])<<24 |
			uint64(data[i+4])<<32 |
			uint64(data[i+5])<<40 |
			uint64(data[i+6])<<48 |
			uint64(data[i+7])<<56
		h.WriteUint64(w)
	}

	var tail uint64
	for j := i; j < len(data); j++ {
		tail |= uint64(data[j]) << (8 * uint(j-i))
	}
	h.WriteUint64(tail)
	h.WriteUint64(uint64(len(data)))
	return h.Sum64()
}
