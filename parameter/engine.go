package parameter

import "time"

// Scheduler Timing Defaults
const (
	// DefaultTickRate is the default simulation rate in steps per second
	DefaultTickRate = 60

	// DefaultFixedDt is the default fixed simulation timestep
	DefaultFixedDt = time.Second / DefaultTickRate

	// DefaultMaxFrameTime bounds how much raw frame time a single frame may
	// convert into simulation debt (~15 steps at 60 Hz before truncation)
	DefaultMaxFrameTime = 250 * time.Millisecond
)

// Diagnostics Queue Limits
const (
	// EventQueueSize is the fixed capacity of the diagnostics event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)
