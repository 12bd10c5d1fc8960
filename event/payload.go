package event

import (
	"time"
)

// FrameTimeExceededPayload carries the raw and clamped durations of a frame
// that blew the frame budget
type FrameTimeExceededPayload struct {
	Raw     time.Duration
	Clamped time.Duration
}

// StepCompletedPayload identifies one completed fixed step
// Consumers own the payload once drained; it is never recycled
type StepCompletedPayload struct {
	Tick uint64
}
