package event

import (
	"time"
)

// Type identifies a scheduler diagnostic event
type Type int

const (
	// TypeFrameTimeExceeded signals a raw frame duration above the budget
	// Trigger: Scheduler.Advance when raw > maxFrameTime
	// Payload: *FrameTimeExceededPayload
	TypeFrameTimeExceeded Type = iota

	// TypeStepCompleted signals one completed fixed step
	// Trigger: Scheduler drain loop, once per step
	// Payload: *StepCompletedPayload
	TypeStepCompleted

	// TypePaused signals the scheduler entered the paused state
	// Trigger: Scheduler.Pause | Payload: nil
	TypePaused

	// TypeResumed signals the scheduler left the paused state
	// Trigger: Scheduler.Resume | Payload: nil
	TypeResumed

	// TypeSessionReset signals an explicit session reset (tick counter to 0)
	// Trigger: Scheduler.Reset | Payload: nil
	TypeSessionReset
)

// String returns the event type name for logs and reports
func (t Type) String() string {
	switch t {
	case TypeFrameTimeExceeded:
		return "FrameTimeExceeded"
	case TypeStepCompleted:
		return "StepCompleted"
	case TypePaused:
		return "Paused"
	case TypeResumed:
		return "Resumed"
	case TypeSessionReset:
		return "SessionReset"
	default:
		return "Unknown"
	}
}

// Event represents a single diagnostic event with metadata
type Event struct {
	Type      Type
	Payload   any
	Tick      uint64 // Tick count at emission
	Timestamp time.Time
}
