package sched

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/fixedstep/parameter"
)

// ErrInvalidConfig is returned when a scheduler cannot be constructed
// Configuration errors are fatal at startup; timing anomalies at runtime
// are recovered locally and never surface as errors
var ErrInvalidConfig = errors.New("sched: invalid configuration")

// Config holds the immutable timing parameters of a scheduler
// All fields are fixed at construction; a scheduler that changes its
// timestep mid-session cannot honor the determinism contract
type Config struct {
	// FixedDt is the constant simulation timestep, typically 1/30s to 1/120s
	FixedDt time.Duration

	// MaxFrameTime bounds the raw frame duration converted into simulation
	// debt per frame. This is the sole guard against the spiral of death:
	// a single stalled frame may otherwise force unbounded catch-up work
	MaxFrameTime time.Duration

	// Interpolation controls the render alpha. When false the render
	// callback always receives alpha = 0 (render exactly at the last
	// completed step, appropriate for pixel-snapped visuals)
	Interpolation bool
}

// DefaultConfig returns 60 Hz simulation with a 250ms frame budget
func DefaultConfig() Config {
	return Config{
		FixedDt:       parameter.DefaultFixedDt,
		MaxFrameTime:  parameter.DefaultMaxFrameTime,
		Interpolation: true,
	}
}

// Validate reports fatal configuration errors
// A scheduler whose budget cannot fit one step per clamp window is meaningless
func (c Config) Validate() error {
	if c.FixedDt <= 0 {
		return fmt.Errorf("%w: fixed dt %v must be positive", ErrInvalidConfig, c.FixedDt)
	}
	if c.MaxFrameTime < c.FixedDt {
		return fmt.Errorf("%w: max frame time %v below fixed dt %v", ErrInvalidConfig, c.MaxFrameTime, c.FixedDt)
	}
	return nil
}

// MaxStepsPerFrame returns the hard bound on drain iterations per frame,
// a direct consequence of clamping inflow
func (c Config) MaxStepsPerFrame() int {
	return int(c.MaxFrameTime / c.FixedDt)
}
