// Package config provides YAML-based configuration loading for the
// fixed-timestep runtime and the demo simulation.
package config

import (
	"fmt"
	"time"

	"github.com/lixenwraith/fixedstep/sched"
)

// Config contains all configuration for the runtime and demo.
type Config struct {
	Timestep TimestepConfig `yaml:"timestep"`
	Demo     DemoConfig     `yaml:"demo"`
	Replay   ReplayConfig   `yaml:"replay"`
}

// TimestepConfig defines the simulation scheduling parameters.
type TimestepConfig struct {
	TickRate        int    `yaml:"tick_rate"`         // Simulation steps per second
	MaxFrameTimeMs  int    `yaml:"max_frame_time_ms"` // Clamp applied to raw frame durations
	Interpolation   bool   `yaml:"interpolation"`     // Blend render state between steps
	LogLevel        string `yaml:"log_level"`         // "debug", "info", "warn", "error"
	DiagnosticQueue bool   `yaml:"diagnostic_queue"`  // Enable the scheduler event queue
}

// DemoConfig defines parameters for the bouncing-particle demo world.
type DemoConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Particles int    `yaml:"particles"`
	Seed      uint64 `yaml:"seed"`
}

// ReplayConfig defines replay persistence settings.
type ReplayConfig struct {
	DBPath string `yaml:"db_path"`
}

// FixedDt returns the step duration implied by the tick rate.
func (t TimestepConfig) FixedDt() time.Duration {
	return time.Second / time.Duration(t.TickRate)
}

// MaxFrameTime returns the frame clamp as a duration.
func (t TimestepConfig) MaxFrameTime() time.Duration {
	return time.Duration(t.MaxFrameTimeMs) * time.Millisecond
}

// Sched converts the timestep section into a scheduler configuration.
func (c Config) Sched() sched.Config {
	return sched.Config{
		FixedDt:       c.Timestep.FixedDt(),
		MaxFrameTime:  c.Timestep.MaxFrameTime(),
		Interpolation: c.Timestep.Interpolation,
	}
}

// Validate checks the configuration for values the runtime cannot accept.
func (c Config) Validate() error {
	if c.Timestep.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Timestep.TickRate)
	}
	if c.Timestep.TickRate > 1000 {
		return fmt.Errorf("config: tick_rate %d exceeds 1000", c.Timestep.TickRate)
	}
	if c.Timestep.MaxFrameTimeMs <= 0 {
		return fmt.Errorf("config: max_frame_time_ms must be positive, got %d", c.Timestep.MaxFrameTimeMs)
	}
	if err := c.Sched().Validate(); err != nil {
		return err
	}
	if c.Demo.Width <= 0 || c.Demo.Height <= 0 {
		return fmt.Errorf("config: demo dimensions must be positive, got %dx%d",
			c.Demo.Width, c.Demo.Height)
	}
	if c.Demo.Particles <= 0 {
		return fmt.Errorf("config: demo particles must be positive, got %d", c.Demo.Particles)
	}
	return nil
}
