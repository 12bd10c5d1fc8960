package config

import (
	_ "embed"
)

//go:embed defaults/fixedstep.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Timestep: TimestepConfig{
			TickRate:        60,
			MaxFrameTimeMs:  250,
			Interpolation:   true,
			LogLevel:        "info",
			DiagnosticQueue: true,
		},
		Demo: DemoConfig{
			Width:     80,
			Height:    24,
			Particles: 32,
			Seed:      1,
		},
		Replay: ReplayConfig{
			DBPath: "~/.fixedstep/replays.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
