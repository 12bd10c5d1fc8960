package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}

	var embedded Config
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded default Validate() = %v, want nil", err)
	}
	if embedded != cfg {
		t.Errorf("embedded default = %+v, hardcoded default = %+v", embedded, cfg)
	}
}

func TestTimestepDerivedValues(t *testing.T) {
	ts := TimestepConfig{TickRate: 60, MaxFrameTimeMs: 250}

	if got := ts.FixedDt(); got != time.Second/60 {
		t.Errorf("FixedDt() = %v, want %v", got, time.Second/60)
	}
	if got := ts.MaxFrameTime(); got != 250*time.Millisecond {
		t.Errorf("MaxFrameTime() = %v, want 250ms", got)
	}
}

func TestSchedConversion(t *testing.T) {
	cfg := Default()
	cfg.Timestep.TickRate = 30
	cfg.Timestep.Interpolation = false

	sc := cfg.Sched()
	if sc.FixedDt != time.Second/30 {
		t.Errorf("Sched().FixedDt = %v, want %v", sc.FixedDt, time.Second/30)
	}
	if sc.Interpolation {
		t.Error("Sched().Interpolation = true, want false")
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("converted config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.Timestep.TickRate = 0 }},
		{"negative tick rate", func(c *Config) { c.Timestep.TickRate = -60 }},
		{"excessive tick rate", func(c *Config) { c.Timestep.TickRate = 10000 }},
		{"zero frame clamp", func(c *Config) { c.Timestep.MaxFrameTimeMs = 0 }},
		{"clamp below timestep", func(c *Config) {
			c.Timestep.TickRate = 60
			c.Timestep.MaxFrameTimeMs = 10
		}},
		{"zero demo width", func(c *Config) { c.Demo.Width = 0 }},
		{"zero particles", func(c *Config) { c.Demo.Particles = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte(`
timestep:
  tick_rate: 30
  max_frame_time_ms: 200
  interpolation: false
demo:
  width: 40
  height: 12
  particles: 8
  seed: 99
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) = %v", path, err)
	}
	if cfg.Timestep.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.Timestep.TickRate)
	}
	if cfg.Timestep.Interpolation {
		t.Error("Interpolation = true, want false")
	}
	if cfg.Demo.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Demo.Seed)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load(missing custom path) = nil, want error")
	}
}

func TestLoadRejectsInvalidCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("timestep:\n  tick_rate: -5\n"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("Load(invalid config) = nil, want error")
	}
}
