package sched

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"exact budget", Config{FixedDt: 10 * time.Millisecond, MaxFrameTime: 10 * time.Millisecond}, false},
		{"zero dt", Config{FixedDt: 0, MaxFrameTime: time.Second}, true},
		{"negative dt", Config{FixedDt: -time.Millisecond, MaxFrameTime: time.Second}, true},
		{"budget below dt", Config{FixedDt: 20 * time.Millisecond, MaxFrameTime: 10 * time.Millisecond}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigMaxStepsPerFrame(t *testing.T) {
	cfg := Config{FixedDt: time.Second / 60, MaxFrameTime: 250 * time.Millisecond}
	if got := cfg.MaxStepsPerFrame(); got != 15 {
		t.Errorf("MaxStepsPerFrame = %d, want 15", got)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	step := func(prev, curr *int, dt time.Duration) {}

	_, err := New(Config{FixedDt: -1, MaxFrameTime: time.Second}, new(int), new(int), step)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New with bad config: err = %v, want ErrInvalidConfig", err)
	}

	_, err = New[*int](DefaultConfig(), new(int), new(int), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New with nil step: err = %v, want ErrInvalidConfig", err)
	}
}
