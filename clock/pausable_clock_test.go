package clock

import (
	"testing"
	"time"
)

func TestPausableClockAdvancesWithRealTime(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	start := pc.Now()
	mock.Advance(500 * time.Millisecond)

	elapsed := pc.Now().Sub(start)
	if elapsed != 500*time.Millisecond {
		t.Errorf("Game time advanced by %v, want 500ms", elapsed)
	}
}

func TestPausableClockFreezesWhilePaused(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	mock.Advance(100 * time.Millisecond)
	pc.Pause()
	frozen := pc.Now()

	mock.Advance(5 * time.Second)
	if now := pc.Now(); !now.Equal(frozen) {
		t.Errorf("Game time moved during pause: %v -> %v", frozen, now)
	}

	if !pc.IsPaused() {
		t.Error("IsPaused() = false while paused")
	}
}

func TestPausableClockExcludesPausedDuration(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)
	start := pc.Now()

	mock.Advance(100 * time.Millisecond)
	pc.Pause()
	mock.Advance(3 * time.Second) // paused wall time, must not count
	pc.Resume()
	mock.Advance(200 * time.Millisecond)

	elapsed := pc.Now().Sub(start)
	if elapsed != 300*time.Millisecond {
		t.Errorf("Game time elapsed %v, want 300ms (paused time excluded)", elapsed)
	}

	if got := pc.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("TotalPauseDuration = %v, want 3s", got)
	}
}

func TestPausableClockPauseIdempotent(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	pc.Pause()
	mock.Advance(time.Second)
	pc.Pause() // second pause must not reset pause start
	mock.Advance(time.Second)
	pc.Resume()
	pc.Resume() // second resume must not double-count

	if got := pc.TotalPauseDuration(); got != 2*time.Second {
		t.Errorf("TotalPauseDuration = %v, want 2s", got)
	}
}

func TestPausableClockCurrentPauseDuration(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	if got := pc.CurrentPauseDuration(); got != 0 {
		t.Errorf("CurrentPauseDuration while running = %v, want 0", got)
	}

	pc.Pause()
	mock.Advance(750 * time.Millisecond)
	if got := pc.CurrentPauseDuration(); got != 750*time.Millisecond {
		t.Errorf("CurrentPauseDuration = %v, want 750ms", got)
	}

	pc.Resume()
	if got := pc.CurrentPauseDuration(); got != 0 {
		t.Errorf("CurrentPauseDuration after resume = %v, want 0", got)
	}
}

func TestPausableClockRealTimeUnaffected(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	pc.Pause()
	mock.Advance(time.Second)

	want := time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)
	if got := pc.RealTime(); !got.Equal(want) {
		t.Errorf("RealTime = %v, want %v", got, want)
	}
}
