package sched

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fixedstep/clock"
	"github.com/lixenwraith/fixedstep/event"
	"github.com/lixenwraith/fixedstep/status"
)

// StepFunc advances simulation state by exactly dt
// prev is the snapshot of the last completed step (read-only by convention);
// curr is the slot the callback mutates in place to become the new state.
// The callback owns the snapshot contents; the scheduler owns only the two
// slots and the swap discipline
type StepFunc[S any] func(prev, curr S, dt time.Duration)

// RenderFunc receives the last two completed snapshots and the blend alpha
// Invoked once per frame after all steps for that frame have drained,
// including frames that executed zero steps
type RenderFunc[S any] func(prev, curr S, alpha float64)

// StepObserverFunc is notified after each completed step with the executed
// tick ordinal (0-based) and the current snapshot. Lockstep and replay
// layers hash or record the state here
type StepObserverFunc[S any] func(tick uint64, state S)

// FrameTimeExceededFunc is the optional diagnostic hook for clamped frames
type FrameTimeExceededFunc func(raw, clamped time.Duration)

// Scheduler decouples a fixed-rate simulation from a variable-rate frame
// loop using the accumulator pattern
//
// Per frame: sample -> clamp -> accumulate -> drain (0..N steps at constant
// FixedDt) -> render with alpha = accumulator / FixedDt
//
// Guarantees:
//   - the step callback only ever sees FixedDt, never a variable value
//   - steps execute in strictly increasing tick order, never interleaved
//   - after every frame, 0 <= accumulator < FixedDt
//   - at most MaxFrameTime / FixedDt steps run per frame
//
// Thread-Safety: single-threaded at the tick-ordering level. Advance, Frame,
// Reset, and snapshot access belong to the driving goroutine. Pause, Resume,
// CurrentTick, and IsPaused are safe from any goroutine. A step callback may
// fan work out to workers as long as it joins them before returning
type Scheduler[S any] struct {
	cfg Config
	clk *SimulationClock

	// Snapshot slots, swapped by reference at the start of each step
	prev, curr S

	step      StepFunc[S]
	render    RenderFunc[S]
	observers []StepObserverFunc[S]
	onClamp   FrameTimeExceededFunc

	paused        atomic.Bool
	pausableClock *clock.PausableClock
	frameTimer    *clock.FrameTimer
	timeProvider  clock.TimeProvider

	queue *event.Queue // nil when diagnostics events are not wired

	// Cached metric pointers
	statusReg *status.Registry
	statTicks *atomic.Int64
	statSteps *atomic.Int64
	statClamp *atomic.Int64
	statAlpha *status.AtomicFloat
}

// Option configures optional scheduler collaborators
type Option[S any] func(*Scheduler[S])

// WithRender registers the per-frame render callback
func WithRender[S any](fn RenderFunc[S]) Option[S] {
	return func(s *Scheduler[S]) { s.render = fn }
}

// WithStepObserver appends a post-step observer; observers run in
// registration order after every completed step
func WithStepObserver[S any](fn StepObserverFunc[S]) Option[S] {
	return func(s *Scheduler[S]) { s.observers = append(s.observers, fn) }
}

// WithFrameTimeExceeded registers the clamp diagnostic hook
func WithFrameTimeExceeded[S any](fn FrameTimeExceededFunc) Option[S] {
	return func(s *Scheduler[S]) { s.onClamp = fn }
}

// WithStatus uses the given registry instead of a private one
func WithStatus[S any](reg *status.Registry) Option[S] {
	return func(s *Scheduler[S]) { s.statusReg = reg }
}

// WithEvents wires the diagnostics event queue
func WithEvents[S any](q *event.Queue) Option[S] {
	return func(s *Scheduler[S]) { s.queue = q }
}

// WithTimeProvider substitutes the wall-clock source (tests use the mock)
func WithTimeProvider[S any](tp clock.TimeProvider) Option[S] {
	return func(s *Scheduler[S]) { s.timeProvider = tp }
}

// New creates a scheduler over the two caller-owned snapshot slots
// prev and curr must reference distinct storage; the step callback mutates
// curr in place each step. Returns ErrInvalidConfig for an unusable Config
// or a nil step callback
func New[S any](cfg Config, prev, curr S, step StepFunc[S], opts ...Option[S]) (*Scheduler[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if step == nil {
		return nil, fmt.Errorf("%w: nil step callback", ErrInvalidConfig)
	}

	s := &Scheduler[S]{
		cfg:  cfg,
		clk:  newSimulationClock(cfg.FixedDt),
		prev: prev,
		curr: curr,
		step: step,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.timeProvider == nil {
		s.timeProvider = clock.NewMonotonicTimeProvider()
	}
	if s.statusReg == nil {
		s.statusReg = status.NewRegistry()
	}
	s.pausableClock = clock.NewPausableClock(s.timeProvider)
	s.frameTimer = clock.NewFrameTimer(s.timeProvider)

	s.statTicks = s.statusReg.Ints.Get("sched.ticks")
	s.statSteps = s.statusReg.Ints.Get("sched.steps_last_frame")
	s.statClamp = s.statusReg.Ints.Get("sched.clamped_frames")
	s.statAlpha = s.statusReg.Floats.Get("sched.alpha")

	return s, nil
}

// Frame samples the wall clock and advances by the elapsed duration
// The first frame after construction, resume, or reset contributes zero time
func (s *Scheduler[S]) Frame() int {
	raw := s.frameTimer.Sample()
	if s.paused.Load() {
		// Paused samples are discarded so elapsed real time never becomes debt
		raw = 0
	}
	return s.Advance(raw)
}

// Advance runs one frame iteration with an externally supplied raw duration
// Returns the number of steps executed (0, 1, or more). Tests and replay
// drivers feed scripted durations here directly
func (s *Scheduler[S]) Advance(raw time.Duration) int {
	steps := 0

	if raw < 0 {
		// A rewinding wall clock or a bad scripted duration must never
		// drain the accumulator below zero
		raw = 0
	}

	if !s.paused.Load() {
		effective := raw
		if raw > s.cfg.MaxFrameTime {
			effective = s.cfg.MaxFrameTime
			s.statClamp.Add(1)
			s.emit(event.TypeFrameTimeExceeded, &event.FrameTimeExceededPayload{
				Raw:     raw,
				Clamped: effective,
			})
			if s.onClamp != nil {
				s.onClamp(raw, effective)
			}
		}

		s.clk.add(effective)

		for s.clk.ready() {
			// Swap slots; curr now holds stale storage for the callback to overwrite
			s.prev, s.curr = s.curr, s.prev
			s.step(s.prev, s.curr, s.cfg.FixedDt)

			executed := s.clk.consume()
			steps++

			s.emitStep(executed)
			for _, ob := range s.observers {
				ob(executed, s.curr)
			}
		}
	}

	s.statTicks.Store(int64(s.clk.Tick()))
	s.statSteps.Store(int64(steps))

	alpha := s.Alpha()
	s.statAlpha.Set(alpha)

	if s.render != nil {
		s.render(s.prev, s.curr, alpha)
	}
	return steps
}

// Pause freezes time sampling; no steps execute until Resume
func (s *Scheduler[S]) Pause() {
	if s.paused.CompareAndSwap(false, true) {
		s.pausableClock.Pause()
		s.emit(event.TypePaused, nil)
	}
}

// Resume re-enters the running state with the next frame sample forced to 0
func (s *Scheduler[S]) Resume() {
	if s.paused.CompareAndSwap(true, false) {
		s.pausableClock.Resume()
		s.frameTimer.Discard()
		s.emit(event.TypeResumed, nil)
	}
}

// IsPaused returns the current pause state
func (s *Scheduler[S]) IsPaused() bool {
	return s.paused.Load()
}

// Reset starts a new session: tick counter and accumulator to zero
// Snapshot contents are left to the caller, which owns them
func (s *Scheduler[S]) Reset() {
	s.clk.reset()
	s.frameTimer.Discard()
	s.pausableClock = clock.NewPausableClock(s.timeProvider)
	if s.paused.Load() {
		// A paused scheduler stays paused across reset; the fresh session
		// clock must agree or pause accounting reads 0 until Resume
		s.pausableClock.Pause()
	}
	s.statTicks.Store(0)
	s.statSteps.Store(0)
	s.statAlpha.Set(0)
	s.emit(event.TypeSessionReset, nil)
}

// CurrentTick returns the number of completed steps; safe from any goroutine
func (s *Scheduler[S]) CurrentTick() uint64 {
	return s.clk.Tick()
}

// FixedDt returns the constant simulation timestep
func (s *Scheduler[S]) FixedDt() time.Duration {
	return s.cfg.FixedDt
}

// Alpha returns the interpolation alpha in [0, 1) for the current frame,
// or 0 when interpolation is disabled
func (s *Scheduler[S]) Alpha() float64 {
	if !s.cfg.Interpolation {
		return 0
	}
	return s.clk.Alpha()
}

// Accumulator exposes the leftover time for tests and instrumentation
// Valid only on the driving goroutine
func (s *Scheduler[S]) Accumulator() time.Duration {
	return s.clk.Accumulator()
}

// Snapshots returns the previous and current snapshot slots
// Valid only on the driving goroutine (the swap must not race a reader)
func (s *Scheduler[S]) Snapshots() (prev, curr S) {
	return s.prev, s.curr
}

// GameTime returns the pause-adjusted session time
func (s *Scheduler[S]) GameTime() time.Time {
	return s.pausableClock.Now()
}

// TotalPauseDuration returns cumulative paused wall time this session
func (s *Scheduler[S]) TotalPauseDuration() time.Duration {
	return s.pausableClock.TotalPauseDuration()
}

// Status returns the metrics registry the scheduler publishes into
func (s *Scheduler[S]) Status() *status.Registry {
	return s.statusReg
}

func (s *Scheduler[S]) emit(t event.Type, payload any) {
	if s.queue == nil {
		return
	}
	s.queue.Push(event.Event{
		Type:      t,
		Payload:   payload,
		Tick:      s.clk.Tick(),
		Timestamp: s.timeProvider.Now(),
	})
}

func (s *Scheduler[S]) emitStep(executed uint64) {
	if s.queue == nil {
		return
	}
	s.queue.Push(event.Event{
		Type:      event.TypeStepCompleted,
		Payload:   &event.StepCompletedPayload{Tick: executed},
		Tick:      s.clk.Tick(),
		Timestamp: s.timeProvider.Now(),
	})
}
