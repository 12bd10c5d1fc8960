package sim

import (
	"time"

	"github.com/lixenwraith/fixedstep/lockstep"
	"github.com/lixenwraith/fixedstep/vmath"
)

// World is a toy deterministic simulation: particles bouncing in a box
// It exists to exercise and demonstrate the scheduler contract end to end;
// it is not a physics engine
type World struct {
	// Width and Height are the box bounds in Q32.32 cells
	Width, Height int64

	Particles []Kinetic
	Ticks     uint64
}

// NewWorld creates a world of n particles spawned deterministically from seed
func NewWorld(width, height int, seed uint64, n int) *World {
	w := &World{
		Width:     vmath.FromInt(width),
		Height:    vmath.FromInt(height),
		Particles: make([]Kinetic, n),
	}

	// Hash-derived spawn keeps worlds identical across peers sharing a seed
	for i := range w.Particles {
		h := lockstep.Mix64(seed + uint64(i)*0x9e3779b97f4a7c15)
		px := int64(h%uint64(width)) // cells
		h = lockstep.Mix64(h)
		py := int64(h % uint64(height))
		h = lockstep.Mix64(h)
		vx := int64(h%uint64(width)) - int64(width)/2
		h = lockstep.Mix64(h)
		vy := int64(h%uint64(height)) - int64(height)/2
		if vx == 0 {
			vx = 1
		}
		if vy == 0 {
			vy = 1
		}

		w.Particles[i] = Kinetic{
			X:  vmath.FromInt(int(px)),
			Y:  vmath.FromInt(int(py)),
			VX: vmath.FromInt(int(vx)),
			VY: vmath.FromInt(int(vy)),
		}
	}
	return w
}

// Clone returns a deep copy, used to seed the second snapshot slot
func (w *World) Clone() *World {
	out := &World{
		Width:     w.Width,
		Height:    w.Height,
		Particles: make([]Kinetic, len(w.Particles)),
		Ticks:     w.Ticks,
	}
	copy(out.Particles, w.Particles)
	return out
}

// Step advances curr from prev by exactly dt; the sched.StepFunc for World
// curr's storage is reused, so a two-slot swap loop allocates nothing
func Step(prev, curr *World, dt time.Duration) {
	dtFix := vmath.Div(vmath.FromInt(int(dt)), vmath.FromInt(int(time.Second)))

	curr.Width = prev.Width
	curr.Height = prev.Height
	curr.Ticks = prev.Ticks + 1

	if cap(curr.Particles) < len(prev.Particles) {
		curr.Particles = make([]Kinetic, len(prev.Particles))
	}
	curr.Particles = curr.Particles[:len(prev.Particles)]
	copy(curr.Particles, prev.Particles)

	for i := range curr.Particles {
		curr.Particles[i].integrate(dtFix)
		curr.Particles[i].reflectBounds(curr.Width, curr.Height)
	}
}

// Checksum digests the full world state for desync detection
// Field order is fixed; peers must not reorder particles
func (w *World) Checksum() uint64 {
	var h lockstep.Hasher
	h.WriteInt64(w.Width)
	h.WriteInt64(w.Height)
	h.WriteUint64(w.Ticks)
	for i := range w.Particles {
		p := &w.Particles[i]
		h.WriteInt64(p.X)
		h.WriteInt64(p.Y)
		h.WriteInt64(p.VX)
		h.WriteInt64(p.VY)
	}
	return h.Sum64()
}

// BlendCell returns the render cell for a particle blended between its
// previous and current kinetic state. Positions lerp; everything discrete
// about a particle renders from the current snapshot
func BlendCell(prev, curr Kinetic, alpha float64) (x, y int) {
	t := vmath.AlphaToFixed(alpha)
	bx := vmath.Lerp(prev.X, curr.X, t)
	by := vmath.Lerp(prev.Y, curr.Y, t)
	return vmath.ToInt(bx), vmath.ToInt(by)
}
