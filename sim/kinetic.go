package sim

import "github.com/lixenwraith/fixedstep/vmath"

// Kinetic is the per-particle motion state in Q32.32 fixed point
// Integer-only state keeps step results bit-identical across hosts, which
// the lockstep checksum contract requires
type Kinetic struct {
	// X and Y are sub-cell coordinates in Q32.32 format
	X, Y int64
	// VX and VY represent velocity in cells per second (Q32.32)
	VX, VY int64
}

// integrate advances position by velocity over dt (Q32.32 seconds)
func (k *Kinetic) integrate(dt int64) {
	k.X += vmath.Mul(k.VX, dt)
	k.Y += vmath.Mul(k.VY, dt)
}

// reflectBounds bounces the particle off the [0, w) x [0, h) box
// Position is clamped back inside so a fast particle cannot tunnel out
func (k *Kinetic) reflectBounds(w, h int64) {
	if k.X < 0 {
		k.X = -k.X
		k.VX = -k.VX
	} else if k.X >= w {
		k.X = 2*w - k.X - 1
		k.VX = -k.VX
	}
	if k.Y < 0 {
		k.Y = -k.Y
		k.VY = -k.VY
	} else if k.Y >= h {
		k.Y = 2*h - k.Y - 1
		k.VY = -k.VY
	}
	k.X = vmath.Clamp(k.X, 0, w-1)
	k.Y = vmath.Clamp(k.Y, 0, h-1)
}
