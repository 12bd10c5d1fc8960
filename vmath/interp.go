package vmath

import "math"

// Interpolation helpers for render-side blending between the previous and
// current simulation snapshots. Blending never feeds back into simulation
// state, so float math is acceptable here; the Q32.32 variants exist for
// callers that render in fixed point as well.
//
// Blend semantics by state kind:
//   - scalar positions: linear (Lerp / LerpFloat)
//   - angles: shortest arc in radians (LerpAngle)
//   - discrete flags, entity ids, cell contents: no blending, render the
//     current snapshot value (snap)

// Lerp performs linear interpolation between a and b
// t is in [0, Scale] where 0 returns a, Scale returns b
func Lerp(a, b, t int64) int64 {
	return a + Mul(b-a, t)
}

// LerpFloat performs linear interpolation between a and b with t in [0, 1]
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle interpolates between two angles in radians along the shortest arc
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*t
}

// AlphaToFixed converts a render alpha in [0, 1) to Q32.32 t for Lerp
func AlphaToFixed(alpha float64) int64 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return Scale
	}
	return int64(alpha * Scale)
}
