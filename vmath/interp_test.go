package vmath

import (
	"math"
	"testing"
)

func TestLerpEndpoints(t *testing.T) {
	a, b := FromInt(10), FromInt(20)
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %d, want %d", got, a)
	}
	if got := Lerp(a, b, Scale); got != b {
		t.Errorf("Lerp(t=Scale) = %d, want %d", got, b)
	}
	if got := Lerp(a, b, Half); got != FromInt(15) {
		t.Errorf("Lerp(t=Half) = %d, want %d", got, FromInt(15))
	}
}

func TestLerpFloat(t *testing.T) {
	if got := LerpFloat(0, 10, 0.5); got != 5 {
		t.Errorf("LerpFloat = %v, want 5", got)
	}
	if got := LerpFloat(-10, 10, 0.25); got != -5 {
		t.Errorf("LerpFloat = %v, want -5", got)
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	tests := []struct {
		name       string
		a, b, t    float64
		want       float64
	}{
		{"quarter turn", 0, math.Pi / 2, 0.5, math.Pi / 4},
		{"wraps positive", 0.1, 2*math.Pi - 0.1, 0.5, 0},
		{"wraps negative", 2*math.Pi - 0.1, 0.1, 0.5, 2 * math.Pi},
		{"identity", 1.5, 1.5, 0.7, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LerpAngle(tt.a, tt.b, tt.t)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LerpAngle(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestAlphaToFixedBounds(t *testing.T) {
	if got := AlphaToFixed(-0.5); got != 0 {
		t.Errorf("AlphaToFixed(-0.5) = %d, want 0", got)
	}
	if got := AlphaToFixed(1.5); got != Scale {
		t.Errorf("AlphaToFixed(1.5) = %d, want Scale", got)
	}
	if got := AlphaToFixed(0.5); got != Half {
		t.Errorf("AlphaToFixed(0.5) = %d, want Half", got)
	}
}
