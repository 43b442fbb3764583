package orbit

import (
	"math"
	"testing"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/vmath"
)

const tolerance = 1e-9

func TestAdvanceDeterminism(t *testing.T) {
	body := catalog.Body{Name: "b", VisualRadius: 2, OrbitRadius: 38, AngularSpeed: 2.9}

	times := []float64{0, 0.001, 1, 17.3, 1000, 86400.5}
	for _, elapsed := range times {
		first := Advance(body, elapsed)
		second := Advance(body, elapsed)
		if first != second {
			t.Errorf("t=%v: repeated advance diverged: %+v vs %+v", elapsed, first, second)
		}
	}
}

func TestOrbitClosure(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		speed  float64
	}{
		{"inner fast", 22, 4.7},
		{"outer slow", 110, 0.5},
		{"unit", 1.000001, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for elapsed := 0.0; elapsed < 400; elapsed += 7.77 {
				pos := Position(tt.radius, tt.speed, elapsed)
				if pos.Y != 0 {
					t.Fatalf("t=%v: position left the orbital plane: y=%v", elapsed, pos.Y)
				}
				mag := vmath.MagXZ(pos)
				if math.Abs(mag-tt.radius) > tolerance {
					t.Fatalf("t=%v: |xz|=%v, want %v", elapsed, mag, tt.radius)
				}
			}
		})
	}
}

func TestHalfRevolutionScenario(t *testing.T) {
	// R=45, ω=1, scale 0.05: t=0 sits at (45,0,0); t=π/0.05 is half a
	// revolution, landing at (-45,0,0).
	at0 := Position(45, 1, 0)
	if math.Abs(at0.X-45) > tolerance || math.Abs(at0.Z) > tolerance {
		t.Errorf("t=0: got (%v, %v, %v), want (45, 0, 0)", at0.X, at0.Y, at0.Z)
	}

	half := Position(45, 1, math.Pi/TimeScale)
	if math.Abs(half.X-(-45)) > 1e-6 || math.Abs(half.Z) > 1e-6 {
		t.Errorf("t=π/scale: got (%v, %v, %v), want (-45, 0, ~0)", half.X, half.Y, half.Z)
	}
}

func TestMoonStaysWithParent(t *testing.T) {
	parent := catalog.Body{Name: "p", VisualRadius: 2.6, OrbitRadius: 38, AngularSpeed: 2.9}
	moon := catalog.Moon{Name: "m", VisualRadius: 0.7, OrbitRadius: 5, AngularSpeed: 9}

	for elapsed := 0.0; elapsed < 500; elapsed += 3.33 {
		parentState := Advance(parent, elapsed)
		moonState := AdvanceMoon(parentState.Position, moon, elapsed)

		dist := vmath.V3Mag(vmath.V3Sub(moonState.Position, parentState.Position))
		if math.Abs(dist-moon.OrbitRadius) > tolerance {
			t.Fatalf("t=%v: moon drifted: distance from parent %v, want %v",
				elapsed, dist, moon.OrbitRadius)
		}
	}
}

func TestSpinDecoupledFromOrbit(t *testing.T) {
	fast := catalog.Body{Name: "f", VisualRadius: 1, OrbitRadius: 10, AngularSpeed: 9}
	slow := catalog.Body{Name: "s", VisualRadius: 1, OrbitRadius: 10, AngularSpeed: 0.1}

	elapsed := 12.5
	if Advance(fast, elapsed).Spin != Advance(slow, elapsed).Spin {
		t.Error("spin should not depend on orbital speed")
	}

	if Spin(10) <= Spin(5) {
		t.Error("spin must accumulate monotonically")
	}
}
