package vmath

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestV3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	if got := V3Add(a, b); got != (Vec3{5, -3, 9}) {
		t.Errorf("V3Add = %+v", got)
	}
	if got := V3Sub(a, b); got != (Vec3{-3, 7, -3}) {
		t.Errorf("V3Sub = %+v", got)
	}
	if got := V3Dot(a, b); got != 4-10+18 {
		t.Errorf("V3Dot = %v", got)
	}
	if got := V3Mag(Vec3{3, 4, 0}); got != 5 {
		t.Errorf("V3Mag = %v", got)
	}
	if got := V3Normalize(Vec3{}); got != (Vec3{}) {
		t.Errorf("V3Normalize(zero) = %+v", got)
	}
	if got := V3Mag(V3Normalize(Vec3{7, -2, 11})); !near(got, 1) {
		t.Errorf("normalized magnitude = %v", got)
	}
}

func TestRotateYPreservesMagnitude(t *testing.T) {
	v := Vec3{3, 1, -4}
	for angle := 0.0; angle < 7; angle += 0.3 {
		r := RotateY(v, angle)
		if !near(V3Mag(r), V3Mag(v)) {
			t.Fatalf("angle %v: magnitude changed %v → %v", angle, V3Mag(v), V3Mag(r))
		}
		if r.Y != v.Y {
			t.Fatalf("angle %v: Y changed", angle)
		}
	}

	quarter := RotateY(Vec3{1, 0, 0}, math.Pi/2)
	if !near(quarter.X, 0) || !near(quarter.Z, -1) {
		t.Errorf("quarter turn of +X = %+v, want (0, 0, -1)", quarter)
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	tests := []struct {
		r, theta, phi float64
	}{
		{1, 0, math.Pi / 2},
		{10, math.Pi / 3, math.Pi / 4},
		{500, 5.5, 2.8},
		{2000, 0.01, 0.01},
	}

	for _, tt := range tests {
		v := SphericalToCartesian(tt.r, tt.theta, tt.phi)
		if !near(V3Mag(v), tt.r) {
			t.Errorf("r=%v: magnitude %v", tt.r, V3Mag(v))
		}
		if !near(PolarAngle(v), tt.phi) {
			t.Errorf("phi=%v: polar angle %v", tt.phi, PolarAngle(v))
		}
	}

	if PolarAngle(Vec3{}) != 0 {
		t.Error("polar angle of zero vector should be 0")
	}
}

func TestMagXZ(t *testing.T) {
	if got := MagXZ(Vec3{3, 99, 4}); got != 5 {
		t.Errorf("MagXZ ignoring Y = %v, want 5", got)
	}
}
