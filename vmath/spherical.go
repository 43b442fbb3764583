package vmath

import "math"

// SphericalToCartesian converts spherical coordinates to a Vec3
// r: radial distance, theta: azimuth in [0, 2π), phi: polar angle from +Y in [0, π]
func SphericalToCartesian(r, theta, phi float64) Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: r * sinPhi * cosTheta,
		Y: r * cosPhi,
		Z: r * sinPhi * sinTheta,
	}
}

// PolarAngle returns the polar angle of v measured from +Y, in [0, π]
// Zero vector maps to 0
func PolarAngle(v Vec3) float64 {
	mag := V3Mag(v)
	if mag == 0 {
		return 0
	}
	return math.Acos(clamp(v.Y/mag, -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
