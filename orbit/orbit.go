// Package orbit computes body positions as a pure function of elapsed
// time. No state is accumulated between calls: the same elapsed time
// always yields the same transforms.
package orbit

import (
	"math"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/vmath"
)

// TimeScale is the global slow-down factor applied to every angular speed
// for visual pacing.
const TimeScale = 0.05

// SpinRate is the self-rotation rate in radians per unit time. Body spin is
// decoupled from orbital revolution and identical for every body.
const SpinRate = 0.4

// StarRotationRate is the slow bulk rotation applied to the star field,
// radians per unit time.
const StarRotationRate = 0.004

// State is a body's transform at a given elapsed time.
type State struct {
	Position vmath.Vec3
	Spin     float64 // accumulated rotation about the local up axis, radians
}

// Position returns the circular-orbit position around the origin for the
// given radius and angular speed at elapsed time t. The orbit lies in the
// XZ plane; inclination is treated as always zero.
func Position(orbitRadius, angularSpeed, t float64) vmath.Vec3 {
	angle := t * angularSpeed * TimeScale
	sin, cos := math.Sincos(angle)
	return vmath.Vec3{
		X: cos * orbitRadius,
		Y: 0,
		Z: sin * orbitRadius,
	}
}

// Spin returns the accumulated self-rotation at elapsed time t.
func Spin(t float64) float64 {
	return t * SpinRate
}

// Advance returns the transform of an orbiting body at elapsed time t.
func Advance(b catalog.Body, t float64) State {
	return State{
		Position: Position(b.OrbitRadius, b.AngularSpeed, t),
		Spin:     Spin(t),
	}
}

// AdvanceMoon composes a moon's transform from its parent's current
// position plus the moon's own circular orbit around that parent. Nesting
// stops here: moons orbit bodies, nothing orbits moons.
func AdvanceMoon(parent vmath.Vec3, m catalog.Moon, t float64) State {
	return State{
		Position: vmath.V3Add(parent, Position(m.OrbitRadius, m.AngularSpeed, t)),
		Spin:     Spin(t),
	}
}

// StarRotation returns the star field's bulk rotation angle at elapsed
// time t.
func StarRotation(t float64) float64 {
	return t * StarRotationRate
}
