// Package starfield generates the static backdrop point cloud: points
// uniformly distributed over a spherical shell. The set is generated once
// and never mutated; the render loop applies only a slow bulk rotation.
package starfield

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/solterm/orrery/vmath"
)

// Field is an immutable batch of star points. Points is a flat buffer of
// Count×3 floats in x,y,z order.
type Field struct {
	Points []float64
	Count  int
}

// Generate produces n points uniformly distributed over the shell between
// inner and outer radius. Radius is sampled uniformly in [inner, outer],
// azimuth uniformly in [0, 2π), and the polar angle via inverse cosine of a
// uniform sample in [-1, 1] so area density is uniform on the sphere
// instead of clustering at the poles.
//
// The same seed always yields the same field.
func Generate(n int, inner, outer float64, seed uint64) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("starfield: count %d must be positive", n)
	}
	if inner < 0 {
		return nil, fmt.Errorf("starfield: inner radius %v must be non-negative", inner)
	}
	if outer <= inner {
		return nil, fmt.Errorf("starfield: outer radius %v must exceed inner radius %v", outer, inner)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pts := make([]float64, n*3)
	for i := 0; i < n; i++ {
		r := inner + (outer-inner)*rng.Float64()
		theta := 2 * math.Pi * rng.Float64()
		phi := math.Acos(2*rng.Float64() - 1)

		p := vmath.SphericalToCartesian(r, theta, phi)
		pts[i*3] = p.X
		pts[i*3+1] = p.Y
		pts[i*3+2] = p.Z
	}

	return &Field{Points: pts, Count: n}, nil
}

// At returns point i as a Vec3
func (f *Field) At(i int) vmath.Vec3 {
	return vmath.Vec3{
		X: f.Points[i*3],
		Y: f.Points[i*3+1],
		Z: f.Points[i*3+2],
	}
}
