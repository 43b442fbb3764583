// Package scene builds the renderable scene graph from the body catalog:
// one node per body, ring children for ringed bodies, moon children, orbit
// guide rings, the star backdrop, and the camera. Construction happens once
// at mount; the render loop only mutates node transforms after that.
package scene

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/starfield"
	"github.com/solterm/orrery/vmath"
)

// Registrar receives every resource the composer creates so teardown can
// release them exactly once. Implemented by the engine's lifecycle manager.
type Registrar interface {
	Register(name string, dispose func())
}

// Node is a positioned renderable. Position and Spin are the only mutable
// fields; they are written by the render loop driver each frame and read by
// the renderer during the same frame's draw call.
type Node struct {
	Name     string
	Position vmath.Vec3
	Spin     float64

	Radius   float64
	Material Material

	// Ring is a flat child mesh lying in the orbital plane, attached only
	// when the catalog entry carries the ring flag.
	Ring *Ring

	// Moons are child nodes whose positions compose with this node's.
	Moons []*Node

	// Body is the catalog entry this node was built from. Nil for moon
	// nodes, which carry Moon instead.
	Body *catalog.Body
	Moon *catalog.Moon
}

// Ring is a planetary ring attached to a parent body, rotated flat
// relative to the orbital plane.
type Ring struct {
	InnerRadius float64
	OuterRadius float64
	Color       catalog.RGB
}

// GuideRing is a decorative orbit-path marker at a body's orbital radius.
// It takes no part in the orbit computation.
type GuideRing struct {
	Radius float64
	Color  catalog.RGB
}

// Camera holds the projection parameters the renderer uses. Aspect is the
// only field the viewport manager rewrites after construction.
type Camera struct {
	Aspect   float64
	Focal    float64 // perspective focal length, scene units
	Distance float64 // camera distance from the origin along the view axis
	Tilt     float64 // downward tilt in radians
}

// View transforms a world-space point into camera space: tilt the world
// about X, then push it away from the camera along Z.
func (c *Camera) View(v vmath.Vec3) vmath.Vec3 {
	sin, cos := math.Sincos(-c.Tilt)
	return vmath.Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos + c.Distance,
	}
}

// Scene is the handle set the render loop driver works with.
type Scene struct {
	Central *Node
	Bodies  []*Node
	Guides  []GuideRing
	Stars   *starfield.Field

	// StarRotation is the star field's current bulk rotation angle,
	// written by the driver each frame.
	StarRotation float64

	Camera *Camera
}

// Compose validates the catalog and builds the scene graph. Every resource
// that outlives construction is registered with reg for disposal.
// A textured body whose image fails to resolve falls back to its flat
// emissive material; that is an asset problem, not a mount failure.
func Compose(cat catalog.Catalog, stars *starfield.Field, reg Registrar) (*Scene, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if stars == nil {
		return nil, fmt.Errorf("scene: nil star field")
	}

	s := &Scene{
		Stars: stars,
		Camera: &Camera{
			Aspect:   16.0 / 9.0,
			Focal:    90,
			Distance: 160,
			Tilt:     0.5,
		},
	}

	s.Central = &Node{
		Name:     cat.Central.Name,
		Radius:   cat.Central.VisualRadius,
		Material: Material{Kind: MaterialEmissive, Color: cat.Central.Color},
		Body:     &cat.Central,
	}

	guideColor := catalog.RGB{R: 70, G: 70, B: 86}

	for i := range cat.Bodies {
		b := &cat.Bodies[i]

		node := &Node{
			Name:     b.Name,
			Radius:   b.VisualRadius,
			Material: materialFor(b),
			Body:     b,
		}

		if b.HasRing {
			node.Ring = &Ring{
				InnerRadius: b.VisualRadius * 1.4,
				OuterRadius: b.VisualRadius * 2.2,
				Color:       b.Color,
			}
		}

		for j := range b.Moons {
			m := &b.Moons[j]
			node.Moons = append(node.Moons, &Node{
				Name:     m.Name,
				Radius:   m.VisualRadius,
				Material: Material{Kind: MaterialEmissive, Color: m.Color},
				Moon:     m,
			})
		}

		s.Bodies = append(s.Bodies, node)
		s.Guides = append(s.Guides, GuideRing{Radius: b.OrbitRadius, Color: guideColor})
	}

	if reg != nil {
		reg.Register("starfield", func() {
			s.Stars = nil
		})
		for _, n := range s.Bodies {
			if t := n.Material.Texture; t != nil {
				reg.Register("texture:"+n.Name, t.release)
			}
		}
	}

	return s, nil
}

// materialFor picks the body's material: image-mapped for the flagged
// textured body when its image resolves, plain emissive otherwise.
func materialFor(b *catalog.Body) Material {
	if b.HasTexture {
		tex, err := LoadTexture(b.TextureRef)
		if err == nil {
			return Material{Kind: MaterialTextured, Color: b.Color, Texture: tex}
		}
		slog.Warn("texture load failed, using emissive fallback",
			"body", b.Name, "texture", b.TextureRef, "error", err)
	}
	return Material{Kind: MaterialEmissive, Color: b.Color}
}
