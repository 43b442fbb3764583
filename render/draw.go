package render

import (
	"math"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/scene"
	"github.com/solterm/orrery/vmath"
)

// Fixed light direction for body shading, normalized at init.
var lightX, lightY, lightZ float64

func init() {
	lx, ly, lz := -0.35, 0.55, -0.75
	m := math.Sqrt(lx*lx + ly*ly + lz*lz)
	lightX, lightY, lightZ = lx/m, ly/m, lz/m
}

// drawStars plots the star backdrop with the field's current bulk
// rotation. Brightness varies per star deterministically by index.
func (r *Renderer) drawStars(s *scene.Scene) {
	if s.Stars == nil {
		return
	}
	pw, ph := r.buf.PxSize()
	for i := 0; i < s.Stars.Count; i++ {
		p := vmath.RotateY(s.Stars.At(i), s.StarRotation)
		proj := project(s.Camera, p, r.worldExtent, pw, ph, r.buf.Density())
		if !proj.ok {
			continue
		}
		// 0.35..1.0 brightness band, cheap hash on index
		t := 0.35 + 0.65*float64((i*2654435761)&0xff)/255.0
		v := uint8(200 * t)
		r.buf.AddPx(int(proj.x), int(proj.y), catalog.RGB{R: v, G: v, B: uint8(math.Min(255, float64(v)+20))})
	}
}

// drawGuide traces one orbit-path marker. Guides are thin and dim:
// decoration, not geometry the integrator knows about.
func (r *Renderer) drawGuide(s *scene.Scene, g scene.GuideRing) {
	pw, ph := r.buf.PxSize()
	steps := 360
	color := Scale(g.Color, 0.55)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		sin, cos := math.Sincos(a)
		p := vmath.Vec3{X: cos * g.Radius, Y: 0, Z: sin * g.Radius}
		proj := project(s.Camera, p, r.worldExtent, pw, ph, r.buf.Density())
		if !proj.ok {
			continue
		}
		r.buf.AddPx(int(proj.x), int(proj.y), color)
	}
}

// drawRing rasterizes a planetary ring as a flat annulus around its
// parent's current position.
func (r *Renderer) drawRing(s *scene.Scene, parent vmath.Vec3, ring *scene.Ring) {
	pw, ph := r.buf.PxSize()
	color := Scale(ring.Color, 0.8)
	bands := 3
	steps := 220
	for b := 0; b <= bands; b++ {
		radius := ring.InnerRadius + (ring.OuterRadius-ring.InnerRadius)*float64(b)/float64(bands)
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			sin, cos := math.Sincos(a)
			p := vmath.V3Add(parent, vmath.Vec3{X: cos * radius, Y: 0, Z: sin * radius})
			proj := project(s.Camera, p, r.worldExtent, pw, ph, r.buf.Density())
			if !proj.ok {
				continue
			}
			r.buf.SetPx(int(proj.x), int(proj.y), color)
		}
	}
}

// drawBody shades one sphere: rim-lit emissive color, or texture samples
// for the image-mapped body, with the node's spin rotating the sample
// longitude.
func (r *Renderer) drawBody(s *scene.Scene, n *scene.Node) {
	pw, ph := r.buf.PxSize()
	density := r.buf.Density()
	proj := project(s.Camera, n.Position, r.worldExtent, pw, ph, density)
	if !proj.ok {
		return
	}

	pr := n.Radius * proj.scale
	if pr < 0.4 {
		// Sub-pixel body: single point so distant moons stay visible
		r.buf.SetPx(int(proj.x), int(proj.y), n.Material.Color)
		return
	}

	ax := 2.0 / float64(density)
	prX := pr * ax
	minX := int(proj.x - prX - 1)
	maxX := int(proj.x + prX + 1)
	minY := int(proj.y - pr - 1)
	maxY := int(proj.y + pr + 1)

	textured := n.Material.Kind == scene.MaterialTextured && n.Material.Texture != nil

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - proj.x) / prX
			ny := (float64(sy) + 0.5 - proj.y) / pr
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)

			base := n.Material.Color
			if textured {
				u := 0.5 + math.Atan2(nx, nz)/(2*math.Pi) + n.Spin/(2*math.Pi)
				v := 0.5 - math.Asin(-ny)/math.Pi
				base = n.Material.Texture.Sample(u, v)
			}

			lambert := nx*lightX + ny*lightY + nz*lightZ
			if lambert < 0 {
				lambert = 0
			}
			rim := 1 - nz
			intensity := 0.35 + 0.5*lambert + 0.25*rim*rim
			if intensity > 1 {
				intensity = 1
			}
			r.buf.SetPx(sx, sy, Scale(base, intensity))
		}
	}
}
