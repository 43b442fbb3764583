package render

import (
	"github.com/solterm/orrery/scene"
	"github.com/solterm/orrery/vmath"
)

// nearPlane is the minimum camera-space depth. Points closer than this
// (or behind the camera) are culled.
const nearPlane = 0.5

// projected is a point mapped to pixel coordinates with its depth kept for
// painter's-algorithm ordering.
type projected struct {
	x, y  float64 // pixel coordinates
	scale float64 // pixels per scene unit at this depth (vertical axis)
	depth float64 // camera-space z
	ok    bool
}

// project maps a world-space point to the pixel grid. worldExtent is the
// radius of the region that should fit the view; pw, ph are pixel-grid
// dimensions; density restores square pixel aspect on the cell grid.
func project(cam *scene.Camera, v vmath.Vec3, worldExtent float64, pw, ph, density int) projected {
	view := cam.View(v)
	if view.Z < nearPlane {
		return projected{}
	}

	// Fit worldExtent into 42% of the limiting axis at the camera's
	// resting distance. The vertical field is ph pixels; the horizontal
	// field in equivalent square pixels is ph * Aspect / 2, since a
	// terminal cell is twice as tall as wide. Aspect >= 2 keeps the
	// vertical axis limiting; narrower containers shrink the fit.
	fit := float64(ph)
	if horiz := float64(ph) * cam.Aspect / 2; horiz < fit {
		fit = horiz
	}
	base := 0.42 * fit / (worldExtent * cam.Focal / cam.Distance)
	invZ := cam.Focal / view.Z
	s := invZ * base

	// A terminal cell is twice as tall as wide; density-2 pixels are
	// square, density-1 pixels need 2x horizontal stretch.
	ax := 2.0 / float64(density)

	return projected{
		x:     float64(pw)/2 + view.X*s*ax,
		y:     float64(ph)/2 - view.Y*s,
		scale: s,
		depth: view.Z,
		ok:    true,
	}
}
