package engine

import (
	"github.com/solterm/orrery/scene"
)

// MaxPixelDensity caps the effective pixel density to bound per-frame
// shading cost regardless of what the configuration asks for.
const MaxPixelDensity = 2

// ViewportState mirrors the container's current geometry. Written only by
// the viewport manager in response to resize events.
type ViewportState struct {
	Width   int
	Height  int
	Density int
}

// SurfaceSizer is the drawing-surface side of a resize: the renderer's
// compositor buffer.
type SurfaceSizer interface {
	Resize(width, height, density int)
}

// Viewport keeps the camera projection and the drawing surface consistent
// with the container. It is event-driven: HandleResize runs on resize
// notifications, never on the frame cadence.
type Viewport struct {
	cam   *scene.Camera
	sizer SurfaceSizer
	state ViewportState
}

// NewViewport creates the manager with a requested pixel density, capped
// at MaxPixelDensity and floored at 1.
func NewViewport(cam *scene.Camera, sizer SurfaceSizer, density int) *Viewport {
	if density < 1 {
		density = 1
	}
	if density > MaxPixelDensity {
		density = MaxPixelDensity
	}
	return &Viewport{
		cam:   cam,
		sizer: sizer,
		state: ViewportState{Density: density},
	}
}

// HandleResize recomputes the camera aspect from the container dimensions
// and resizes the drawing surface to match.
func (v *Viewport) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.state.Width = width
	v.state.Height = height
	if v.cam != nil {
		v.cam.Aspect = float64(width) / float64(height)
	}
	if v.sizer != nil {
		v.sizer.Resize(width, height, v.state.Density)
	}
}

// State returns the current viewport geometry.
func (v *Viewport) State() ViewportState {
	return v.state
}
