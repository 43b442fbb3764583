// Package render issues the per-frame draw call: star backdrop, orbit
// guides, bodies far-to-near, then the glyph overlay, flushed to the
// terminal surface as one frame. Compositor idiom follows the same
// painter's-algorithm pipeline as a depth-sorted sphere renderer.
package render

import (
	"sort"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/scene"
	"github.com/solterm/orrery/terminal"
)

// OverlayLine is one glyph-overlay run, used by the application shell for
// HUD and chat text.
type OverlayLine struct {
	X, Y int
	Text string
	Fg   catalog.RGB
}

// Renderer owns the compositor buffer and the draw call.
type Renderer struct {
	buf     *Buffer
	surface *terminal.Surface

	// worldExtent is the scene radius the projection fits into view.
	worldExtent float64

	overlay []OverlayLine
}

// New creates a renderer sized to the surface.
func New(surface *terminal.Surface, width, height, density int, worldExtent float64) *Renderer {
	if worldExtent <= 0 {
		worldExtent = 1
	}
	return &Renderer{
		buf:         NewBuffer(width, height, density),
		surface:     surface,
		worldExtent: worldExtent,
	}
}

// WorldExtentFor computes the fit radius for a catalog: the outermost
// orbit plus slack for ring children.
func WorldExtentFor(cat catalog.Catalog) float64 {
	extent := cat.Central.VisualRadius
	for _, b := range cat.Bodies {
		reach := b.OrbitRadius + b.VisualRadius*2.2
		for _, m := range b.Moons {
			if r := b.OrbitRadius + m.OrbitRadius + m.VisualRadius; r > reach {
				reach = r
			}
		}
		if reach > extent {
			extent = reach
		}
	}
	return extent * 1.06
}

// Resize adjusts the compositor to new cell dimensions and density, then
// forces a full terminal redraw.
func (r *Renderer) Resize(width, height, density int) {
	r.buf.Resize(width, height, density)
	if r.surface != nil {
		r.surface.Sync()
	}
}

// SetOverlay replaces the glyph overlay drawn on top of every frame.
// Called from the same goroutine as Frame.
func (r *Renderer) SetOverlay(lines []OverlayLine) {
	r.overlay = lines
}

// Buffer exposes the compositor for tests.
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Frame draws the scene and presents it. One call per render-loop tick.
func (r *Renderer) Frame(s *scene.Scene) {
	r.buf.Clear()

	r.drawStars(s)
	for _, g := range s.Guides {
		r.drawGuide(s, g)
	}

	// Painter's algorithm over bodies, rings, and moons: farthest first.
	type drawable struct {
		depth float64
		draw  func()
	}
	var items []drawable

	add := func(n *scene.Node) {
		view := s.Camera.View(n.Position)
		node := n
		items = append(items, drawable{depth: view.Z, draw: func() { r.drawBody(s, node) }})
		if n.Ring != nil {
			ring := n.Ring
			pos := n.Position
			// Ring sits fractionally behind its parent so the body wins ties
			items = append(items, drawable{depth: view.Z + 0.01, draw: func() { r.drawRing(s, pos, ring) }})
		}
		for _, m := range n.Moons {
			moon := m
			mview := s.Camera.View(m.Position)
			items = append(items, drawable{depth: mview.Z, draw: func() { r.drawBody(s, moon) }})
		}
	}

	add(s.Central)
	for _, n := range s.Bodies {
		add(n)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})
	for _, it := range items {
		it.draw()
	}

	for _, line := range r.overlay {
		r.buf.WriteString(line.X, line.Y, line.Text, line.Fg)
	}

	if r.surface != nil {
		r.buf.Flush(r.surface)
	}
}
