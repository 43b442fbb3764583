package render

import (
	"testing"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/orbit"
	"github.com/solterm/orrery/scene"
	"github.com/solterm/orrery/starfield"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	cat := catalog.Catalog{
		Central: catalog.Body{
			Name: "sol", VisualRadius: 10,
			Color: catalog.RGB{R: 255, G: 200, B: 60},
		},
		Bodies: []catalog.Body{
			{
				Name: "ea", VisualRadius: 3, OrbitRadius: 50, AngularSpeed: 1,
				Color: catalog.RGB{R: 60, G: 120, B: 220},
				Moons: []catalog.Moon{
					{Name: "lu", VisualRadius: 1, OrbitRadius: 7, AngularSpeed: 4,
						Color: catalog.RGB{R: 180, G: 180, B: 180}},
				},
			},
			{
				Name: "sa", VisualRadius: 5, OrbitRadius: 90, AngularSpeed: 0.5,
				Color: catalog.RGB{R: 210, G: 180, B: 120}, HasRing: true,
			},
		},
	}
	stars, err := starfield.Generate(300, 500, 2000, 7)
	if err != nil {
		t.Fatalf("generate stars: %v", err)
	}
	s, err := scene.Compose(cat, stars, nil)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	return s
}

func advance(s *scene.Scene, t float64) {
	s.Central.Spin = orbit.Spin(t)
	for _, n := range s.Bodies {
		st := orbit.Advance(*n.Body, t)
		n.Position, n.Spin = st.Position, st.Spin
		for _, m := range n.Moons {
			mst := orbit.AdvanceMoon(n.Position, *m.Moon, t)
			m.Position, m.Spin = mst.Position, mst.Spin
		}
	}
	s.StarRotation = orbit.StarRotation(t)
}

func TestWorldExtentCoversOutermostReach(t *testing.T) {
	cat := catalog.Default()
	extent := WorldExtentFor(cat)

	var reach float64
	for _, b := range cat.Bodies {
		if r := b.OrbitRadius + b.VisualRadius*2.2; r > reach {
			reach = r
		}
	}
	if extent <= reach {
		t.Errorf("WorldExtentFor = %v, want > outermost reach %v", extent, reach)
	}
	if extent > reach*1.2 {
		t.Errorf("WorldExtentFor = %v, want modest slack over %v", extent, reach)
	}
}

func TestFrameDrawsCentralBody(t *testing.T) {
	s := testScene(t)
	advance(s, 0)

	r := New(nil, 80, 24, 2, WorldExtentFor(catalog.Default()))
	r.Frame(s)

	// The central body sits at the world origin, which projects to the
	// center of the pixel grid.
	buf := r.Buffer()
	pw, ph := buf.PxSize()
	if got := buf.GetPx(pw/2, ph/2); got == (catalog.RGB{}) {
		t.Errorf("center pixel after Frame is black, want central body shading")
	}
}

func TestFrameIsDeterministic(t *testing.T) {
	s := testScene(t)
	advance(s, 12.5)

	r1 := New(nil, 60, 20, 2, 200)
	r2 := New(nil, 60, 20, 2, 200)
	r1.Frame(s)
	r2.Frame(s)

	pw, ph := r1.Buffer().PxSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if a, b := r1.Buffer().GetPx(x, y), r2.Buffer().GetPx(x, y); a != b {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", x, y, a, b)
			}
		}
	}
}

func TestFrameClearsPreviousContent(t *testing.T) {
	s := testScene(t)
	advance(s, 0)

	r := New(nil, 60, 20, 2, 200)
	r.SetOverlay([]OverlayLine{{X: 1, Y: 1, Text: "stale", Fg: catalog.RGB{R: 255}}})
	r.Frame(s)

	r.SetOverlay(nil)
	r.Frame(s)
	if g, _ := r.Buffer().GlyphAt(1, 1); g != 0 {
		t.Errorf("overlay glyph survived across frames: %q", g)
	}
}

func TestOverlayDrawnOnTop(t *testing.T) {
	s := testScene(t)
	advance(s, 0)

	r := New(nil, 80, 24, 2, 200)
	fg := catalog.RGB{R: 240, G: 240, B: 240}
	r.SetOverlay([]OverlayLine{{X: 30, Y: 12, Text: "press tab", Fg: fg}})
	r.Frame(s)

	g, got := r.Buffer().GlyphAt(30, 12)
	if g != 'p' || got != fg {
		t.Errorf("GlyphAt(30,12) = %q %v, want 'p' %v", g, got, fg)
	}
}

func TestResizeKeepsRendering(t *testing.T) {
	s := testScene(t)
	advance(s, 3)

	r := New(nil, 80, 24, 2, 200)
	r.Frame(s)
	r.Resize(40, 12, 1)

	if w, h := r.Buffer().Size(); w != 40 || h != 12 {
		t.Fatalf("Size() after Resize = %d,%d, want 40,12", w, h)
	}
	r.Frame(s)
	pw, ph := r.Buffer().PxSize()
	if got := r.Buffer().GetPx(pw/2, ph/2); got == (catalog.RGB{}) {
		t.Errorf("center pixel after resize is black, want central body shading")
	}
}
