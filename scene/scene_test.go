package scene

import (
	"testing"

	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/starfield"
)

type recordingRegistrar struct {
	names []string
}

func (r *recordingRegistrar) Register(name string, dispose func()) {
	r.names = append(r.names, name)
}

func testStars(t *testing.T) *starfield.Field {
	t.Helper()
	f, err := starfield.Generate(50, 100, 200, 1)
	if err != nil {
		t.Fatalf("starfield: %v", err)
	}
	return f
}

func TestComposeBuildsHandleSet(t *testing.T) {
	cat := catalog.Default()
	reg := &recordingRegistrar{}

	s, err := Compose(cat, testStars(t), reg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if s.Central == nil || s.Central.Name != cat.Central.Name {
		t.Fatal("central body missing from handle set")
	}
	if len(s.Bodies) != len(cat.Bodies) {
		t.Fatalf("got %d body nodes, want %d", len(s.Bodies), len(cat.Bodies))
	}
	if len(s.Guides) != len(cat.Bodies) {
		t.Fatalf("got %d guide rings, want one per orbiting body (%d)", len(s.Guides), len(cat.Bodies))
	}
	if s.Camera == nil {
		t.Fatal("camera missing from handle set")
	}
	if s.Stars == nil {
		t.Fatal("star field missing from handle set")
	}

	for i, n := range s.Bodies {
		if n.Body.Name != cat.Bodies[i].Name {
			t.Errorf("node %d built from %q, want %q", i, n.Body.Name, cat.Bodies[i].Name)
		}
		if s.Guides[i].Radius != cat.Bodies[i].OrbitRadius {
			t.Errorf("guide %d at radius %v, want orbit radius %v",
				i, s.Guides[i].Radius, cat.Bodies[i].OrbitRadius)
		}
	}

	if len(reg.names) == 0 {
		t.Error("composer registered no resources for teardown")
	}
}

func TestRingOnlyOnFlaggedBody(t *testing.T) {
	cat := catalog.Default()
	s, err := Compose(cat, testStars(t), nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for i, n := range s.Bodies {
		hasRing := n.Ring != nil
		if hasRing != cat.Bodies[i].HasRing {
			t.Errorf("body %s: ring %v, catalog flag %v", n.Name, hasRing, cat.Bodies[i].HasRing)
		}
		if hasRing {
			if n.Ring.InnerRadius <= n.Radius {
				t.Errorf("body %s: ring inner radius %v should clear the body radius %v",
					n.Name, n.Ring.InnerRadius, n.Radius)
			}
			if n.Ring.OuterRadius <= n.Ring.InnerRadius {
				t.Errorf("body %s: ring outer %v must exceed inner %v",
					n.Name, n.Ring.OuterRadius, n.Ring.InnerRadius)
			}
		}
	}
}

func TestMoonsAttachedToParent(t *testing.T) {
	cat := catalog.Default()
	s, err := Compose(cat, testStars(t), nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	found := false
	for i, n := range s.Bodies {
		if len(n.Moons) != len(cat.Bodies[i].Moons) {
			t.Errorf("body %s: %d moon nodes, want %d", n.Name, len(n.Moons), len(cat.Bodies[i].Moons))
		}
		for _, m := range n.Moons {
			found = true
			if m.Moon == nil {
				t.Errorf("moon node %s missing its catalog entry", m.Name)
			}
			if len(m.Moons) != 0 {
				t.Errorf("moon %s has children; nesting is two levels only", m.Name)
			}
		}
	}
	if !found {
		t.Error("default catalog should produce at least one moon node")
	}
}

func TestTextureFallbackToEmissive(t *testing.T) {
	cat := catalog.Catalog{
		Central: catalog.Body{Name: "sun", VisualRadius: 10, Color: catalog.RGB{R: 255, G: 200}},
		Bodies: []catalog.Body{
			{
				Name:         "home",
				VisualRadius: 2,
				Color:        catalog.RGB{B: 255, G: 100},
				TextureRef:   "testdata/definitely-missing.png",
				OrbitRadius:  30,
				AngularSpeed: 1,
				HasTexture:   true,
			},
		},
	}

	s, err := Compose(cat, testStars(t), nil)
	if err != nil {
		t.Fatalf("missing texture must not fail the mount: %v", err)
	}

	mat := s.Bodies[0].Material
	if mat.Kind != MaterialEmissive {
		t.Errorf("material kind %v, want emissive fallback", mat.Kind)
	}
	if mat.Texture != nil {
		t.Error("fallback material should carry no texture")
	}
	if mat.Color != cat.Bodies[0].Color {
		t.Errorf("fallback color %v, want the body color %v", mat.Color, cat.Bodies[0].Color)
	}
}

func TestComposeFailsFastOnInvalidCatalog(t *testing.T) {
	cat := catalog.Catalog{
		Central: catalog.Body{Name: "sun", VisualRadius: 10},
		Bodies: []catalog.Body{
			{Name: "bad", VisualRadius: 2, OrbitRadius: -1, AngularSpeed: 1},
		},
	}
	if _, err := Compose(cat, testStars(t), nil); err == nil {
		t.Fatal("invalid catalog must fail construction")
	}

	valid := catalog.Default()
	if _, err := Compose(valid, nil, nil); err == nil {
		t.Fatal("nil star field must fail construction")
	}
}

func TestTextureSampleWraps(t *testing.T) {
	tex := &Texture{Width: 2, Height: 2, pixels: []catalog.RGB{
		{R: 10, G: 0, B: 0}, {R: 0, G: 20, B: 0},
		{R: 0, G: 0, B: 30}, {R: 40, G: 40, B: 40},
	}}

	if got := tex.Sample(0.1, 0.1); got != (catalog.RGB{R: 10}) {
		t.Errorf("top-left sample = %+v", got)
	}
	if got := tex.Sample(1.1, 0.1); got != (catalog.RGB{R: 10}) {
		t.Errorf("wrapped u sample = %+v", got)
	}
	if got := tex.Sample(-0.4, 0.6); got != (catalog.RGB{R: 40, G: 40, B: 40}) {
		t.Errorf("negative u sample = %+v", got)
	}

	tex.release()
	if got := tex.Sample(0.1, 0.1); got != (catalog.RGB{}) {
		t.Errorf("released texture should sample zero, got %+v", got)
	}
}
