// Package catalog holds the static description of every body in the
// visualization. Entries are immutable; the scene composer and orbit
// integrator read them, nothing writes them after validation.
package catalog

import "fmt"

// RGB is an 8-bit color triplet
type RGB struct {
	R, G, B uint8
}

// Moon orbits its parent body rather than the origin.
// Exactly one nesting level is supported: moons cannot have moons.
type Moon struct {
	Name         string
	VisualRadius float64 // scene units
	Color        RGB
	OrbitRadius  float64 // scene units from the parent's center
	AngularSpeed float64 // revolutions-per-unit-time scale factor
}

// Body is one catalog entry. OrbitRadius is measured from the origin;
// the central body uses OrbitRadius 0 and ignores AngularSpeed.
type Body struct {
	Name         string
	VisualRadius float64
	Color        RGB
	TextureRef   string // image path, only consulted when HasTexture is set
	OrbitRadius  float64
	AngularSpeed float64
	HasRing      bool
	HasTexture   bool
	Moons        []Moon
}

// Catalog is the full body set: one central body plus its orbiting bodies.
type Catalog struct {
	Central Body
	Bodies  []Body
}

// Default returns the stylized solar-system catalog. Orbital speeds are
// visual pacing, not Keplerian periods.
func Default() Catalog {
	return Catalog{
		Central: Body{
			Name:         "sun",
			VisualRadius: 12,
			Color:        RGB{255, 196, 64},
		},
		Bodies: []Body{
			{Name: "mercury", VisualRadius: 1.6, Color: RGB{168, 150, 130}, OrbitRadius: 22, AngularSpeed: 4.7},
			{Name: "venus", VisualRadius: 2.4, Color: RGB{222, 184, 135}, OrbitRadius: 30, AngularSpeed: 3.5},
			{
				Name:         "earth",
				VisualRadius: 2.6,
				Color:        RGB{80, 140, 255},
				TextureRef:   "asset/earth.png",
				OrbitRadius:  38,
				AngularSpeed: 2.9,
				HasTexture:   true,
				Moons: []Moon{
					{Name: "moon", VisualRadius: 0.7, Color: RGB{190, 190, 190}, OrbitRadius: 5, AngularSpeed: 9.0},
				},
			},
			{Name: "mars", VisualRadius: 2.0, Color: RGB{210, 100, 60}, OrbitRadius: 45, AngularSpeed: 2.4},
			{Name: "jupiter", VisualRadius: 6.5, Color: RGB{216, 178, 140}, OrbitRadius: 62, AngularSpeed: 1.3},
			{Name: "saturn", VisualRadius: 5.6, Color: RGB{230, 208, 160}, OrbitRadius: 80, AngularSpeed: 1.0, HasRing: true},
			{Name: "uranus", VisualRadius: 4.0, Color: RGB{150, 220, 230}, OrbitRadius: 96, AngularSpeed: 0.7},
			{Name: "neptune", VisualRadius: 3.9, Color: RGB{90, 120, 240}, OrbitRadius: 110, AngularSpeed: 0.5},
		},
	}
}

// Validate fails fast on catalog entries that would corrupt the scene.
// Invalid data here is a programming error, not a runtime condition.
func (c Catalog) Validate() error {
	if c.Central.Name == "" {
		return fmt.Errorf("catalog: central body has no name")
	}
	if c.Central.VisualRadius <= 0 {
		return fmt.Errorf("catalog: central body %q: visual radius %v must be positive",
			c.Central.Name, c.Central.VisualRadius)
	}
	for _, b := range c.Bodies {
		if err := b.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (b Body) validate() error {
	if b.Name == "" {
		return fmt.Errorf("catalog: body has no name")
	}
	if b.VisualRadius <= 0 {
		return fmt.Errorf("catalog: body %q: visual radius %v must be positive", b.Name, b.VisualRadius)
	}
	if b.OrbitRadius <= 0 {
		return fmt.Errorf("catalog: body %q: orbit radius %v must be positive", b.Name, b.OrbitRadius)
	}
	if b.OrbitRadius <= b.VisualRadius {
		return fmt.Errorf("catalog: body %q: orbit radius %v must exceed visual radius %v",
			b.Name, b.OrbitRadius, b.VisualRadius)
	}
	if b.AngularSpeed <= 0 {
		return fmt.Errorf("catalog: body %q: angular speed %v must be positive", b.Name, b.AngularSpeed)
	}
	if b.HasTexture && b.TextureRef == "" {
		return fmt.Errorf("catalog: body %q: textured but no texture reference", b.Name)
	}
	for _, m := range b.Moons {
		if m.Name == "" {
			return fmt.Errorf("catalog: body %q: moon has no name", b.Name)
		}
		if m.VisualRadius <= 0 {
			return fmt.Errorf("catalog: moon %q: visual radius %v must be positive", m.Name, m.VisualRadius)
		}
		if m.OrbitRadius <= m.VisualRadius {
			return fmt.Errorf("catalog: moon %q: orbit radius %v must exceed visual radius %v",
				m.Name, m.OrbitRadius, m.VisualRadius)
		}
		if m.AngularSpeed <= 0 {
			return fmt.Errorf("catalog: moon %q: angular speed %v must be positive", m.Name, m.AngularSpeed)
		}
	}
	return nil
}
