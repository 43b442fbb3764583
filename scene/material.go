package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/solterm/orrery/catalog"
)

// MaterialKind selects how a body surface is shaded.
type MaterialKind int

const (
	// MaterialEmissive is the default: flat body color with rim shading.
	MaterialEmissive MaterialKind = iota
	// MaterialTextured samples an image by surface coordinate.
	MaterialTextured
)

// Material describes a body surface. Texture is non-nil only for
// MaterialTextured.
type Material struct {
	Kind    MaterialKind
	Color   catalog.RGB
	Texture *Texture
}

// Texture is a decoded image held as a flat RGB pixel grid.
type Texture struct {
	Width, Height int
	pixels        []catalog.RGB
}

// LoadTexture decodes an image file into a sampler. PNG and JPEG are
// registered.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene: decode texture %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("scene: texture %s is empty", path)
	}

	px := make([]catalog.RGB, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			px[y*w+x] = catalog.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}

	return &Texture{Width: w, Height: h, pixels: px}, nil
}

// Sample returns the texel at normalized coordinates u,v in [0,1].
// Coordinates outside the range wrap.
func (t *Texture) Sample(u, v float64) catalog.RGB {
	if t.pixels == nil {
		return catalog.RGB{}
	}
	u -= float64(int(u))
	if u < 0 {
		u++
	}
	v -= float64(int(v))
	if v < 0 {
		v++
	}
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.pixels[y*t.Width+x]
}

// release drops the pixel buffer. Called by the lifecycle manager during
// teardown.
func (t *Texture) release() {
	t.pixels = nil
}
