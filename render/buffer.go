package render

import (
	"github.com/solterm/orrery/catalog"
	"github.com/solterm/orrery/terminal"
)

// Buffer is the frame compositor. It holds a pixel grid plus a glyph
// overlay at cell resolution. Density is vertical pixels per cell: 1 maps
// each pixel to a solid cell, 2 packs two pixels into one half-block cell.
type Buffer struct {
	width   int // cells
	height  int // cells
	density int

	px      []catalog.RGB // width * height*density
	glyphs  []rune        // width * height
	glyphFg []catalog.RGB
}

// NewBuffer creates a buffer with the given cell dimensions and density.
func NewBuffer(width, height, density int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height, density)
	return b
}

// Resize adjusts dimensions, reallocating only when capacity is
// insufficient.
func (b *Buffer) Resize(width, height, density int) {
	if density < 1 {
		density = 1
	}
	pxSize := width * height * density
	cellSize := width * height
	if cap(b.px) < pxSize {
		b.px = make([]catalog.RGB, pxSize)
	} else {
		b.px = b.px[:pxSize]
	}
	if cap(b.glyphs) < cellSize {
		b.glyphs = make([]rune, cellSize)
		b.glyphFg = make([]catalog.RGB, cellSize)
	} else {
		b.glyphs = b.glyphs[:cellSize]
		b.glyphFg = b.glyphFg[:cellSize]
	}
	b.width = width
	b.height = height
	b.density = density
	b.Clear()
}

// Clear resets pixels and glyphs using exponential copy.
func (b *Buffer) Clear() {
	if len(b.px) > 0 {
		b.px[0] = catalog.RGB{}
		for filled := 1; filled < len(b.px); filled *= 2 {
			copy(b.px[filled:], b.px[:filled])
		}
	}
	if len(b.glyphs) > 0 {
		b.glyphs[0] = 0
		b.glyphFg[0] = catalog.RGB{}
		for filled := 1; filled < len(b.glyphs); filled *= 2 {
			copy(b.glyphs[filled:], b.glyphs[:filled])
			copy(b.glyphFg[filled:], b.glyphFg[:filled])
		}
	}
}

// Size returns cell dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Density returns vertical pixels per cell.
func (b *Buffer) Density() int {
	return b.density
}

// PxSize returns pixel-grid dimensions.
func (b *Buffer) PxSize() (width, height int) {
	return b.width, b.height * b.density
}

func (b *Buffer) pxInBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height*b.density
}

// SetPx writes one pixel, replacing the previous value.
func (b *Buffer) SetPx(x, y int, c catalog.RGB) {
	if !b.pxInBounds(x, y) {
		return
	}
	b.px[y*b.width+x] = c
}

// AddPx composites one pixel additively, saturating per channel. Used for
// glow layers so overlapping stars and rings brighten instead of replace.
func (b *Buffer) AddPx(x, y int, c catalog.RGB) {
	if !b.pxInBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.px[idx]
	dst.R = satAdd(dst.R, c.R)
	dst.G = satAdd(dst.G, c.G)
	dst.B = satAdd(dst.B, c.B)
}

// GetPx reads one pixel, zero outside bounds.
func (b *Buffer) GetPx(x, y int) catalog.RGB {
	if !b.pxInBounds(x, y) {
		return catalog.RGB{}
	}
	return b.px[y*b.width+x]
}

// Glyph writes a text cell to the overlay. Overlay cells beat pixels at
// flush time.
func (b *Buffer) Glyph(x, y int, r rune, fg catalog.RGB) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	b.glyphs[idx] = r
	b.glyphFg[idx] = fg
}

// WriteString writes a run of glyph cells starting at x,y.
func (b *Buffer) WriteString(x, y int, s string, fg catalog.RGB) {
	for _, r := range s {
		b.Glyph(x, y, r, fg)
		x++
	}
}

// GlyphAt reads one overlay cell, zero outside bounds.
func (b *Buffer) GlyphAt(x, y int) (rune, catalog.RGB) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, catalog.RGB{}
	}
	idx := y*b.width + x
	return b.glyphs[idx], b.glyphFg[idx]
}

// Flush presents the buffer to the surface. Density 2 packs pixel pairs
// into upper-half-block cells: foreground carries the top pixel,
// background the bottom.
func (b *Buffer) Flush(s *terminal.Surface) {
	for cy := 0; cy < b.height; cy++ {
		for cx := 0; cx < b.width; cx++ {
			idx := cy*b.width + cx
			if b.glyphs[idx] != 0 {
				s.SetCell(cx, cy, b.glyphs[idx], b.glyphFg[idx], catalog.RGB{})
				continue
			}
			if b.density == 2 {
				top := b.px[(cy*2)*b.width+cx]
				bottom := b.px[(cy*2+1)*b.width+cx]
				s.SetCell(cx, cy, '▀', top, bottom)
			} else {
				s.SetCell(cx, cy, ' ', catalog.RGB{}, b.px[idx])
			}
		}
	}
	s.Show()
}

func satAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Scale multiplies a color by t in [0,1].
func Scale(c catalog.RGB, t float64) catalog.RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return catalog.RGB{
		R: uint8(float64(c.R) * t),
		G: uint8(float64(c.G) * t),
		B: uint8(float64(c.B) * t),
	}
}

// Lerp interpolates between colors a and b.
func Lerp(a, b catalog.RGB, t float64) catalog.RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return catalog.RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}
