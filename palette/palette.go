// Package palette holds the small fixed color sets the filters quantize
// against, and the nearest-color matching over them.
package palette

import (
	"errors"
	"fmt"
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

var ErrEmpty = errors.New("palette: empty palette")

// Palette is an ordered set of opaque reference colors. Order only matters
// for tie-breaking: when two members are equally near, the first one wins.
type Palette []color.RGBA

// Matcher finds the member of a palette nearest to a color. Channel values
// may fall outside [0,255] when a ditherer has perturbed them.
type Matcher interface {
	Index(r, g, b int) int
	Colors() Palette
}

var _ Matcher = Palette{}

// New builds a palette from arbitrary colors. Alpha is dropped. It panics
// when no colors are given.
func New(colors ...color.Color) Palette {
	if len(colors) == 0 {
		panic(ErrEmpty)
	}
	p := make(Palette, len(colors))
	for i, c := range colors {
		r, g, b, _ := c.RGBA()
		p[i] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
	}
	return p
}

// Parse builds a palette from "#rrggbb" codes.
func Parse(codes ...string) (Palette, error) {
	if len(codes) == 0 {
		return nil, ErrEmpty
	}
	p := make(Palette, len(codes))
	for i, code := range codes {
		c, err := clr.Hex(code)
		if err != nil {
			return nil, fmt.Errorf("palette: entry %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return p, nil
}

func mustParse(codes ...string) Palette {
	p, err := Parse(codes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Index returns the position of the member with the smallest sum of squared
// channel differences.
func (p Palette) Index(r, g, b int) int {
	best, bestDist := 0, -1
	for i, c := range p {
		dr, dg, db := r-int(c.R), g-int(c.G), b-int(c.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (p Palette) Nearest(c color.RGBA) color.RGBA {
	return p[p.Index(int(c.R), int(c.G), int(c.B))]
}

func (p Palette) Colors() Palette { return p }

// ColorPalette converts p for use with image.Paletted.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

func (p Palette) Contains(c color.RGBA) bool {
	c.A = 0xff
	for _, m := range p {
		if m == c {
			return true
		}
	}
	return false
}
