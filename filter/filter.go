// Package filter implements the palette-reduction effects. Every filter
// takes a full-color bitmap and returns a freshly allocated paletted one
// whose palette is exactly the colors the filter can produce.
package filter

import (
	"fmt"
	"image"

	"github.com/32bitkid/retroboy/palette"
)

type Kind int

const (
	KindOrderedDither Kind = iota
	KindDirectPalette
	KindErrorDiffusion
	KindHalftone
)

var kindNames = [...]string{
	KindOrderedDither:  "ordered",
	KindDirectPalette:  "palette",
	KindErrorDiffusion: "diffusion",
	KindHalftone:       "halftone",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("filter: unknown kind %q", s)
}

// Filter is implemented only by Ordered, Direct, Diffusion and Halftone.
type Filter interface {
	Kind() Kind
	// Palette is the set of colors Apply can emit, in index order.
	Palette() palette.Palette
	Apply(src *image.RGBA) *image.Paletted

	filter()
}

// luma is the Rec. 601 luminance of an 8-bit color, in [0,255].
func luma(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}
