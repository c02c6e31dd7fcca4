package filter

import (
	"image"

	"github.com/32bitkid/retroboy/internal/parallel"
	"github.com/32bitkid/retroboy/palette"
)

// Direct maps every pixel to its nearest palette member, with no dithering.
type Direct struct {
	Matcher palette.Matcher
}

var _ Filter = Direct{}

func NewDirect(m palette.Matcher) Direct {
	if len(m.Colors()) == 0 {
		panic(palette.ErrEmpty)
	}
	return Direct{Matcher: m}
}

func (Direct) Kind() Kind { return KindDirectPalette }
func (Direct) filter()    {}

func (f Direct) Palette() palette.Palette { return f.Matcher.Colors() }

func (f Direct) Apply(src *image.RGBA) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, f.Matcher.Colors().ColorPalette())
	w := b.Dx()
	parallel.For(b.Dy(), func(start, end int) {
		for y := b.Min.Y + start; y < b.Min.Y+end; y++ {
			si, di := src.PixOffset(b.Min.X, y), dst.PixOffset(b.Min.X, y)
			for x := 0; x < w; x, si = x+1, si+4 {
				dst.Pix[di+x] = uint8(f.Matcher.Index(int(src.Pix[si]), int(src.Pix[si+1]), int(src.Pix[si+2])))
			}
		}
	})
	return dst
}
