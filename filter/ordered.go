package filter

import (
	"errors"
	"image"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/32bitkid/retroboy/internal/parallel"
	"github.com/32bitkid/retroboy/palette"
)

const (
	DefaultBayerSize = 4
	// DefaultSpread is the total perturbation range, one third of a channel:
	// the step between neighbouring entries of a four-level palette.
	DefaultSpread = 85
)

var ErrBayerSize = errors.New("filter: bayer size must be a power of two between 2 and 16")

// Ordered is a Bayer ordered ditherer. Each pixel is offset by a threshold
// taken from a tiled NxN matrix before nearest-palette matching, so pixels
// never depend on each other. A value not built by NewOrdered dithers with
// DefaultBayerSize and DefaultSpread.
type Ordered struct {
	Matcher palette.Matcher

	size, spread int
	offsets      []int
}

var _ Filter = Ordered{}

func NewOrdered(m palette.Matcher, size, spread int) (Ordered, error) {
	if len(m.Colors()) == 0 {
		panic(palette.ErrEmpty)
	}
	if size < 2 || size > 16 || size&(size-1) != 0 {
		return Ordered{}, ErrBayerSize
	}
	return Ordered{
		Matcher: m,
		size:    size,
		spread:  spread,
		offsets: bayerOffsets(size, spread),
	}, nil
}

// bayerOffsets ranks the cells of the Bayer matrix and spreads the ranks
// evenly over [-spread/2, spread/2). The library's mapper adds each cell's
// threshold to its input, so probing it at the midpoint recovers the order.
func bayerOffsets(size, spread int) []int {
	mapper := dither.Bayer(uint(size), uint(size), 1.0)
	n := size * size
	values := make([]uint16, 0, n)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v, _, _ := mapper(x, y, 0x8000, 0x8000, 0x8000)
			values = append(values, v)
		}
	}
	offsets := make([]int, n)
	for i, v := range values {
		rank := 0
		for j, o := range values {
			if o < v || (o == v && j < i) {
				rank++
			}
		}
		offsets[i] = ((2*rank+1)*spread)/(2*n) - spread/2
	}
	return offsets
}

// defaultOffsets backs Ordered values with no table of their own.
var defaultOffsets = bayerOffsets(DefaultBayerSize, DefaultSpread)

// Size is the side of the Bayer matrix.
func (f Ordered) Size() int {
	if f.offsets == nil {
		return DefaultBayerSize
	}
	return f.size
}

// Spread is the total range of the per-pixel offsets.
func (f Ordered) Spread() int {
	if f.offsets == nil {
		return DefaultSpread
	}
	return f.spread
}

func (f Ordered) table() ([]int, int) {
	if f.offsets == nil {
		return defaultOffsets, DefaultBayerSize
	}
	return f.offsets, f.size
}

func (Ordered) Kind() Kind { return KindOrderedDither }
func (Ordered) filter()    {}

func (f Ordered) Palette() palette.Palette { return f.Matcher.Colors() }

func (f Ordered) Apply(src *image.RGBA) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, f.Matcher.Colors().ColorPalette())
	offsets, n := f.table()
	w := b.Dx()
	parallel.For(b.Dy(), func(start, end int) {
		for y := start; y < end; y++ {
			row := offsets[(y%n)*n : (y%n+1)*n]
			si, di := src.PixOffset(b.Min.X, b.Min.Y+y), dst.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < w; x, si = x+1, si+4 {
				o := row[x%n]
				dst.Pix[di+x] = uint8(f.Matcher.Index(int(src.Pix[si])+o, int(src.Pix[si+1])+o, int(src.Pix[si+2])+o))
			}
		}
	})
	return dst
}
