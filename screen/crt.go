package screen

import (
	"image"
	"image/color"

	"github.com/32bitkid/retroboy/internal/parallel"
)

const crtScale = 6

var (
	red   = color.RGBA{R: 0xFF, G: 0x99, B: 0x99, A: 0xff}
	green = color.RGBA{G: 0xFF, R: 0x99, B: 0x99, A: 0xff}
	blue  = color.RGBA{B: 0xFF, R: 0x99, G: 0x99, A: 0xff}
)

func rgbMul(a, b color.Color) color.RGBA {
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return color.RGBA{
		R: uint8((r1 * r2 / 0xffff) >> 8),
		G: uint8((g1 * g2 / 0xffff) >> 8),
		B: uint8((b1 * b2 / 0xffff) >> 8),
		A: 0xFF,
	}
}

func renderCRT(src image.Image) *image.RGBA {
	r := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx()*crtScale, r.Dy()*crtScale))
	parallel.For(r.Dy(), func(start, end int) {
		for sy, dy := r.Min.Y+start, start*crtScale; sy < r.Min.Y+end; sy, dy = sy+1, dy+crtScale {
			for sx, dx := r.Min.X, 0; sx < r.Max.X; sx, dx = sx+1, dx+crtScale {
				lc := src.At(clampInt(r.Min.X, r.Max.X-1, sx-1), sy)
				c := src.At(sx, sy)
				rc := src.At(clampInt(r.Min.X, r.Max.X-1, sx+1), sy)
				crtCell(dst, dx, dy, lc, c, rc)
			}
		}
	})
	return dst
}

// crtBleed says how much of a neighbour leaks into each sub-column: the
// left neighbour fades out across the first half, the right one fades in
// across the last third.
var crtBleed = [crtScale]struct {
	right bool
	t     float64
}{
	{false, 3.0 / 6.0},
	{false, 4.0 / 6.0},
	{false, 5.0 / 6.0},
	{},
	{true, 1.0 / 6.0},
	{true, 2.0 / 6.0},
}

// crtScanline is the lightness lost on each sub-row.
var crtScanline = [crtScale]float64{0.7, 0.2, 0, 0, 0.1, 0.4}

// crtMask is the phosphor triad under each sub-pixel; odd rows are offset.
var crtMask = [2][crtScale]color.RGBA{
	{red, red, green, green, blue, blue},
	{green, blue, blue, red, red, green},
}

// crtCell paints one magnified pixel c whose neighbours on the line are lc
// and rc.
func crtCell(dst *image.RGBA, dx, dy int, lc, c, rc color.Color) {
	var cols [crtScale]color.Color
	for ix, b := range crtBleed {
		switch {
		case b.t == 0:
			cols[ix] = c
		case b.right:
			cols[ix] = rgbMix(c, rc, b.t)
		default:
			cols[ix] = rgbMix(lc, c, b.t)
		}
	}

	for iy, dark := range crtScanline {
		mask := &crtMask[iy%2]
		for ix, co := range cols {
			if dark > 0 {
				co = darken(co, dark)
			}
			dst.SetRGBA(dx+ix, dy+iy, rgbMul(co, mask[ix]))
		}
	}
}
