package filter

import (
	"fmt"
	"image"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/32bitkid/retroboy/palette"
)

// Offset is a diffusion target relative to the pixel being quantized.
type Offset struct{ DX, DY int }

// AtkinsonOffsets are the forward neighbours that each receive
// 1/AtkinsonDivisor of a pixel's quantization error: (+1,0) (+2,0) (-1,+1)
// (0,+1) (+1,+1) (0,+2). The remaining quarter is discarded.
var AtkinsonOffsets, AtkinsonDivisor = diffusionTable(dither.Atkinson)

const DefaultThreshold = 128

// diffusionTable reads an error diffusion matrix whose non-zero weights are
// all 1/d. The pixel being quantized sits just left of the first weight on
// the top row.
func diffusionTable(m dither.ErrorDiffusionMatrix) ([]Offset, int) {
	cur := -1
	for x, v := range m[0] {
		if v != 0 {
			cur = x - 1
			break
		}
	}
	if cur < 0 {
		panic("filter: diffusion matrix has no weight right of the current pixel")
	}

	var offsets []Offset
	var weight float32
	for dy, row := range m {
		for x, v := range row {
			if v == 0 {
				continue
			}
			if weight != 0 && v != weight {
				panic(fmt.Sprintf("filter: diffusion matrix weights differ: %v and %v", weight, v))
			}
			weight = v
			offsets = append(offsets, Offset{x - cur, dy})
		}
	}
	return offsets, int(math.Round(1 / float64(weight)))
}

// Diffusion is an Atkinson error-diffusion ditherer. Without a Matcher it
// works on luminance and emits black and white; with one it diffuses the
// per-channel error against that palette. A Threshold <= 0 means
// DefaultThreshold. Pixels are visited in raster order and each depends on
// its predecessors, so a frame is never split across goroutines.
type Diffusion struct {
	Matcher   palette.Matcher
	Threshold int
}

var _ Filter = Diffusion{}

func NewAtkinson() Diffusion {
	return Diffusion{Threshold: DefaultThreshold}
}

func NewAtkinsonPalette(m palette.Matcher) Diffusion {
	if len(m.Colors()) == 0 {
		panic(palette.ErrEmpty)
	}
	return Diffusion{Matcher: m, Threshold: DefaultThreshold}
}

func (Diffusion) Kind() Kind { return KindErrorDiffusion }
func (Diffusion) filter()    {}

func (f Diffusion) Palette() palette.Palette {
	if f.Matcher == nil {
		return palette.Defaults.Monochrome
	}
	return f.Matcher.Colors()
}

func (f Diffusion) Apply(src *image.RGBA) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, f.Palette().ColorPalette())
	if f.Matcher == nil {
		f.diffuseLuma(src, dst, make([]int, b.Dx()*b.Dy()))
	} else {
		f.diffusePalette(src, dst, make([]int, 3*b.Dx()*b.Dy()))
	}
	return dst
}

// diffuseLuma quantizes src into dst using errs as the accumulated incoming
// error of every pixel.
func (f Diffusion) diffuseLuma(src *image.RGBA, dst *image.Paletted, errs []int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(errs) != w*h || dst.Bounds().Size() != b.Size() {
		panic("filter: error buffer does not match image size")
	}
	threshold := f.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	for y := 0; y < h; y++ {
		si, di := src.PixOffset(b.Min.X, b.Min.Y+y), dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x, si = x+1, si+4 {
			v := luma(src.Pix[si], src.Pix[si+1], src.Pix[si+2]) + errs[y*w+x]
			q, idx := 0, uint8(0)
			if v >= threshold {
				q, idx = 0xff, 1
			}
			dst.Pix[di+x] = idx

			e := (v - q) / AtkinsonDivisor
			if e == 0 {
				continue
			}
			for _, o := range AtkinsonOffsets {
				tx, ty := x+o.DX, y+o.DY
				if tx < 0 || tx >= w || ty >= h {
					continue
				}
				errs[ty*w+tx] += e
			}
		}
	}
}

func (f Diffusion) diffusePalette(src *image.RGBA, dst *image.Paletted, errs []int) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(errs) != 3*w*h || dst.Bounds().Size() != b.Size() {
		panic("filter: error buffer does not match image size")
	}
	pal := f.Matcher.Colors()
	for y := 0; y < h; y++ {
		si, di := src.PixOffset(b.Min.X, b.Min.Y+y), dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x, si = x+1, si+4 {
			ei := 3 * (y*w + x)
			vr := int(src.Pix[si]) + errs[ei]
			vg := int(src.Pix[si+1]) + errs[ei+1]
			vb := int(src.Pix[si+2]) + errs[ei+2]
			idx := f.Matcher.Index(vr, vg, vb)
			dst.Pix[di+x] = uint8(idx)

			q := pal[idx]
			er := (vr - int(q.R)) / AtkinsonDivisor
			eg := (vg - int(q.G)) / AtkinsonDivisor
			eb := (vb - int(q.B)) / AtkinsonDivisor
			for _, o := range AtkinsonOffsets {
				tx, ty := x+o.DX, y+o.DY
				if tx < 0 || tx >= w || ty >= h {
					continue
				}
				ti := 3 * (ty*w + tx)
				errs[ti] += er
				errs[ti+1] += eg
				errs[ti+2] += eb
			}
		}
	}
}
