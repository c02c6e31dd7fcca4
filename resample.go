package retroboy

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/32bitkid/retroboy/internal/parallel"
	"github.com/32bitkid/retroboy/transform"
)

type Sampling int

const (
	Nearest Sampling = iota
	Bilinear
)

func (s Sampling) String() string {
	if s == Bilinear {
		return "bilinear"
	}
	return "nearest"
}

func toRGBA(src image.Image) *image.RGBA {
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img
}

// resample draws src into a new bitmap of the transform's output size.
// Every destination pixel is first filled from the source pixel under its
// center, clamped to the frame; Bilinear then redraws with interpolation.
func resample(src *image.RGBA, t transform.Transform, s Sampling) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	parallel.For(t.Height, func(start, end int) {
		for y := start; y < end; y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < t.Width; x, di = x+1, di+4 {
				sx, sy := t.SourcePixel(x, y)
				si := src.PixOffset(b.Min.X+sx, b.Min.Y+sy)
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})

	if s == Bilinear {
		// the transform is relative to the frame origin
		m := t.Matrix
		s2d := f64.Aff3{
			m[0], m[1], m[2] - m[0]*float64(b.Min.X) - m[1]*float64(b.Min.Y),
			m[3], m[4], m[5] - m[3]*float64(b.Min.X) - m[4]*float64(b.Min.Y),
		}
		draw.BiLinear.Transform(dst, s2d, src, b, draw.Src, nil)
	}
	return dst
}
