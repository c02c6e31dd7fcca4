package screen

import (
	"image"
	"image/color"

	"github.com/32bitkid/retroboy/internal/parallel"
)

const (
	lcdScale = 4
	// lightness added to the grid lines between cells
	lcdGrid = 0.08
)

func renderLCD(src image.Image) *image.RGBA {
	r := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx()*lcdScale, r.Dy()*lcdScale))
	parallel.For(r.Dy(), func(start, end int) {
		cache := map[color.RGBA]color.RGBA{}
		for sy, dy := r.Min.Y+start, start*lcdScale; sy < r.Min.Y+end; sy, dy = sy+1, dy+lcdScale {
			for sx, dx := r.Min.X, 0; sx < r.Max.X; sx, dx = sx+1, dx+lcdScale {
				c := color.RGBAModel.Convert(src.At(sx, sy)).(color.RGBA)
				c.A = 0xff
				grid, ok := cache[c]
				if !ok {
					grid = toRGBA(lighten(c, lcdGrid))
					cache[c] = grid
				}
				for iy := 0; iy < lcdScale; iy++ {
					for ix := 0; ix < lcdScale; ix++ {
						if ix == lcdScale-1 || iy == lcdScale-1 {
							dst.SetRGBA(dx+ix, dy+iy, grid)
						} else {
							dst.SetRGBA(dx+ix, dy+iy, c)
						}
					}
				}
			}
		}
	})
	return dst
}
