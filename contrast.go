package retroboy

import (
	"image"
)

// contrastTable scales every level away from (or toward) the midpoint 128 by
// (100+contrast)/100.
func contrastTable(contrast int) *[256]uint8 {
	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(clamp((v-128)*(100+contrast)/100+128, 0, 0xff))
	}
	return &lut
}

// applyContrast runs every color channel through lut in place and makes the
// image opaque.
func applyContrast(img *image.RGBA, lut *[256]uint8) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x, i = x+1, i+4 {
			img.Pix[i] = lut[img.Pix[i]]
			img.Pix[i+1] = lut[img.Pix[i+1]]
			img.Pix[i+2] = lut[img.Pix[i+2]]
			img.Pix[i+3] = 0xff
		}
	}
}

func clamp(i, min, max int) int {
	if i < min {
		return min
	}
	if i > max {
		return max
	}
	return i
}
