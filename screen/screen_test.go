package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestStyleNames(t *testing.T) {
	for _, s := range []Style{CRT, LCD} {
		parsed, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseStyle("plasma")
	assert.Error(t, err)
}

func TestRenderSize(t *testing.T) {
	src := image.NewPaletted(image.Rect(3, 4, 8, 7), color.Palette{color.Black, color.White})
	assert.Equal(t, image.Rect(0, 0, 30, 18), Render(src, CRT).Bounds())
	assert.Equal(t, image.Rect(0, 0, 20, 12), Render(src, LCD).Bounds())
}

func TestCRTBlackStaysBlack(t *testing.T) {
	dst := Render(solid(3, 2, color.Black), CRT)
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 || dst.Pix[i+1] != 0 || dst.Pix[i+2] != 0 {
			t.Fatalf("pixel %d: expected black, got %v", i/4, dst.Pix[i:i+4])
		}
	}
}

func TestCRTShadowMask(t *testing.T) {
	dst := Render(solid(2, 2, color.White), CRT)
	assert.Equal(t, color.RGBA{0x99, 0xff, 0x99, 0xff}, dst.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{0xff, 0x99, 0x99, 0xff}, dst.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{0x99, 0xff, 0x99, 0xff}, dst.RGBAAt(6+2, 6+2))
}

func TestCRTScanlinesDarken(t *testing.T) {
	dst := Render(solid(1, 1, color.White), CRT)
	top, mid := dst.RGBAAt(2, 0), dst.RGBAAt(2, 2)
	assert.Less(t, top.G, mid.G)
}

func TestLCDGrid(t *testing.T) {
	dst := Render(solid(2, 2, color.Black), LCD)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.RGBAAt(2, 2))
	assert.Greater(t, dst.RGBAAt(3, 0).R, uint8(0))
	assert.Greater(t, dst.RGBAAt(0, 3).R, uint8(0))
	assert.Equal(t, dst.RGBAAt(3, 0), dst.RGBAAt(7, 5))
}

func TestLCDKeepsColors(t *testing.T) {
	c := color.RGBA{0x30, 0x62, 0x30, 0xff}
	dst := Render(solid(1, 1, c), LCD)
	assert.Equal(t, c, dst.RGBAAt(1, 1))
}

func TestCRTMaskPattern(t *testing.T) {
	dst := Render(solid(1, 1, color.White), CRT)
	// the middle sub-rows carry no scan-line shading
	for _, iy := range []int{2, 3} {
		for ix := 0; ix < crtScale; ix++ {
			assert.Equalf(t, crtMask[iy%2][ix], dst.RGBAAt(ix, iy), "(%d,%d)", ix, iy)
		}
	}
}

func TestCRTBleedsFromNeighbours(t *testing.T) {
	src := solid(2, 1, color.White)
	src.Set(1, 0, color.Black)
	dst := Render(src, CRT)

	// the black pixel's left edge picks up its white neighbour
	assert.Greater(t, dst.RGBAAt(crtScale+0, 2).R, uint8(0))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.RGBAAt(crtScale+3, 2))
	// the white pixel's right edge dims toward black
	assert.LessOrEqual(t, dst.RGBAAt(5, 2).B, dst.RGBAAt(4, 2).B)
	assert.Less(t, dst.RGBAAt(4, 2).B, uint8(0xff))
}
