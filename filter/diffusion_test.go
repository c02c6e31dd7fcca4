package filter

import (
	"image"
	"testing"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/retroboy/palette"
)

func TestAtkinsonTable(t *testing.T) {
	assert.Equal(t, 8, AtkinsonDivisor)
	assert.ElementsMatch(t, []Offset{
		{1, 0}, {2, 0},
		{-1, 1}, {0, 1}, {1, 1},
		{0, 2},
	}, AtkinsonOffsets)
}

func TestDiffusionTableRejectsUnevenWeights(t *testing.T) {
	assert.Panics(t, func() { diffusionTable(dither.FloydSteinberg) })
	assert.Panics(t, func() { diffusionTable(dither.ErrorDiffusionMatrix{{1, 0}}) })
}

func TestDiffusionZeroThresholdUsesDefault(t *testing.T) {
	src := noise(40, 30, 3)
	assert.Equal(t, NewAtkinson().Apply(src).Pix, Diffusion{}.Apply(src).Pix)
	assert.Equal(t, NewAtkinson().Apply(src).Pix, Diffusion{Threshold: -5}.Apply(src).Pix)
}

type densityTestCase struct {
	level     uint8
	white     float64
	tolerance float64
}

func runDensityTest(t *testing.T, cases []densityTestCase) {
	f := NewAtkinson()
	for _, c := range cases {
		out := f.Apply(gray(64, 64, c.level))
		density := float64(countIndex(out, 1)) / float64(len(out.Pix))
		assert.InDeltaf(t, c.white, density, c.tolerance, "level %d", c.level)
	}
}

func TestAtkinsonDensityFollowsGray(t *testing.T) {
	runDensityTest(t, []densityTestCase{
		{0, 0, 0},
		{96, 96.0 / 255, 0.06},
		{128, 128.0 / 255, 0.02},
		{160, 160.0 / 255, 0.06},
		{255, 1, 0},
	})
}

func TestAtkinsonDensityIsMonotonic(t *testing.T) {
	f := NewAtkinson()
	last := -1
	for level := 0; level < 256; level += 16 {
		n := countIndex(f.Apply(gray(32, 32, uint8(level))), 1)
		assert.GreaterOrEqualf(t, n, last, "level %d", level)
		last = n
	}
}

func TestAtkinsonErrorStaysBounded(t *testing.T) {
	src := noise(64, 48, 6)
	dst := image.NewPaletted(src.Bounds(), palette.Defaults.Monochrome.ColorPalette())
	errs := make([]int, 64*48)
	NewAtkinson().diffuseLuma(src, dst, errs)
	for i, e := range errs {
		require.LessOrEqualf(t, e, 255, "cell %d", i)
		require.GreaterOrEqualf(t, e, -255, "cell %d", i)
	}
}

func TestAtkinsonDropsErrorPastEdges(t *testing.T) {
	// A single bright pixel on the last row and column has nowhere to send
	// its error, and a 1x1 image must still come out in one piece.
	out := NewAtkinson().Apply(gray(1, 1, 100))
	assert.Equal(t, []uint8{0}, out.Pix)

	out = NewAtkinson().Apply(gray(2, 1, 100))
	assert.Equal(t, []uint8{0, 0}, out.Pix)
}

func TestAtkinsonFirstRow(t *testing.T) {
	// 100 -> black, passes 12 on; 112 -> black, passes 14 on; the third
	// pixel sees 100+12+14 = 126 and stays black, the fourth sees
	// 100+15+14 = 129 and turns white.
	out := NewAtkinson().Apply(gray(4, 1, 100))
	assert.Equal(t, []uint8{0, 0, 0, 1}, out.Pix)
}

func TestAtkinsonBufferMismatchPanics(t *testing.T) {
	src := gray(4, 4, 10)
	dst := image.NewPaletted(src.Bounds(), palette.Defaults.Monochrome.ColorPalette())
	assert.Panics(t, func() { NewAtkinson().diffuseLuma(src, dst, make([]int, 15)) })

	f := NewAtkinsonPalette(palette.Defaults.GameBoyCamera)
	assert.Panics(t, func() { f.diffusePalette(src, dst, make([]int, 16)) })
}

func TestAtkinsonPaletteIsDeterministic(t *testing.T) {
	f := NewAtkinsonPalette(palette.NewLabMatcher(palette.Defaults.Commodore64))
	src := noise(31, 29, 7)
	assert.Equal(t, f.Apply(src).Pix, f.Apply(src).Pix)
	assert.Equal(t, palette.Defaults.Commodore64, f.Palette())
}
