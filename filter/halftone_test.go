package filter

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/32bitkid/retroboy/palette"
)

func TestHalftoneWhiteIsEmpty(t *testing.T) {
	out := NewHalftone(6).Apply(gray(12, 12, 0xff))
	assert.Equal(t, 144, countIndex(out, 1))
}

func TestHalftoneBlackIsFilled(t *testing.T) {
	out := NewHalftone(6).Apply(gray(12, 12, 0))
	assert.Equal(t, 144, countIndex(out, 0))
}

func TestHalftoneCoverageFollowsDarkness(t *testing.T) {
	// 128 is just under half dark: 18 of the 36 pixels in a 6x6 cell
	out := NewHalftone(6).Apply(gray(6, 6, 128))
	assert.Equal(t, 18, countIndex(out, 0))

	out = NewHalftone(4).Apply(gray(4, 4, 191))
	assert.Equal(t, 4, countIndex(out, 0))
}

func TestHalftoneDotGrowsFromCenter(t *testing.T) {
	out := NewHalftone(4).Apply(gray(4, 4, 191))
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		assert.Equalf(t, uint8(0), out.ColorIndexAt(p[0], p[1]), "(%d,%d)", p[0], p[1])
	}
}

func TestHalftoneClipsEdgeCells(t *testing.T) {
	out := NewHalftone(6).Apply(gray(7, 8, 0))
	assert.Equal(t, 56, countIndex(out, 0))

	out = NewHalftone(6).Apply(gray(7, 8, 0xff))
	assert.Equal(t, 56, countIndex(out, 1))
}

func TestHalftoneIsDeterministic(t *testing.T) {
	src := noise(45, 38, 8)
	f := NewHalftone(5)
	assert.Equal(t, f.Apply(src).Pix, f.Apply(src).Pix)
}

func TestHalftoneCustomInk(t *testing.T) {
	f := NewHalftone(2)
	f.Ink = color.RGBA{0x30, 0x20, 0x10, 0xff}
	f.Paper = color.RGBA{0xf0, 0xe8, 0xd0, 0xff}
	out := f.Apply(gray(2, 2, 0))
	assert.Equal(t, color.Color(f.Ink), out.At(0, 0))
}

func TestSpotRanks(t *testing.T) {
	ranks := spotRanks(4)
	seen := make([]bool, 16)
	for _, r := range ranks {
		seen[r] = true
	}
	for r, ok := range seen {
		assert.Truef(t, ok, "rank %d missing", r)
	}
	// corners come last
	for _, i := range []int{0, 3, 12, 15} {
		assert.GreaterOrEqual(t, ranks[i], 12)
	}
}

func TestHalftoneZeroValueUsesDefaults(t *testing.T) {
	src := noise(20, 14, 9)
	want := NewHalftone(DefaultCellSize).Apply(src)

	got := Halftone{}.Apply(src)
	assert.Equal(t, want.Pix, got.Pix)
	assert.Equal(t, want.Palette, got.Palette)
	assert.Equal(t, palette.Defaults.Monochrome, Halftone{}.Palette())

	got = Halftone{CellSize: -2, Ink: color.RGBA{0x10, 0, 0, 0xff}}.Apply(src)
	assert.Equal(t, want.Pix, got.Pix)
}
