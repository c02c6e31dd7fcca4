package palette

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dist(c color.RGBA, r, g, b int) int {
	dr, dg, db := r-int(c.R), g-int(c.G), b-int(c.B)
	return dr*dr + dg*dg + db*db
}

func TestNearestIsClosestMember(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, p := range []Palette{Defaults.GameBoyCamera, Defaults.GameBoyScreen, Defaults.Commodore64, Defaults.Monochrome} {
		for i := 0; i < 500; i++ {
			r, g, b := rnd.Intn(256), rnd.Intn(256), rnd.Intn(256)
			idx := p.Index(r, g, b)
			require.True(t, idx >= 0 && idx < len(p))
			d := dist(p[idx], r, g, b)
			for j, m := range p {
				require.GreaterOrEqual(t, dist(m, r, g, b), d)
				if j < idx {
					// anything earlier must be strictly farther
					require.Greater(t, dist(m, r, g, b), d)
				}
			}
			require.True(t, p.Contains(p.Nearest(color.RGBA{uint8(r), uint8(g), uint8(b), 0xff})))
		}
	}
}

func TestIndexAcceptsOutOfRangeChannels(t *testing.T) {
	p := Defaults.GameBoyCamera
	assert.Equal(t, 0, p.Index(-40, -40, -40))
	assert.Equal(t, 3, p.Index(300, 300, 300))
}

func TestMidGrayPrefersWhite(t *testing.T) {
	got := Defaults.Monochrome.Nearest(color.RGBA{128, 128, 128, 0xff})
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, got)
}

func TestTieBreakByOrder(t *testing.T) {
	p := Palette{{10, 0, 0, 0xff}, {0, 10, 0, 0xff}}
	assert.Equal(t, 0, p.Index(5, 5, 0))
	p[0], p[1] = p[1], p[0]
	assert.Equal(t, 0, p.Index(5, 5, 0))
}

func TestParse(t *testing.T) {
	p, err := Parse("#0f380f", "#9bbc0f")
	require.NoError(t, err)
	assert.Equal(t, Palette{{0x0f, 0x38, 0x0f, 0xff}, {0x9b, 0xbc, 0x0f, 0xff}}, p)

	_, err = Parse("#0f380f", "green")
	assert.Error(t, err)

	_, err = Parse()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewDropsAlpha(t *testing.T) {
	p := New(color.Gray{Y: 0x80}, color.NRGBA{R: 0xff, A: 0xff})
	assert.Equal(t, Palette{{0x80, 0x80, 0x80, 0xff}, {0xff, 0, 0, 0xff}}, p)
	assert.Panics(t, func() { New() })
}

func TestColorPalette(t *testing.T) {
	cp := Defaults.GameBoyScreen.ColorPalette()
	require.Len(t, cp, 4)
	assert.Equal(t, 2, cp.Index(Defaults.GameBoyScreen[2]))
}

func TestDefaultSizes(t *testing.T) {
	assert.Len(t, Defaults.GameBoyCamera, 4)
	assert.Len(t, Defaults.GameBoyScreen, 4)
	assert.Len(t, Defaults.Commodore64, 16)
	assert.Len(t, Defaults.Monochrome, 2)
}

func TestLabMatcher(t *testing.T) {
	m := NewLabMatcher(Defaults.Commodore64)
	assert.Equal(t, Defaults.Commodore64, m.Colors())
	for i, c := range Defaults.Commodore64 {
		assert.Equalf(t, i, m.Index(int(c.R), int(c.G), int(c.B)), "member %d", i)
	}
	assert.Equal(t, 0, m.Index(-10, -10, -10))
	assert.Equal(t, 1, m.Index(400, 400, 400))
	assert.Panics(t, func() { NewLabMatcher(nil) })
}
