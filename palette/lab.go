package palette

import (
	clr "github.com/lucasb-eyer/go-colorful"
)

// LabMatcher matches by euclidean distance in CIE L*a*b*. Ties go to the
// earlier member, as with Palette.
type LabMatcher struct {
	p   Palette
	lab []clr.Color
}

var _ Matcher = (*LabMatcher)(nil)

func NewLabMatcher(p Palette) *LabMatcher {
	if len(p) == 0 {
		panic(ErrEmpty)
	}
	m := &LabMatcher{p: p, lab: make([]clr.Color, len(p))}
	for i, c := range p {
		m.lab[i], _ = clr.MakeColor(c)
	}
	return m
}

func (m *LabMatcher) Colors() Palette { return m.p }

func (m *LabMatcher) Index(r, g, b int) int {
	c := clr.Color{
		R: float64(clamp8(r)) / 255,
		G: float64(clamp8(g)) / 255,
		B: float64(clamp8(b)) / 255,
	}
	best, bestDist := 0, -1.0
	for i, ref := range m.lab {
		d := c.DistanceLab(ref)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return v
}
