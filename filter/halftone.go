package filter

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/32bitkid/retroboy/internal/parallel"
	"github.com/32bitkid/retroboy/palette"
)

const DefaultCellSize = 6

// Halftone renders each square cell as a round ink dot whose area is
// proportional to the cell's darkness. Cells cut off by the right or bottom
// edge are drawn as if whole and clipped. A CellSize <= 0 means
// DefaultCellSize; leaving both Ink and Paper unset prints black on white.
type Halftone struct {
	CellSize   int
	Ink, Paper color.RGBA
}

var _ Filter = Halftone{}

func NewHalftone(cellSize int) Halftone {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	mono := palette.Defaults.Monochrome
	return Halftone{CellSize: cellSize, Ink: mono[0], Paper: mono[1]}
}

func (Halftone) Kind() Kind { return KindHalftone }
func (Halftone) filter()    {}

// Palette is ink followed by paper.
func (f Halftone) Palette() palette.Palette {
	f = f.withDefaults()
	return palette.Palette{f.Ink, f.Paper}
}

func (f Halftone) withDefaults() Halftone {
	if f.CellSize <= 0 {
		f.CellSize = DefaultCellSize
	}
	if f.Ink == (color.RGBA{}) && f.Paper == (color.RGBA{}) {
		mono := palette.Defaults.Monochrome
		f.Ink, f.Paper = mono[0], mono[1]
	}
	return f
}

func (f Halftone) Apply(src *image.RGBA) *image.Paletted {
	f = f.withDefaults()
	b := src.Bounds()
	dst := image.NewPaletted(b, f.Palette().ColorPalette())
	cell := f.CellSize
	ranks := spotRanks(cell)
	rows := (b.Dy() + cell - 1) / cell
	cols := (b.Dx() + cell - 1) / cell
	parallel.For(rows, func(start, end int) {
		for cy := start; cy < end; cy++ {
			for cx := 0; cx < cols; cx++ {
				f.renderCell(src, dst, ranks, cx*cell, cy*cell)
			}
		}
	})
	return dst
}

// spotRanks orders the pixels of a cell by the distance of their centers
// from the cell center, nearest first. A dot covering k pixels inks the
// ones ranked below k, so it grows outward as a round spot.
func spotRanks(cell int) []int {
	n := cell * cell
	c := float64(cell) / 2
	dist := make([]float64, n)
	order := make([]int, n)
	for i := range order {
		fx, fy := float64(i%cell)+0.5-c, float64(i/cell)+0.5-c
		dist[i] = fx*fx + fy*fy
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })
	ranks := make([]int, n)
	for r, i := range order {
		ranks[i] = r
	}
	return ranks
}

// renderCell draws the cell whose top-left corner is (x0, y0), relative to
// the image bounds. The dot covers a share of the cell equal to the
// darkness of the pixels actually present.
func (f Halftone) renderCell(src *image.RGBA, dst *image.Paletted, ranks []int, x0, y0 int) {
	b := src.Bounds()
	cell := f.CellSize
	x1, y1 := x0+cell, y0+cell
	if x1 > b.Dx() {
		x1 = b.Dx()
	}
	if y1 > b.Dy() {
		y1 = b.Dy()
	}

	sum, n := 0, 0
	for y := y0; y < y1; y++ {
		si := src.PixOffset(b.Min.X+x0, b.Min.Y+y)
		for x := x0; x < x1; x, si = x+1, si+4 {
			sum += luma(src.Pix[si], src.Pix[si+1], src.Pix[si+2])
			n++
		}
	}

	darkness := 1 - float64(sum)/float64(n)/0xff
	inked := int(math.Round(darkness * float64(cell*cell)))
	for y := y0; y < y1; y++ {
		di := dst.PixOffset(b.Min.X+x0, b.Min.Y+y)
		row := ranks[(y-y0)*cell:]
		for x := x0; x < x1; x, di = x+1, di+1 {
			if row[x-x0] < inked {
				dst.Pix[di] = 0
			} else {
				dst.Pix[di] = 1
			}
		}
	}
}
