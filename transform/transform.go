// Package transform computes the affine mapping from a captured camera
// frame onto the output bitmap: quarter-turn rotation, mirroring, and a
// scale that covers (or fits) a target box with the overflow center-cropped.
package transform

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

var ErrInvalidGeometry = errors.New("transform: invalid geometry")

type Facing int

const (
	FacingBack Facing = iota
	FacingFront
)

func (f Facing) String() string {
	if f == FacingFront {
		return "front"
	}
	return "back"
}

type Flags uint

const (
	// FlagFit scales the input to fit inside the box instead of covering
	// it. Nothing is cropped and the output shrinks to the scaled input.
	FlagFit Flags = 1 << iota
)

// Resolution is a target output size, independent of the selected filter.
type Resolution struct {
	Width, Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Geometry describes how a frame was captured.
type Geometry struct {
	Width, Height     int
	Facing            Facing
	SensorOrientation int // degrees the sensor image must turn clockwise to be upright
	DisplayRotation   int // 0, 90, 180 or 270
}

// Transform maps continuous source coordinates, where the center of pixel i
// sits at i+0.5, to continuous destination coordinates.
type Transform struct {
	Rotation int
	Mirror   bool

	ScaleX, ScaleY float64
	// CropX and CropY are the offsets, in scaled source space, of the
	// window kept by the crop.
	CropX, CropY float64

	// InputWidth and InputHeight are the source frame dimensions.
	InputWidth, InputHeight int
	// Width and Height are the final output dimensions, after rotation.
	Width, Height int

	Matrix  f64.Aff3
	inverse f64.Aff3
}

// EffectiveRotation combines sensor mounting and display rotation. Front
// cameras rotate the other way and come out mirrored, matching the preview.
func EffectiveRotation(facing Facing, sensorOrientation, displayRotation int) (rotate int, mirror bool) {
	if facing == FacingFront {
		return normalize(sensorOrientation + displayRotation), true
	}
	return normalize(sensorOrientation - displayRotation + 360), false
}

// QuantizeRotation snaps a rotation reading to the nearest quarter turn.
func QuantizeRotation(degrees int) int {
	return normalize((normalize(degrees) + 45) / 90 * 90)
}

func normalize(degrees int) int {
	return (degrees%360 + 360) % 360
}

// ComputeForResolution picks the output box from r so that its orientation
// matches the input frame: a portrait input gets r with width and height
// swapped.
func ComputeForResolution(g Geometry, r Resolution) (Transform, error) {
	w, h := r.Width, r.Height
	if g.Width < g.Height {
		w, h = h, w
	}
	return Compute(g, w, h, 0)
}

// Compute builds the transform for a frame described by g onto an output
// box of outputWidth x outputHeight, given in the input's orientation.
func Compute(g Geometry, outputWidth, outputHeight int, flags Flags) (Transform, error) {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return Transform{}, fmt.Errorf("%w: input %dx%d", ErrInvalidGeometry, g.Width, g.Height)
	case outputWidth <= 0 || outputHeight <= 0:
		return Transform{}, fmt.Errorf("%w: output %dx%d", ErrInvalidGeometry, outputWidth, outputHeight)
	case g.SensorOrientation%90 != 0:
		return Transform{}, fmt.Errorf("%w: sensor orientation %d", ErrInvalidGeometry, g.SensorOrientation)
	case g.DisplayRotation < 0 || g.DisplayRotation >= 360 || g.DisplayRotation%90 != 0:
		return Transform{}, fmt.Errorf("%w: display rotation %d", ErrInvalidGeometry, g.DisplayRotation)
	}

	rotate, mirror := EffectiveRotation(g.Facing, g.SensorOrientation, g.DisplayRotation)
	t := Transform{
		Rotation:    rotate,
		Mirror:      mirror,
		InputWidth:  g.Width,
		InputHeight: g.Height,
	}

	inW, inH := float64(g.Width), float64(g.Height)
	boxW, boxH := float64(outputWidth), float64(outputHeight)
	var w0, h0 int
	if flags&FlagFit != 0 {
		s := math.Min(boxW/inW, boxH/inH)
		w0 = maxInt(1, int(math.Round(inW*s)))
		h0 = maxInt(1, int(math.Round(inH*s)))
		t.ScaleX, t.ScaleY = float64(w0)/inW, float64(h0)/inH
	} else {
		s := math.Max(boxW/inW, boxH/inH)
		w0, h0 = outputWidth, outputHeight
		t.ScaleX, t.ScaleY = s, s
		t.CropX = (inW*s - boxW) / 2
		t.CropY = (inH*s - boxH) / 2
	}

	m := f64.Aff3{t.ScaleX, 0, -t.CropX, 0, t.ScaleY, -t.CropY}
	fw, fh := float64(w0), float64(h0)
	switch rotate {
	case 90:
		m = mul(f64.Aff3{0, -1, fh, 1, 0, 0}, m)
		t.Width, t.Height = h0, w0
	case 180:
		m = mul(f64.Aff3{-1, 0, fw, 0, -1, fh}, m)
		t.Width, t.Height = w0, h0
	case 270:
		m = mul(f64.Aff3{0, 1, 0, -1, 0, fw}, m)
		t.Width, t.Height = h0, w0
	default:
		t.Width, t.Height = w0, h0
	}
	if mirror {
		m = mul(f64.Aff3{-1, 0, float64(t.Width), 0, 1, 0}, m)
	}

	t.Matrix = m
	t.inverse = invert(m)
	return t, nil
}

// Map applies the transform to a source point.
func (t Transform) Map(x, y float64) (float64, float64) {
	return apply(t.Matrix, x, y)
}

// Source maps the center of destination pixel (dx, dy) back into source
// space.
func (t Transform) Source(dx, dy int) (float64, float64) {
	return apply(t.inverse, float64(dx)+0.5, float64(dy)+0.5)
}

// SourcePixel returns the source pixel under the center of destination
// pixel (dx, dy), clamped to the input frame.
func (t Transform) SourcePixel(dx, dy int) (int, int) {
	sx, sy := t.Source(dx, dy)
	return clamp(int(math.Floor(sx)), 0, t.InputWidth-1), clamp(int(math.Floor(sy)), 0, t.InputHeight-1)
}

// mul returns the transform applying b first, then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	return f64.Aff3{
		m[4] / det,
		-m[1] / det,
		(m[1]*m[5] - m[4]*m[2]) / det,
		-m[3] / det,
		m[0] / det,
		(m[3]*m[2] - m[0]*m[5]) / det,
	}
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
