// Package retroboy turns captured camera frames into low-color pictures in
// the style of old handheld consoles, home computers and print.
//
// A Pipeline normalizes a frame's geometry (rotation, mirroring, scaling
// and cropping to a target resolution), adjusts contrast, then quantizes
// the result with one filter from package filter.
package retroboy

import (
	"errors"
	"fmt"
	"image"

	"github.com/32bitkid/retroboy/filter"
	"github.com/32bitkid/retroboy/transform"
)

var (
	ErrNoFilter        = errors.New("retroboy: no filter")
	ErrInvalidContrast = errors.New("retroboy: contrast out of range [-100,100]")
	ErrFrameSize       = errors.New("retroboy: frame size does not match geometry")
)

// DefaultResolution is the output size used when none is configured.
var DefaultResolution = transform.Resolution{Width: 480, Height: 360}

// Config is a snapshot of the user's choices, already parsed and defaulted.
type Config struct {
	Filter     filter.Filter
	Contrast   int
	Resolution transform.Resolution
	Sampling   Sampling
}

// Pipeline applies one Config to any number of frames. It holds no mutable
// state and may be shared between goroutines.
type Pipeline struct {
	cfg Config
	lut *[256]uint8
}

func New(cfg Config) (*Pipeline, error) {
	if cfg.Filter == nil {
		return nil, ErrNoFilter
	}
	if cfg.Contrast < -100 || cfg.Contrast > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidContrast, cfg.Contrast)
	}
	if cfg.Resolution == (transform.Resolution{}) {
		cfg.Resolution = DefaultResolution
	}
	if cfg.Resolution.Width <= 0 || cfg.Resolution.Height <= 0 {
		return nil, fmt.Errorf("%w: resolution %v", transform.ErrInvalidGeometry, cfg.Resolution)
	}
	return &Pipeline{cfg: cfg, lut: contrastTable(cfg.Contrast)}, nil
}

func (p *Pipeline) Config() Config { return p.cfg }

// Process runs one frame through the pipeline. If g leaves the frame size
// zero it is taken from src; otherwise it must match src.
func (p *Pipeline) Process(src image.Image, g transform.Geometry) (*image.Paletted, error) {
	size := src.Bounds().Size()
	if g.Width == 0 && g.Height == 0 {
		g.Width, g.Height = size.X, size.Y
	}
	if g.Width != size.X || g.Height != size.Y {
		return nil, fmt.Errorf("%w: geometry %dx%d, frame %dx%d", ErrFrameSize, g.Width, g.Height, size.X, size.Y)
	}

	t, err := transform.ComputeForResolution(g, p.cfg.Resolution)
	if err != nil {
		return nil, err
	}

	img := resample(toRGBA(src), t, p.cfg.Sampling)
	applyContrast(img, p.lut)
	return p.cfg.Filter.Apply(img), nil
}

// Process is a one-shot pipeline at DefaultResolution.
func Process(src image.Image, g transform.Geometry, f filter.Filter, contrast int) (*image.Paletted, error) {
	p, err := New(Config{Filter: f, Contrast: contrast})
	if err != nil {
		return nil, err
	}
	return p.Process(src, g)
}
