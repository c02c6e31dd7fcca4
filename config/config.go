// Package config turns the user's stored preference strings into pipeline
// settings. Malformed values never fail: they fall back to the defaults and
// are reported through slog.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/32bitkid/retroboy"
	"github.com/32bitkid/retroboy/transform"
)

const (
	DefaultContrast   = 0
	DefaultResolution = "480x360"
)

var ErrResolution = errors.New("config: malformed resolution")

// Snapshot is the raw preference values as stored.
type Snapshot struct {
	Filter     string
	Contrast   string
	Resolution string
}

type Settings struct {
	Filter     string
	Contrast   int
	Resolution transform.Resolution
}

func Defaults() Settings {
	return Settings{
		Filter:     retroboy.DefaultPreset,
		Contrast:   DefaultContrast,
		Resolution: retroboy.DefaultResolution,
	}
}

// Parse reads a snapshot. Empty fields take their default silently.
func Parse(ctx context.Context, snap Snapshot) Settings {
	s := Defaults()
	log := slog.Default()

	if f := strings.TrimSpace(snap.Filter); f != "" {
		if retroboy.IsPreset(f) {
			s.Filter = f
		} else {
			log.WarnContext(ctx, "unknown filter preference", "value", snap.Filter, "default", s.Filter)
		}
	}

	if c := strings.TrimSpace(snap.Contrast); c != "" {
		v, err := strconv.Atoi(c)
		switch {
		case err != nil:
			log.WarnContext(ctx, "failed to parse contrast preference", "value", snap.Contrast, "err", err)
		case v < -100 || v > 100:
			s.Contrast = min(max(v, -100), 100)
			log.WarnContext(ctx, "contrast preference out of range", "value", v, "clamped", s.Contrast)
		default:
			s.Contrast = v
		}
	}

	if r := strings.TrimSpace(snap.Resolution); r != "" {
		res, err := ParseResolution(r)
		if err != nil {
			log.WarnContext(ctx, "failed to parse resolution preference", "value", snap.Resolution, "err", err)
		} else {
			s.Resolution = res
		}
	}

	return s
}

// ParseResolution reads a "WIDTHxHEIGHT" string such as "480x360".
func ParseResolution(s string) (transform.Resolution, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return transform.Resolution{}, fmt.Errorf("%w: %q", ErrResolution, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w <= 0 {
		return transform.Resolution{}, fmt.Errorf("%w: %q", ErrResolution, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h <= 0 {
		return transform.Resolution{}, fmt.Errorf("%w: %q", ErrResolution, s)
	}
	return transform.Resolution{Width: w, Height: h}, nil
}

// PipelineConfig binds the settings to a concrete filter.
func (s Settings) PipelineConfig() retroboy.Config {
	return retroboy.Config{
		Filter:     retroboy.FilterFor(s.Filter),
		Contrast:   s.Contrast,
		Resolution: s.Resolution,
	}
}
