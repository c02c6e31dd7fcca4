// Package frame decodes raw camera buffers into RGBA bitmaps.
package frame

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/32bitkid/bitreader"
	"golang.org/x/image/draw"
)

var (
	ErrShortBuffer = errors.New("frame: buffer too short")
	ErrInvalidSize = errors.New("frame: invalid frame size")
)

type Format int

const (
	// NV21 is the default camera preview format: a full resolution Y plane
	// followed by a quarter resolution plane of interleaved V and U.
	NV21 Format = iota
	// RGB565 packs each pixel into 16 bits, most significant byte first:
	// five bits red, six green, five blue.
	RGB565
	RGBA8888
	Gray8
)

var formatNames = [...]string{
	NV21:     "nv21",
	RGB565:   "rgb565",
	RGBA8888: "rgba8888",
	Gray8:    "gray8",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if name == s {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("frame: unknown format %q", s)
}

// Size is the number of bytes a w x h frame occupies.
func (f Format) Size(w, h int) int {
	switch f {
	case NV21:
		return w*h + 2*((w+1)/2)*((h+1)/2)
	case RGB565:
		return 2 * w * h
	case RGBA8888:
		return 4 * w * h
	case Gray8:
		return w * h
	}
	return 0
}

// Decode converts a raw w x h frame into an opaque RGBA bitmap.
func Decode(buf []byte, w, h int, f Format) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if n := f.Size(w, h); n == 0 {
		return nil, fmt.Errorf("frame: unknown format %v", f)
	} else if len(buf) < n {
		return nil, fmt.Errorf("%w: %v %dx%d needs %d bytes, got %d", ErrShortBuffer, f, w, h, n, len(buf))
	}

	switch f {
	case NV21:
		return decodeNV21(buf, w, h), nil
	case RGB565:
		return decodeRGB565(buf, w, h)
	case RGBA8888:
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		copy(img.Pix, buf)
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 0xff
		}
		return img, nil
	default:
		gray := &image.Gray{Pix: buf[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
		img := image.NewRGBA(gray.Rect)
		draw.Draw(img, img.Rect, gray, image.Point{}, draw.Src)
		return img, nil
	}
}

func decodeNV21(buf []byte, w, h int) *image.RGBA {
	r := image.Rect(0, 0, w, h)
	ycc := image.NewYCbCr(r, image.YCbCrSubsampleRatio420)
	copy(ycc.Y, buf[:w*h])
	vu := buf[w*h:]
	for i := range ycc.Cb {
		ycc.Cr[i] = vu[2*i]
		ycc.Cb[i] = vu[2*i+1]
	}
	img := image.NewRGBA(r)
	draw.Draw(img, r, ycc, image.Point{}, draw.Src)
	return img
}

func decodeRGB565(buf []byte, w, h int) (*image.RGBA, error) {
	bits := bitreader.NewReader(bufio.NewReader(bytes.NewReader(buf[:2*w*h])))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		r, err := bits.Read8(5)
		if err != nil {
			return nil, err
		}
		g, err := bits.Read8(6)
		if err != nil {
			return nil, err
		}
		b, err := bits.Read8(5)
		if err != nil {
			return nil, err
		}
		img.Pix[i] = r<<3 | r>>2
		img.Pix[i+1] = g<<2 | g>>4
		img.Pix[i+2] = b<<3 | b>>2
		img.Pix[i+3] = 0xff
	}
	return img, nil
}
