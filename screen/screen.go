// Package screen previews a picture the way the display it imitates would
// show it: magnified, with the glass and phosphor or liquid crystal
// artifacts of that display.
package screen

import (
	"fmt"
	"image"
)

type Style int

const (
	// CRT is a shadow-mask tube with horizontal bleed and scan-lines.
	CRT Style = iota
	// LCD is a reflective handheld panel with a visible pixel grid.
	LCD
)

var styleNames = [...]string{
	CRT: "crt",
	LCD: "lcd",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

func ParseStyle(s string) (Style, error) {
	for st, name := range styleNames {
		if name == s {
			return Style(st), nil
		}
	}
	return 0, fmt.Errorf("screen: unknown style %q", s)
}

// Scale is the size of the square each source pixel becomes.
func (s Style) Scale() int {
	if s == LCD {
		return lcdScale
	}
	return crtScale
}

// Render draws src magnified by style.Scale() onto a new bitmap with its
// origin at zero.
func Render(src image.Image, style Style) *image.RGBA {
	if style == LCD {
		return renderLCD(src)
	}
	return renderCRT(src)
}
