// Package theme maps the terminal's symbolic colors (default fg/bg, the
// 16 ANSI colors, the 256-color palette) to concrete RGB values used by
// the rasterizer.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Parse errors.
var (
	ErrBadTriplet      = errors.New("theme: invalid hex triplet")
	ErrBadPaletteSize  = errors.New("theme: expected 10 or 18 hex triplets")
	ErrBadHeaderColors = errors.New("theme: expected 8 or 16 palette entries")
)

// Theme is a terminal color scheme: default background and foreground
// plus the 16-color ANSI palette.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
	Palette    [16]color.RGBA
}

// Parse reads the compact theme format: comma-separated bare hex triplets,
// background and foreground first, then 8 or 16 palette entries (an
// 8-color palette is repeated for the bright variants).
func Parse(s string) (*Theme, error) {
	var colors []color.RGBA
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		c, err := parseHex(part)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	if len(colors) != 10 && len(colors) != 18 {
		return nil, fmt.Errorf("%w, got %d", ErrBadPaletteSize, len(colors))
	}

	th := &Theme{Background: colors[0], Foreground: colors[1]}
	entries := colors[2:]
	for i := 0; i < 16; i++ {
		th.Palette[i] = entries[i%len(entries)]
	}
	return th, nil
}

// FromHeader builds a theme from an asciicast header: "#rrggbb" fg/bg
// strings and a palette of 8 or 16 entries.
func FromHeader(fg, bg string, palette []string) (*Theme, error) {
	if len(palette) != 8 && len(palette) != 16 {
		return nil, fmt.Errorf("%w, got %d", ErrBadHeaderColors, len(palette))
	}

	var th Theme
	var err error
	if th.Foreground, err = parseHex(fg); err != nil {
		return nil, err
	}
	if th.Background, err = parseHex(bg); err != nil {
		return nil, err
	}
	for i := 0; i < 16; i++ {
		if th.Palette[i], err = parseHex(palette[i%len(palette)]); err != nil {
			return nil, err
		}
	}
	return &th, nil
}

// Color resolves a 256-color palette index: 0-15 from the theme palette,
// 16-231 from the 6x6x6 color cube, 232-255 from the grayscale ramp.
func (t *Theme) Color(index uint8) color.RGBA {
	switch {
	case index < 16:
		return t.Palette[index]

	case index < 232:
		n := index - 16
		r := ((n / 36) % 6) * 40
		g := ((n / 6) % 6) * 40
		b := (n % 6) * 40
		if r > 0 {
			r += 55
		}
		if g > 0 {
			g += 55
		}
		if b > 0 {
			b += 55
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}

	default:
		v := 8 + 10*(index-232)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
}

func parseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadTriplet, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadTriplet, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
