// Package gifcast provides the core terminal emulation logic used to replay
// recorded terminal sessions: a cell grid with cursor and scroll-region
// state, and an ANSI escape sequence parser that drives it.
//
// This package contains:
//   - Color and cell representation
//   - Terminal buffer with scroll region and pending-wrap handling
//   - ANSI escape sequence parser
//   - Immutable screen snapshots
//
// Consumers (frame scheduling, rasterization, GIF encoding) live in
// subpackages and only ever observe Snapshot values.
package gifcast

// ColorType indicates how a color was specified.
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // Terminal default fg/bg (SGR 39/49)
	ColorTypeStandard                   // Standard 16 ANSI colors (0-15)
	ColorTypePalette                    // 256-color palette (0-255)
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color represents a terminal color with its original specification
// preserved. Standard and palette colors stay symbolic so a theme can
// resolve them to RGB at render time.
type Color struct {
	Type    ColorType
	Index   uint8 // For Standard (0-15) or Palette (0-255)
	R, G, B uint8 // For TrueColor only
}

// Predefined colors.
var (
	DefaultForeground = Color{Type: ColorTypeDefault}
	DefaultBackground = Color{Type: ColorTypeDefault}
)

// StandardColor creates a standard 16-color ANSI color (index 0-15).
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	return Color{Type: ColorTypeStandard, Index: uint8(index)}
}

// PaletteColor creates a 256-color palette color (index 0-255).
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	return Color{Type: ColorTypePalette, Index: uint8(index)}
}

// TrueColor creates a 24-bit true color.
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the default fg/bg color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// PaletteIndex returns the color index for standard/palette colors,
// or -1 for default and true colors.
func (c Color) PaletteIndex() int {
	switch c.Type {
	case ColorTypeStandard, ColorTypePalette:
		return int(c.Index)
	default:
		return -1
	}
}
