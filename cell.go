package gifcast

import "github.com/mattn/go-runewidth"

// Cell represents a single character cell in the terminal grid.
type Cell struct {
	Char          rune // Base character; 0 marks the spacer behind a wide cell
	Foreground    Color
	Background    Color
	Bold          bool
	Italic        bool
	Underline     bool
	Inverse       bool
	Strikethrough bool
	Blink         bool
	Wide          bool // True when the character occupies this cell plus the next
}

// IsBlank returns true if the cell holds no visible character.
func (c Cell) IsBlank() bool {
	return c.Char == 0 || c.Char == ' '
}

// IsSpacer returns true if the cell is the trailing half of a wide character.
func (c Cell) IsSpacer() bool {
	return c.Char == 0 && !c.Wide
}

// String returns the cell's character, or a space for blank and spacer cells.
func (c Cell) String() string {
	if c.Char == 0 {
		return " "
	}
	return string(c.Char)
}

// RuneWidth returns the number of cells a rune occupies: 2 for East-Asian
// wide characters, 1 otherwise. Zero-width runes report 0 and are dropped
// by the writer rather than stored.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
