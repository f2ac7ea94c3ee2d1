package gifcast

import "strings"

// Snapshot is an immutable copy of the visible screen at one instant.
// It shares no storage with the Buffer that produced it, so later
// emulation cannot retroactively alter an already-captured frame.
type Snapshot struct {
	cols, rows    int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
}

// Snapshot captures the current screen contents and cursor state.
func (b *Buffer) Snapshot() Snapshot {
	cells := make([][]Cell, b.rows)
	for y, line := range b.screen {
		row := make([]Cell, b.cols)
		copy(row, line)
		cells[y] = row
	}
	return Snapshot{
		cols:          b.cols,
		rows:          b.rows,
		cells:         cells,
		cursorX:       b.cursorX,
		cursorY:       b.cursorY,
		cursorVisible: b.cursorVisible,
	}
}

// Size returns the snapshot dimensions in cells.
func (s Snapshot) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Cell returns the cell at (x, y), or a blank cell when out of range.
func (s Snapshot) Cell(x, y int) Cell {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return Cell{Char: ' ', Foreground: DefaultForeground, Background: DefaultBackground}
	}
	return s.cells[y][x]
}

// Cursor returns the cursor position and whether it is visible.
func (s Snapshot) Cursor() (x, y int, visible bool) {
	return s.cursorX, s.cursorY, s.cursorVisible
}

// Line returns the text of row y with trailing attributes dropped.
// Spacer cells behind wide characters are skipped.
func (s Snapshot) Line(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	var sb strings.Builder
	sb.Grow(s.cols)
	for _, c := range s.cells[y] {
		if c.IsSpacer() {
			continue
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
