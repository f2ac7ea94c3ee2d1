package gifcast

import "strings"

// Buffer is the terminal screen: a fixed-size grid of cells plus cursor,
// scroll region and current attribute state. All coordinate arguments are
// clamped into the grid, matching the permissive behavior of real terminal
// hardware; out-of-range access is never an error.
//
// A Buffer is not safe for concurrent use. The replay pipeline mutates it
// strictly in event order and hands immutable Snapshots downstream.
type Buffer struct {
	cols, rows int
	screen     [][]Cell

	cursorX, cursorY int
	wrapPending      bool
	cursorVisible    bool
	savedX, savedY   int

	// Scroll region, inclusive row range. Line feeds at scrollBottom
	// scroll the region instead of moving the cursor out of it.
	scrollTop    int
	scrollBottom int

	// Alternate screen (DECSET 47/1047/1049). The primary grid parks
	// here while a full-screen program draws on a scratch screen.
	altActive      bool
	savedScreen    [][]Cell
	altSavedX      int
	altSavedY      int
	altHasCursor   bool
	altSavedTop    int
	altSavedBottom int

	// Current attributes applied to future printed cells.
	fg, bg        Color
	bold          bool
	italic        bool
	underline     bool
	inverse       bool
	strikethrough bool
	blink         bool

	// Set whenever visible cell content changes; cleared by ClearDirty.
	dirty bool
}

// NewBuffer creates a terminal buffer with the given dimensions.
// Dimensions are clamped to a minimum of 1x1.
func NewBuffer(cols, rows int) *Buffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b := &Buffer{
		cols:          cols,
		rows:          rows,
		cursorVisible: true,
		scrollTop:     0,
		scrollBottom:  rows - 1,
		fg:            DefaultForeground,
		bg:            DefaultBackground,
	}
	b.screen = make([][]Cell, rows)
	for y := range b.screen {
		b.screen[y] = b.makeEmptyLine()
	}
	return b
}

// Size returns the buffer dimensions in cells.
func (b *Buffer) Size() (cols, rows int) {
	return b.cols, b.rows
}

// Cell returns the cell at (x, y), or a blank cell when out of range.
func (b *Buffer) Cell(x, y int) Cell {
	if y < 0 || y >= b.rows || x < 0 || x >= b.cols {
		return Cell{Char: ' ', Foreground: DefaultForeground, Background: DefaultBackground}
	}
	return b.screen[y][x]
}

// Line returns the text of row y. Spacer cells behind wide characters are
// skipped; empty cells render as spaces.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.rows {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.cols)
	for _, c := range b.screen[y] {
		if c.IsSpacer() {
			continue
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// IsDirty reports whether visible cell content changed since the last
// ClearDirty. Cursor-only movement does not set the flag.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// ClearDirty resets the content-change flag.
func (b *Buffer) ClearDirty() {
	b.dirty = false
}

func (b *Buffer) markDirty() {
	b.dirty = true
}

func (b *Buffer) makeEmptyLine() []Cell {
	line := make([]Cell, b.cols)
	blank := b.blankCell()
	for x := range line {
		line[x] = blank
	}
	return line
}

// blankCell is what erase operations paint with: an empty cell carrying the
// current background color (terminal convention), default foreground.
func (b *Buffer) blankCell() Cell {
	return Cell{Char: ' ', Foreground: DefaultForeground, Background: b.bg}
}

// Resize changes the buffer dimensions. Content left of the cut is
// preserved, trailing cells beyond the new width are dropped, and rows
// beyond the old height default to blank. Lines are not rewrapped. The
// scroll region resets to the full screen and the cursor is re-clamped.
func (b *Buffer) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == b.cols && rows == b.rows {
		return
	}

	oldScreen := b.screen
	b.cols = cols
	b.rows = rows
	b.screen = make([][]Cell, rows)
	for y := range b.screen {
		line := b.makeEmptyLine()
		if y < len(oldScreen) {
			copy(line, oldScreen[y])
		}
		b.screen[y] = line
	}

	b.scrollTop = 0
	b.scrollBottom = rows - 1
	b.setCursorInternal(b.cursorX, b.cursorY)
	b.markDirty()
}

// --- Erase operations ---
//
// All erase operations paint with the current background color.

// ClearScreen erases the entire screen.
func (b *Buffer) ClearScreen() {
	for y := 0; y < b.rows; y++ {
		b.clearLineRange(y, 0, b.cols)
	}
}

// ClearToEndOfScreen erases from the cursor to the end of the screen.
func (b *Buffer) ClearToEndOfScreen() {
	b.clearLineRange(b.cursorY, b.cursorX, b.cols)
	for y := b.cursorY + 1; y < b.rows; y++ {
		b.clearLineRange(y, 0, b.cols)
	}
}

// ClearToStartOfScreen erases from the start of the screen to the cursor,
// inclusive.
func (b *Buffer) ClearToStartOfScreen() {
	for y := 0; y < b.cursorY; y++ {
		b.clearLineRange(y, 0, b.cols)
	}
	b.clearLineRange(b.cursorY, 0, b.cursorX+1)
}

// ClearLine erases the cursor's line.
func (b *Buffer) ClearLine() {
	b.clearLineRange(b.cursorY, 0, b.cols)
}

// ClearToEndOfLine erases from the cursor to the end of the line.
func (b *Buffer) ClearToEndOfLine() {
	b.clearLineRange(b.cursorY, b.cursorX, b.cols)
}

// ClearToStartOfLine erases from the start of the line to the cursor,
// inclusive.
func (b *Buffer) ClearToStartOfLine() {
	b.clearLineRange(b.cursorY, 0, b.cursorX+1)
}

// EraseChars erases n cells starting at the cursor (ECH).
func (b *Buffer) EraseChars(n int) {
	if n < 1 {
		n = 1
	}
	b.clearLineRange(b.cursorY, b.cursorX, b.cursorX+n)
}

func (b *Buffer) clearLineRange(y, x0, x1 int) {
	if y < 0 || y >= b.rows {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > b.cols {
		x1 = b.cols
	}
	if x0 >= x1 {
		return
	}
	blank := b.blankCell()
	line := b.screen[y]
	for x := x0; x < x1; x++ {
		line[x] = blank
	}
	b.markDirty()
}

// --- Attribute state ---

// ResetAttributes restores all attributes to their defaults (SGR 0).
func (b *Buffer) ResetAttributes() {
	b.fg = DefaultForeground
	b.bg = DefaultBackground
	b.bold = false
	b.italic = false
	b.underline = false
	b.inverse = false
	b.strikethrough = false
	b.blink = false
}

// SetForeground sets the foreground color for future printed cells.
func (b *Buffer) SetForeground(c Color) {
	b.fg = c
}

// SetBackground sets the background color for future printed cells.
func (b *Buffer) SetBackground(c Color) {
	b.bg = c
}

// SetBold sets the bold attribute.
func (b *Buffer) SetBold(bold bool) {
	b.bold = bold
}

// SetItalic sets the italic attribute.
func (b *Buffer) SetItalic(italic bool) {
	b.italic = italic
}

// SetUnderline sets the underline attribute.
func (b *Buffer) SetUnderline(underline bool) {
	b.underline = underline
}

// SetInverse sets the reverse-video attribute.
func (b *Buffer) SetInverse(inverse bool) {
	b.inverse = inverse
}

// SetStrikethrough sets the strikethrough attribute.
func (b *Buffer) SetStrikethrough(strikethrough bool) {
	b.strikethrough = strikethrough
}

// SetBlink sets the blink attribute.
func (b *Buffer) SetBlink(blink bool) {
	b.blink = blink
}
