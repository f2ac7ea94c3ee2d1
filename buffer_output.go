package gifcast

// --- Character writing ---

// WriteChar writes a character at the cursor using the current attributes
// and advances the cursor. Printing in the last column sets the pending
// wrap flag instead of moving past the edge; the next printed character
// first wraps to column 0 of the following line (scrolling if needed).
func (b *Buffer) WriteChar(ch rune) {
	width := RuneWidth(ch)
	if width == 0 {
		// Combining marks and other zero-width runes don't occupy a cell.
		return
	}

	if b.wrapPending {
		b.CarriageReturn()
		b.LineFeed()
	}

	// A wide character that doesn't fit in the remaining columns wraps
	// early rather than being split across lines.
	if width == 2 && b.cursorX+width > b.cols {
		b.CarriageReturn()
		b.LineFeed()
	}

	cell := Cell{
		Char:          ch,
		Foreground:    b.fg,
		Background:    b.bg,
		Bold:          b.bold,
		Italic:        b.italic,
		Underline:     b.underline,
		Inverse:       b.inverse,
		Strikethrough: b.strikethrough,
		Blink:         b.blink,
		Wide:          width == 2,
	}
	b.screen[b.cursorY][b.cursorX] = cell

	if width == 2 && b.cursorX+1 < b.cols {
		// Spacer behind the wide character.
		b.screen[b.cursorY][b.cursorX+1] = Cell{Background: b.bg, Foreground: DefaultForeground}
	}
	b.markDirty()

	if b.cursorX+width >= b.cols {
		b.cursorX = b.cols - 1
		b.wrapPending = true
	} else {
		b.cursorX += width
	}
}

// WriteString writes each rune of s as if by WriteChar. Intended for tests
// and embedders; the parser feeds WriteChar directly.
func (b *Buffer) WriteString(s string) {
	for _, ch := range s {
		b.WriteChar(ch)
	}
}
