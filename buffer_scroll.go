package gifcast

// --- Scroll region and line operations ---

// SetScrollRegion sets the scroll region to the inclusive row range
// [top, bottom] (DECSTBM, 0-indexed). An inverted or degenerate range
// resets the region to the full screen. The cursor moves home.
func (b *Buffer) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= b.rows {
		bottom = b.rows - 1
	}
	if top >= bottom {
		top = 0
		bottom = b.rows - 1
	}
	b.scrollTop = top
	b.scrollBottom = bottom
	b.setCursorInternal(0, 0)
}

// ScrollRegion returns the inclusive row range of the scroll region.
func (b *Buffer) ScrollRegion() (top, bottom int) {
	return b.scrollTop, b.scrollBottom
}

// ScrollUp scrolls the scroll region up by n lines (SU). The top n lines
// of the region are lost and blank lines appear at the bottom.
func (b *Buffer) ScrollUp(n int) {
	if n < 1 {
		n = 1
	}
	region := b.scrollBottom - b.scrollTop + 1
	if n > region {
		n = region
	}
	for y := b.scrollTop; y+n <= b.scrollBottom; y++ {
		b.screen[y] = b.screen[y+n]
	}
	for y := b.scrollBottom - n + 1; y <= b.scrollBottom; y++ {
		b.screen[y] = b.makeEmptyLine()
	}
	b.markDirty()
}

// ScrollDown scrolls the scroll region down by n lines (SD). Blank lines
// appear at the top of the region.
func (b *Buffer) ScrollDown(n int) {
	if n < 1 {
		n = 1
	}
	region := b.scrollBottom - b.scrollTop + 1
	if n > region {
		n = region
	}
	for y := b.scrollBottom; y-n >= b.scrollTop; y-- {
		b.screen[y] = b.screen[y-n]
	}
	for y := b.scrollTop; y < b.scrollTop+n; y++ {
		b.screen[y] = b.makeEmptyLine()
	}
	b.markDirty()
}

// LineFeed moves the cursor down one line; at the bottom of the scroll
// region it scrolls the region up instead (LF).
func (b *Buffer) LineFeed() {
	if b.cursorY == b.scrollBottom {
		b.ScrollUp(1)
		b.wrapPending = false
	} else {
		b.setCursorInternal(b.cursorX, b.cursorY+1)
	}
}

// ReverseLineFeed moves the cursor up one line; at the top of the scroll
// region it scrolls the region down instead (RI).
func (b *Buffer) ReverseLineFeed() {
	if b.cursorY == b.scrollTop {
		b.ScrollDown(1)
		b.wrapPending = false
	} else {
		b.setCursorInternal(b.cursorX, b.cursorY-1)
	}
}

// InsertLines inserts n blank lines at the cursor row, pushing lines below
// it down within the scroll region (IL). No-op outside the region.
func (b *Buffer) InsertLines(n int) {
	if b.cursorY < b.scrollTop || b.cursorY > b.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}
	if n > b.scrollBottom-b.cursorY+1 {
		n = b.scrollBottom - b.cursorY + 1
	}
	for y := b.scrollBottom; y-n >= b.cursorY; y-- {
		b.screen[y] = b.screen[y-n]
	}
	for y := b.cursorY; y < b.cursorY+n; y++ {
		b.screen[y] = b.makeEmptyLine()
	}
	b.markDirty()
}

// DeleteLines deletes n lines at the cursor row, pulling lines below it up
// within the scroll region (DL). No-op outside the region.
func (b *Buffer) DeleteLines(n int) {
	if b.cursorY < b.scrollTop || b.cursorY > b.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}
	if n > b.scrollBottom-b.cursorY+1 {
		n = b.scrollBottom - b.cursorY + 1
	}
	for y := b.cursorY; y+n <= b.scrollBottom; y++ {
		b.screen[y] = b.screen[y+n]
	}
	for y := b.scrollBottom - n + 1; y <= b.scrollBottom; y++ {
		b.screen[y] = b.makeEmptyLine()
	}
	b.markDirty()
}

// InsertChars inserts n blank cells at the cursor, shifting the rest of
// the line right (ICH). Cells pushed past the right edge are lost.
func (b *Buffer) InsertChars(n int) {
	if n < 1 {
		n = 1
	}
	if n > b.cols-b.cursorX {
		n = b.cols - b.cursorX
	}
	line := b.screen[b.cursorY]
	copy(line[b.cursorX+n:], line[b.cursorX:b.cols-n])
	blank := b.blankCell()
	for x := b.cursorX; x < b.cursorX+n; x++ {
		line[x] = blank
	}
	b.markDirty()
}

// DeleteChars deletes n cells at the cursor, shifting the rest of the line
// left and filling the tail with blanks (DCH).
func (b *Buffer) DeleteChars(n int) {
	if n < 1 {
		n = 1
	}
	if n > b.cols-b.cursorX {
		n = b.cols - b.cursorX
	}
	line := b.screen[b.cursorY]
	copy(line[b.cursorX:], line[b.cursorX+n:])
	blank := b.blankCell()
	for x := b.cols - n; x < b.cols; x++ {
		line[x] = blank
	}
	b.markDirty()
}
