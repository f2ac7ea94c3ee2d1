package gifcast

// --- Cursor handling ---

// Cursor returns the cursor position (0-indexed column, row).
func (b *Buffer) Cursor() (x, y int) {
	return b.cursorX, b.cursorY
}

// SetCursor moves the cursor to an absolute position, clamped to the grid.
func (b *Buffer) SetCursor(x, y int) {
	b.setCursorInternal(x, y)
}

// setCursorInternal clamps into [0, cols-1] x [0, rows-1] and clears any
// pending wrap. Every explicit cursor movement cancels a pending wrap.
func (b *Buffer) setCursorInternal(x, y int) {
	if x < 0 {
		x = 0
	}
	if x >= b.cols {
		x = b.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= b.rows {
		y = b.rows - 1
	}
	b.cursorX = x
	b.cursorY = y
	b.wrapPending = false
}

// MoveCursorUp moves the cursor up n rows (CUU).
func (b *Buffer) MoveCursorUp(n int) {
	if n < 1 {
		n = 1
	}
	b.setCursorInternal(b.cursorX, b.cursorY-n)
}

// MoveCursorDown moves the cursor down n rows (CUD).
func (b *Buffer) MoveCursorDown(n int) {
	if n < 1 {
		n = 1
	}
	b.setCursorInternal(b.cursorX, b.cursorY+n)
}

// MoveCursorForward moves the cursor right n columns (CUF).
func (b *Buffer) MoveCursorForward(n int) {
	if n < 1 {
		n = 1
	}
	b.setCursorInternal(b.cursorX+n, b.cursorY)
}

// MoveCursorBackward moves the cursor left n columns (CUB).
func (b *Buffer) MoveCursorBackward(n int) {
	if n < 1 {
		n = 1
	}
	b.setCursorInternal(b.cursorX-n, b.cursorY)
}

// CarriageReturn moves the cursor to column 0 (CR).
func (b *Buffer) CarriageReturn() {
	b.setCursorInternal(0, b.cursorY)
}

// Backspace moves the cursor one column left, stopping at column 0 (BS).
func (b *Buffer) Backspace() {
	b.setCursorInternal(b.cursorX-1, b.cursorY)
}

// Tab advances the cursor to the next 8-column tab stop (HT).
func (b *Buffer) Tab() {
	x := (b.cursorX/8 + 1) * 8
	b.setCursorInternal(x, b.cursorY)
}

// SaveCursor records the cursor position (DECSC / CSI s).
func (b *Buffer) SaveCursor() {
	b.savedX = b.cursorX
	b.savedY = b.cursorY
}

// RestoreCursor returns the cursor to the saved position (DECRC / CSI u).
func (b *Buffer) RestoreCursor() {
	b.setCursorInternal(b.savedX, b.savedY)
}

// SetCursorVisible sets cursor visibility (DECTCEM).
func (b *Buffer) SetCursorVisible(visible bool) {
	b.cursorVisible = visible
}

// IsCursorVisible reports whether the cursor is visible.
func (b *Buffer) IsCursorVisible() bool {
	return b.cursorVisible
}
