package gifcast

// Alternate screen support (DECSET 47/1047/1049). Full-screen programs
// draw on a scratch grid; the primary screen comes back intact when they
// exit.

// EnterAltScreen switches to a blank alternate screen, parking the
// primary grid, scroll region and pending wrap. With saveCursor the
// cursor position is saved for the matching ExitAltScreen (mode 1049).
// No-op when the alternate screen is already active.
func (b *Buffer) EnterAltScreen(saveCursor bool) {
	if b.altActive {
		return
	}
	b.altActive = true
	b.savedScreen = b.screen
	b.altSavedTop, b.altSavedBottom = b.scrollTop, b.scrollBottom
	b.altHasCursor = saveCursor
	if saveCursor {
		b.altSavedX, b.altSavedY = b.cursorX, b.cursorY
	}

	b.screen = make([][]Cell, b.rows)
	for y := range b.screen {
		b.screen[y] = b.makeEmptyLine()
	}
	b.scrollTop, b.scrollBottom = 0, b.rows-1
	b.wrapPending = false
	b.markDirty()
}

// ExitAltScreen discards the alternate screen and restores the primary
// grid. With restoreCursor the cursor saved by EnterAltScreen comes back
// too (mode 1049). No-op on the primary screen.
func (b *Buffer) ExitAltScreen(restoreCursor bool) {
	if !b.altActive {
		return
	}
	b.altActive = false
	saved := b.savedScreen
	b.savedScreen = nil

	// Re-fit the saved grid in case the terminal was resized while the
	// alternate screen was active.
	b.screen = make([][]Cell, b.rows)
	for y := range b.screen {
		line := b.makeEmptyLine()
		if y < len(saved) {
			copy(line, saved[y])
		}
		b.screen[y] = line
	}

	b.scrollTop, b.scrollBottom = b.altSavedTop, b.altSavedBottom
	if b.scrollBottom >= b.rows {
		b.scrollBottom = b.rows - 1
	}
	if b.scrollTop > b.scrollBottom {
		b.scrollTop = 0
	}
	b.wrapPending = false
	if restoreCursor && b.altHasCursor {
		b.setCursorInternal(b.altSavedX, b.altSavedY)
	} else {
		b.setCursorInternal(b.cursorX, b.cursorY)
	}
	b.markDirty()
}

// IsAltScreen reports whether the alternate screen is active.
func (b *Buffer) IsAltScreen() bool {
	return b.altActive
}
