package gifcast

import "errors"

// ErrInvalidSize is returned when a terminal is created with non-positive
// dimensions.
var ErrInvalidSize = errors.New("terminal size must be positive")

// Terminal owns a screen buffer and the parser that drives it. It consumes
// raw output bytes from a recorded session and exposes immutable snapshots
// of the resulting screen state.
//
// A Terminal is single-threaded: feed it events strictly in recording
// order. Multiple independent Terminals never share state.
type Terminal struct {
	buffer *Buffer
	parser *Parser

	lastCursorX       int
	lastCursorY       int
	lastCursorVisible bool
}

// NewTerminal creates a terminal with the given dimensions.
func NewTerminal(cols, rows int) (*Terminal, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrInvalidSize
	}
	buffer := NewBuffer(cols, rows)
	// lastCursorX starts out of range so the first Changed call reports
	// true and the initial blank screen becomes frame zero.
	t := &Terminal{
		buffer:            buffer,
		parser:            NewParser(buffer),
		lastCursorX:       -1,
		lastCursorY:       -1,
		lastCursorVisible: true,
	}
	return t, nil
}

// Feed decodes raw terminal output and applies it to the screen.
func (t *Terminal) Feed(data []byte) {
	t.parser.Parse(data)
}

// FeedString decodes a string of raw terminal output.
func (t *Terminal) FeedString(data string) {
	t.parser.ParseString(data)
}

// Resize changes the terminal dimensions, truncating or padding content.
func (t *Terminal) Resize(cols, rows int) {
	if cols < 1 || rows < 1 {
		return
	}
	t.buffer.Resize(cols, rows)
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (cols, rows int) {
	return t.buffer.Size()
}

// Snapshot returns an immutable copy of the current screen state.
func (t *Terminal) Snapshot() Snapshot {
	return t.buffer.Snapshot()
}

// Changed reports whether the visible state (cell content or cursor)
// differs from the last time Changed returned true. The frame scheduler
// uses this to skip frames with no visual difference.
func (t *Terminal) Changed() bool {
	x, y := t.buffer.Cursor()
	visible := t.buffer.IsCursorVisible()
	changed := t.buffer.IsDirty() ||
		x != t.lastCursorX || y != t.lastCursorY || visible != t.lastCursorVisible

	if changed {
		t.buffer.ClearDirty()
		t.lastCursorX = x
		t.lastCursorY = y
		t.lastCursorVisible = visible
	}
	return changed
}
