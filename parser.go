package gifcast

import (
	"strconv"
	"strings"
)

// Parser states
type parserState int

const (
	stateGround    parserState = iota
	stateEscape                // After ESC
	stateCSI                   // After ESC [
	stateCSIParam              // Reading CSI parameters
	stateOSC                   // After ESC ], reading the string until BEL or ST
	stateCharset               // After ESC ( or ESC )
	stateStrIgnore             // Inside DCS/SOS/PM/APC, discarded until BEL or ST
	stateCSIIgnore             // CSI with intermediate bytes, discarded to the final byte
)

// Parser parses ANSI escape sequences and updates a Buffer. Malformed or
// unsupported sequences are discarded and parsing resumes from ground
// state; decoding never fails.
type Parser struct {
	buffer *Buffer
	state  parserState

	// CSI sequence accumulator
	csiParams  []int
	csiPrivate byte // For private sequences like ?25h
	csiBuf     strings.Builder

	// UTF-8 multi-byte handling; a sequence may span input chunks.
	utf8Buf  []byte
	utf8Need int
}

// NewParser creates an ANSI parser for the given buffer.
func NewParser(buffer *Buffer) *Parser {
	return &Parser{
		buffer:    buffer,
		state:     stateGround,
		csiParams: make([]int, 0, 16),
	}
}

// Parse processes input data and updates the terminal buffer.
func (p *Parser) Parse(data []byte) {
	for _, b := range data {
		p.processByte(b)
	}
}

// ParseString processes a string and updates the terminal buffer.
func (p *Parser) ParseString(data string) {
	p.Parse([]byte(data))
}

func (p *Parser) processByte(b byte) {
	// Handle UTF-8 continuation bytes
	if p.utf8Need > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Buf = append(p.utf8Buf, b)
			p.utf8Need--
			if p.utf8Need == 0 {
				r := decodeUTF8(p.utf8Buf)
				if p.state == stateGround {
					p.buffer.WriteChar(r)
				}
				p.utf8Buf = p.utf8Buf[:0]
			}
			return
		}
		// Invalid UTF-8, reset and fall through
		p.utf8Buf = p.utf8Buf[:0]
		p.utf8Need = 0
	}

	// Check for UTF-8 start bytes in ground state
	if p.state == stateGround {
		switch {
		case b&0xE0 == 0xC0: // 2-byte sequence
			p.utf8Buf = append(p.utf8Buf[:0], b)
			p.utf8Need = 1
			return
		case b&0xF0 == 0xE0: // 3-byte sequence
			p.utf8Buf = append(p.utf8Buf[:0], b)
			p.utf8Need = 2
			return
		case b&0xF8 == 0xF0: // 4-byte sequence
			p.utf8Buf = append(p.utf8Buf[:0], b)
			p.utf8Need = 3
			return
		}
	}

	switch p.state {
	case stateGround:
		p.handleGround(b)
	case stateEscape:
		p.handleEscape(b)
	case stateCSI, stateCSIParam:
		p.handleCSI(b)
	case stateOSC:
		p.handleOSC(b)
	case stateCharset:
		// Consume the designation character and return to ground
		p.state = stateGround
	case stateStrIgnore:
		p.handleStrIgnore(b)
	case stateCSIIgnore:
		p.handleCSIIgnore(b)
	}
}

func decodeUTF8(buf []byte) rune {
	switch len(buf) {
	case 2:
		return rune(buf[0]&0x1F)<<6 | rune(buf[1]&0x3F)
	case 3:
		return rune(buf[0]&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F)
	case 4:
		return rune(buf[0]&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F)
	default:
		return 0xFFFD
	}
}

func (p *Parser) handleGround(b byte) {
	switch b {
	case 0x00: // NUL - ignore
	case 0x07: // BEL - ignore
	case 0x08: // BS - backspace
		p.buffer.Backspace()
	case 0x09: // HT - horizontal tab
		p.buffer.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF - all treated as line feed
		p.buffer.LineFeed()
	case 0x0D: // CR - carriage return
		p.buffer.CarriageReturn()
	case 0x1B: // ESC
		p.state = stateEscape
	default:
		if b >= 0x20 && b < 0x7F {
			// Printable ASCII
			p.buffer.WriteChar(rune(b))
		}
	}
}

func (p *Parser) handleEscape(b byte) {
	switch b {
	case '[': // CSI - Control Sequence Introducer
		p.state = stateCSI
		p.csiParams = p.csiParams[:0]
		p.csiPrivate = 0
		p.csiBuf.Reset()
	case ']': // OSC - Operating System Command
		p.state = stateOSC
	case 'P', 'X', '^', '_': // DCS, SOS, PM, APC - consume until terminator
		p.state = stateStrIgnore
	case '(', ')': // Character set designation
		p.state = stateCharset
	case '7': // DECSC - Save Cursor
		p.buffer.SaveCursor()
		p.state = stateGround
	case '8': // DECRC - Restore Cursor
		p.buffer.RestoreCursor()
		p.state = stateGround
	case 'c': // RIS - Reset to Initial State
		p.buffer.ExitAltScreen(false)
		p.buffer.ResetAttributes()
		p.buffer.ClearScreen()
		p.buffer.SetCursor(0, 0)
		p.state = stateGround
	case 'D': // IND - Index
		p.buffer.LineFeed()
		p.state = stateGround
	case 'E': // NEL - Next Line
		p.buffer.CarriageReturn()
		p.buffer.LineFeed()
		p.state = stateGround
	case 'M': // RI - Reverse Index
		p.buffer.ReverseLineFeed()
		p.state = stateGround
	case '=', '>': // DECKPAM / DECKPNM - keypad modes, ignored
		p.state = stateGround
	default:
		// Unknown escape sequence, return to ground state
		p.state = stateGround
	}
}

func (p *Parser) handleCSI(b byte) {
	if p.state == stateCSI {
		// First byte after ESC [
		if b == '?' || b == '>' || b == '!' || b == '<' {
			p.csiPrivate = b
			p.state = stateCSIParam
			return
		}
		p.state = stateCSIParam
	}

	switch {
	case b >= '0' && b <= '9':
		p.csiBuf.WriteByte(b)
	case b == ';' || b == ':':
		// Parameter separator; sub-parameters (colon form) are folded
		// into the same list
		p.parseCSIParam()
	case b >= 0x20 && b <= 0x2F:
		// Intermediate bytes (e.g. the SP in DECSCUSR); the sequences
		// that use them don't affect replay, discard the whole thing
		p.state = stateCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		// Final byte - execute the sequence
		p.parseCSIParam()
		p.executeCSI(b)
		p.state = stateGround
	default:
		// Malformed sequence, discard
		p.state = stateGround
	}
}

func (p *Parser) handleCSIIgnore(b byte) {
	if b >= 0x40 && b <= 0x7E {
		p.state = stateGround
	}
}

func (p *Parser) parseCSIParam() {
	s := p.csiBuf.String()
	p.csiBuf.Reset()
	if s == "" {
		p.csiParams = append(p.csiParams, 0)
		return
	}
	n, _ := strconv.Atoi(s)
	p.csiParams = append(p.csiParams, n)
}

func (p *Parser) getParam(idx, defaultVal int) int {
	if idx < len(p.csiParams) && p.csiParams[idx] > 0 {
		return p.csiParams[idx]
	}
	return defaultVal
}

func (p *Parser) executeCSI(finalByte byte) {
	switch finalByte {
	case 'A': // CUU - Cursor Up
		p.buffer.MoveCursorUp(p.getParam(0, 1))

	case 'B': // CUD - Cursor Down
		p.buffer.MoveCursorDown(p.getParam(0, 1))

	case 'C': // CUF - Cursor Forward
		p.buffer.MoveCursorForward(p.getParam(0, 1))

	case 'D': // CUB - Cursor Backward
		p.buffer.MoveCursorBackward(p.getParam(0, 1))

	case 'E': // CNL - Cursor Next Line
		p.buffer.MoveCursorDown(p.getParam(0, 1))
		p.buffer.CarriageReturn()

	case 'F': // CPL - Cursor Previous Line
		p.buffer.MoveCursorUp(p.getParam(0, 1))
		p.buffer.CarriageReturn()

	case 'G': // CHA - Cursor Horizontal Absolute
		_, y := p.buffer.Cursor()
		p.buffer.SetCursor(p.getParam(0, 1)-1, y)

	case 'H', 'f': // CUP / HVP - Cursor Position
		row := p.getParam(0, 1) - 1
		col := p.getParam(1, 1) - 1
		p.buffer.SetCursor(col, row)

	case 'J': // ED - Erase in Display
		switch p.getParam(0, 0) {
		case 0:
			p.buffer.ClearToEndOfScreen()
		case 1:
			p.buffer.ClearToStartOfScreen()
		case 2, 3:
			p.buffer.ClearScreen()
			p.buffer.SetCursor(0, 0)
		}

	case 'K': // EL - Erase in Line
		switch p.getParam(0, 0) {
		case 0:
			p.buffer.ClearToEndOfLine()
		case 1:
			p.buffer.ClearToStartOfLine()
		case 2:
			p.buffer.ClearLine()
		}

	case 'L': // IL - Insert Lines
		p.buffer.InsertLines(p.getParam(0, 1))

	case 'M': // DL - Delete Lines
		p.buffer.DeleteLines(p.getParam(0, 1))

	case 'P': // DCH - Delete Characters
		p.buffer.DeleteChars(p.getParam(0, 1))

	case '@': // ICH - Insert Characters
		p.buffer.InsertChars(p.getParam(0, 1))

	case 'X': // ECH - Erase Characters
		p.buffer.EraseChars(p.getParam(0, 1))

	case 'S': // SU - Scroll Up
		p.buffer.ScrollUp(p.getParam(0, 1))

	case 'T': // SD - Scroll Down
		p.buffer.ScrollDown(p.getParam(0, 1))

	case 'd': // VPA - Vertical Position Absolute
		x, _ := p.buffer.Cursor()
		p.buffer.SetCursor(x, p.getParam(0, 1)-1)

	case 'm': // SGR - Select Graphic Rendition
		p.executeSGR()

	case 'r': // DECSTBM - Set Top and Bottom Margins
		top := p.getParam(0, 1) - 1
		bottom := p.getParam(1, p.buffer.rows) - 1
		p.buffer.SetScrollRegion(top, bottom)

	case 'h': // SM - Set Mode
		if p.csiPrivate == '?' {
			p.executePrivateModeSet(true)
		}

	case 'l': // RM - Reset Mode
		if p.csiPrivate == '?' {
			p.executePrivateModeSet(false)
		}

	case 's': // SCP - Save Cursor Position
		p.buffer.SaveCursor()

	case 'u': // RCP - Restore Cursor Position
		p.buffer.RestoreCursor()

	case 't': // XTWINOPS - window manipulation; only size (8) matters here
		if len(p.csiParams) >= 3 && p.csiParams[0] == 8 {
			rows := p.csiParams[1]
			cols := p.csiParams[2]
			if rows > 0 && cols > 0 {
				p.buffer.Resize(cols, rows)
			}
		}

		// Anything else (DSR, DA, ...) would need to send a response or
		// move pixels we don't draw; ignored.
	}
}

func (p *Parser) executeSGR() {
	if len(p.csiParams) == 0 {
		p.buffer.ResetAttributes()
		return
	}

	i := 0
	for i < len(p.csiParams) {
		param := p.csiParams[i]
		switch param {
		case 0: // Reset
			p.buffer.ResetAttributes()
		case 1: // Bold
			p.buffer.SetBold(true)
		case 2: // Dim - treated as not bold
			p.buffer.SetBold(false)
		case 3: // Italic
			p.buffer.SetItalic(true)
		case 4: // Underline
			p.buffer.SetUnderline(true)
		case 5, 6: // Blink (slow / rapid)
			p.buffer.SetBlink(true)
		case 7: // Reverse video
			p.buffer.SetInverse(true)
		case 9: // Strikethrough
			p.buffer.SetStrikethrough(true)
		case 21, 22: // Bold off / normal intensity
			p.buffer.SetBold(false)
		case 23: // Italic off
			p.buffer.SetItalic(false)
		case 24: // Underline off
			p.buffer.SetUnderline(false)
		case 25: // Blink off
			p.buffer.SetBlink(false)
		case 27: // Reverse off
			p.buffer.SetInverse(false)
		case 29: // Strikethrough off
			p.buffer.SetStrikethrough(false)

		case 30, 31, 32, 33, 34, 35, 36, 37:
			p.buffer.SetForeground(StandardColor(param - 30))

		case 90, 91, 92, 93, 94, 95, 96, 97:
			p.buffer.SetForeground(StandardColor(param - 90 + 8))

		case 40, 41, 42, 43, 44, 45, 46, 47:
			p.buffer.SetBackground(StandardColor(param - 40))

		case 100, 101, 102, 103, 104, 105, 106, 107:
			p.buffer.SetBackground(StandardColor(param - 100 + 8))

		case 38: // Extended foreground color: 38;5;N or 38;2;R;G;B
			if c, skip, ok := p.extendedColor(i); ok {
				p.buffer.SetForeground(c)
				i += skip
			}

		case 39: // Default foreground
			p.buffer.SetForeground(DefaultForeground)

		case 48: // Extended background color: 48;5;N or 48;2;R;G;B
			if c, skip, ok := p.extendedColor(i); ok {
				p.buffer.SetBackground(c)
				i += skip
			}

		case 49: // Default background
			p.buffer.SetBackground(DefaultBackground)
		}
		i++
	}
}

// extendedColor parses the 5;N and 2;R;G;B forms following SGR 38/48 at
// index i. Returns the color, how many extra parameters were consumed,
// and whether the form was recognized.
func (p *Parser) extendedColor(i int) (Color, int, bool) {
	if i+2 < len(p.csiParams) && p.csiParams[i+1] == 5 {
		return PaletteColor(p.csiParams[i+2]), 2, true
	}
	if i+4 < len(p.csiParams) && p.csiParams[i+1] == 2 {
		return TrueColor(
			clampByte(p.csiParams[i+2]),
			clampByte(p.csiParams[i+3]),
			clampByte(p.csiParams[i+4]),
		), 4, true
	}
	return Color{}, 0, false
}

func clampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func (p *Parser) executePrivateModeSet(set bool) {
	for _, param := range p.csiParams {
		switch param {
		case 25: // DECTCEM - Cursor visibility
			p.buffer.SetCursorVisible(set)
		case 47, 1047, 1049: // Alternate screen; 1049 also saves the cursor
			if set {
				p.buffer.EnterAltScreen(param == 1049)
			} else {
				p.buffer.ExitAltScreen(param == 1049)
			}
			// Bracketed paste (2004) and other private modes don't change
			// what a replay draws; ignored.
		}
	}
}

func (p *Parser) handleOSC(b byte) {
	if b == 0x07 { // BEL terminates OSC
		p.state = stateGround
		return
	}
	if b == 0x1B { // ESC starts ST (ESC \)
		p.state = stateEscape
	}
	// Title setting and similar OSC payloads have no effect on the cell
	// grid; everything up to the terminator is dropped.
}

func (p *Parser) handleStrIgnore(b byte) {
	if b == 0x07 {
		p.state = stateGround
		return
	}
	if b == 0x1B {
		p.state = stateEscape
	}
}
