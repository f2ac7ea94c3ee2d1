package gifcast

import "testing"

func feed(t *testing.T, cols, rows int, data string) *Buffer {
	t.Helper()
	b := NewBuffer(cols, rows)
	NewParser(b).ParseString(data)
	return b
}

func TestPlainTextPrints(t *testing.T) {
	b := feed(t, 10, 2, "hello")
	if got := b.Line(0); got != "hello     " {
		t.Errorf("line 0 = %q", got)
	}
}

func TestControlCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line0 string
		line1 string
	}{
		{"CR LF", "ab\r\ncd", "ab        ", "cd        "},
		{"bare LF keeps column", "ab\ncd", "ab        ", "  cd      "},
		{"backspace overwrites", "abc\bX", "abX       ", "          "},
		{"tab to next stop", "a\tb", "a       b ", "          "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := feed(t, 10, 2, tt.input)
			if got := b.Line(0); got != tt.line0 {
				t.Errorf("line 0 = %q, want %q", got, tt.line0)
			}
			if got := b.Line(1); got != tt.line1 {
				t.Errorf("line 1 = %q, want %q", got, tt.line1)
			}
		})
	}
}

func TestCursorMovementSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wantX int
		wantY int
	}{
		{"CUP", "\x1b[3;5H", 4, 2},
		{"CUP default", "\x1b[H", 0, 0},
		{"CUU clamps", "\x1b[5;5H\x1b[99A", 4, 0},
		{"CUD clamps", "\x1b[99B", 0, 9},
		{"CUF", "\x1b[3C", 3, 0},
		{"CUB clamps", "\x1b[5C\x1b[99D", 0, 0},
		{"CHA", "\x1b[7G", 6, 0},
		{"VPA", "\x1b[4d", 0, 3},
		{"CNL", "\x1b[5C\x1b[2E", 0, 2},
		{"save restore", "\x1b[4;4H\x1b[s\x1b[H\x1b[u", 3, 3},
		{"DECSC DECRC", "\x1b[4;4H\x1b7\x1b[H\x1b8", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := feed(t, 10, 10, tt.input)
			x, y := b.Cursor()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("cursor = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestEraseSequences(t *testing.T) {
	b := feed(t, 4, 2, "abcd\r\nefgh\x1b[H\x1b[K")
	if got := b.Line(0); got != "    " {
		t.Errorf("EL from home = %q, want blank", got)
	}
	if got := b.Line(1); got != "efgh" {
		t.Errorf("row 1 = %q, want untouched", got)
	}

	b = feed(t, 4, 2, "abcd\r\nefgh\x1b[2J")
	for y := 0; y < 2; y++ {
		if got := b.Line(y); got != "    " {
			t.Errorf("ED 2, row %d = %q, want blank", y, got)
		}
	}
}

func TestSGRAttributes(t *testing.T) {
	b := feed(t, 10, 1, "\x1b[1;3;4;7;9;5mX")
	c := b.Cell(0, 0)
	if !c.Bold || !c.Italic || !c.Underline || !c.Inverse || !c.Strikethrough || !c.Blink {
		t.Errorf("attributes not all set: %+v", c)
	}

	b = feed(t, 10, 1, "\x1b[1mA\x1b[22mB\x1b[0mC")
	if !b.Cell(0, 0).Bold {
		t.Error("A should be bold")
	}
	if b.Cell(1, 0).Bold {
		t.Error("B should not be bold after SGR 22")
	}
	if b.Cell(2, 0).Bold {
		t.Error("C should not be bold after reset")
	}
}

func TestSGRColors(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want Color
		bg   bool
	}{
		{"standard fg", "\x1b[31m", StandardColor(1), false},
		{"bright fg", "\x1b[94m", StandardColor(12), false},
		{"standard bg", "\x1b[42m", StandardColor(2), true},
		{"bright bg", "\x1b[103m", StandardColor(11), true},
		{"256 fg", "\x1b[38;5;208m", PaletteColor(208), false},
		{"256 bg", "\x1b[48;5;17m", PaletteColor(17), true},
		{"truecolor fg", "\x1b[38;2;12;34;56m", TrueColor(12, 34, 56), false},
		{"truecolor bg", "\x1b[48;2;255;0;128m", TrueColor(255, 0, 128), true},
		{"default fg", "\x1b[31m\x1b[39m", DefaultForeground, false},
		{"default bg", "\x1b[41m\x1b[49m", DefaultBackground, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := feed(t, 4, 1, tt.seq+"X")
			c := b.Cell(0, 0)
			got := c.Foreground
			if tt.bg {
				got = c.Background
			}
			if got != tt.want {
				t.Errorf("color = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScrollRegionSequence(t *testing.T) {
	b := feed(t, 4, 5, "\x1b[2;4r")
	top, bottom := b.ScrollRegion()
	if top != 1 || bottom != 3 {
		t.Errorf("scroll region = [%d, %d], want [1, 3]", top, bottom)
	}
	if x, y := b.Cursor(); x != 0 || y != 0 {
		t.Errorf("DECSTBM should home the cursor, got (%d, %d)", x, y)
	}
}

func TestCursorVisibilityModes(t *testing.T) {
	b := feed(t, 4, 2, "\x1b[?25l")
	if b.IsCursorVisible() {
		t.Error("cursor should be hidden after DECTCEM reset")
	}
	NewParser(b).ParseString("\x1b[?25h")
	if !b.IsCursorVisible() {
		t.Error("cursor should be visible after DECTCEM set")
	}
}

func TestMalformedSequencesAreRecoverable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated CSI then text", "\x1b[12;99\x01OK"},
		{"garbage final byte", "\x1b[\x01OK"},
		{"unknown escape", "\x1bzOK"},
		{"OSC with BEL", "\x1b]0;title\x07OK"},
		{"OSC with ST", "\x1b]0;title\x1b\\OK"},
		{"DCS ignored", "\x1bPq pixels \x1b\\OK"},
		{"APC ignored", "\x1b_payload\x07OK"},
		{"charset designation", "\x1b(BOK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := feed(t, 10, 2, tt.input)
			if got := b.Line(0); got[:2] != "OK" {
				t.Errorf("buffer after %q = %q, want to start with OK", tt.input, got)
			}
		})
	}
}

func TestUTF8AcrossChunkBoundary(t *testing.T) {
	b := NewBuffer(10, 1)
	p := NewParser(b)

	raw := []byte("héllo") // é is two bytes
	p.Parse(raw[:2])       // split mid-rune
	p.Parse(raw[2:])

	if got := b.Line(0); got != "héllo     " {
		t.Errorf("line = %q, want %q", got, "héllo     ")
	}
}

func TestInvalidUTF8DoesNotCrash(t *testing.T) {
	b := NewBuffer(10, 1)
	p := NewParser(b)
	p.Parse([]byte{0xC3, 0x41, 0xE2, 0x82, 0x41, 0xFF, 'O', 'K'})

	if got := b.Line(0); len(got) == 0 {
		t.Fatal("buffer line unexpectedly empty")
	}
}

func TestWideCharacterFromParser(t *testing.T) {
	b := feed(t, 10, 1, "世界")
	if c := b.Cell(0, 0); c.Char != '世' || !c.Wide {
		t.Errorf("cell (0,0) = %+v, want wide 世", c)
	}
	if c := b.Cell(2, 0); c.Char != '界' {
		t.Errorf("cell (2,0) = %q, want 界", c.Char)
	}
}

func TestIndexAndReverseIndex(t *testing.T) {
	b := feed(t, 4, 3, "a\x1bD\x1bDb")
	if _, y := b.Cursor(); y != 2 {
		t.Errorf("cursor row after two IND = %d, want 2", y)
	}

	b = feed(t, 4, 3, "\x1b[1;1H\x1bMx")
	// RI at the top scrolls down; x lands on the new top row.
	if got := b.Cell(0, 0).Char; got != 'x' {
		t.Errorf("cell (0,0) = %q, want 'x'", got)
	}
}

func TestRISResetsState(t *testing.T) {
	b := feed(t, 4, 2, "\x1b[31mab\x1bcX")
	c := b.Cell(0, 0)
	if c.Char != 'X' {
		t.Errorf("cell (0,0) = %q, want 'X' at home after RIS", c.Char)
	}
	if c.Foreground != DefaultForeground {
		t.Errorf("RIS should reset attributes, fg = %+v", c.Foreground)
	}
}

func TestAltScreenRestoresPrimaryContent(t *testing.T) {
	b := NewBuffer(5, 2)
	p := NewParser(b)

	p.ParseString("hello")
	p.ParseString("\x1b[?1049h\x1b[2J\x1b[HVIM")
	if !b.IsAltScreen() {
		t.Fatal("alternate screen not active after ?1049h")
	}
	if got := b.Line(0); got != "VIM  " {
		t.Errorf("alt line 0 = %q, want %q", got, "VIM  ")
	}

	p.ParseString("\x1b[?1049l")
	if b.IsAltScreen() {
		t.Fatal("alternate screen still active after ?1049l")
	}
	if got := b.Line(0); got != "hello" {
		t.Errorf("primary line 0 = %q, want %q", got, "hello")
	}
}

func TestAltScreen1049RestoresCursor(t *testing.T) {
	b := NewBuffer(10, 4)
	p := NewParser(b)

	p.ParseString("ab")
	p.ParseString("\x1b[?1049h\x1b[3;7H\x1b[?1049l")
	if x, y := b.Cursor(); x != 2 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0) restored", x, y)
	}
}

func TestAltScreen47KeepsCursor(t *testing.T) {
	b := NewBuffer(10, 4)
	p := NewParser(b)

	p.ParseString("ab")
	p.ParseString("\x1b[?47h\x1b[3;7H\x1b[?47l")
	if x, y := b.Cursor(); x != 6 || y != 2 {
		t.Errorf("cursor = (%d,%d), want (6,2) untouched by mode 47", x, y)
	}
	if got := b.Line(0); got != "ab        " {
		t.Errorf("line 0 = %q", got)
	}
}

func TestAltScreenExitWithoutEnterIsNoop(t *testing.T) {
	b := feed(t, 4, 2, "hi\x1b[?1049l")
	if got := b.Line(0); got != "hi  " {
		t.Errorf("line 0 = %q", got)
	}
	if x, y := b.Cursor(); x != 2 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (2,0)", x, y)
	}
}

func TestAltScreenEnterTwiceIsIdempotent(t *testing.T) {
	b := NewBuffer(5, 2)
	p := NewParser(b)

	p.ParseString("hello\x1b[?1049h\x1b[2J\x1b[HX\x1b[?1049h\x1b[?1049l")
	if b.IsAltScreen() {
		t.Fatal("still on alternate screen after one ?1049l")
	}
	if got := b.Line(0); got != "hello" {
		t.Errorf("primary line 0 = %q, want %q", got, "hello")
	}
}

func TestAltScreenSurvivesResize(t *testing.T) {
	b := NewBuffer(5, 2)
	p := NewParser(b)

	p.ParseString("hello\x1b[?1049h\x1b[8;2;3t\x1b[?1049l")
	cols, rows := b.Size()
	if cols != 3 || rows != 2 {
		t.Fatalf("size = %dx%d, want 3x2", cols, rows)
	}
	// The parked primary grid is cut to the new width on restore.
	if got := b.Line(0); got != "hel" {
		t.Errorf("primary line 0 = %q, want %q", got, "hel")
	}
}

func TestRISLeavesAltScreen(t *testing.T) {
	b := feed(t, 5, 2, "hello\x1b[?1049hX\x1bc")
	if b.IsAltScreen() {
		t.Fatal("RIS should return to the primary screen")
	}
	if got := b.Line(0); got != "     " {
		t.Errorf("line 0 = %q, want cleared", got)
	}
}
