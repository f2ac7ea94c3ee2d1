// Package asciicast reads asciinema recordings (versions 1, 2 and 3) into
// a header plus an ordered event stream. Event payloads are raw terminal
// output; resize events are rewritten as XTWINOPS control sequences so
// downstream consumers see a single uniform byte stream.
package asciicast

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gifcast/gifcast/frames"
	"github.com/gifcast/gifcast/theme"
)

// Parse errors.
var (
	ErrEmptyFile          = errors.New("asciicast: empty file")
	ErrUnsupportedVersion = errors.New("asciicast: not a v1, v2 or v3 recording")
)

// Header carries the recording's terminal geometry and optional playback
// hints.
type Header struct {
	Version       int
	Cols          int
	Rows          int
	IdleTimeLimit float64 // 0 when the recording doesn't set one
	Theme         *theme.Theme
}

// Cast is an opened recording: its header and the event stream. Events
// must be drained before the underlying reader is reused.
type Cast struct {
	Header Header
	Events frames.Source
}

// Open sniffs the version from the first line and returns the parsed
// recording. v2 and v3 files are JSON lines and stream lazily; v1 files
// are a single JSON document and load eagerly.
func Open(r io.Reader) (*Cast, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("asciicast: %w", err)
		}
		return nil, ErrEmptyFile
	}
	first := scanner.Text()

	if cast, err := openV3(first, scanner); err == nil {
		return cast, nil
	}
	if cast, err := openV2(first, scanner); err == nil {
		return cast, nil
	}
	return openV1(first, scanner)
}

// resizeSequence encodes a terminal resize as CSI 8 ; rows ; cols t, the
// XTWINOPS form the emulator understands.
func resizeSequence(data string) (string, bool) {
	cols, rows, ok := parseSize(data)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("\x1b[8;%d;%dt", rows, cols), true
}

// parseSize parses "COLSxROWS".
func parseSize(s string) (cols, rows int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	cols, err := strconv.Atoi(parts[0])
	if err != nil || cols < 1 {
		return 0, 0, false
	}
	rows, err = strconv.Atoi(parts[1])
	if err != nil || rows < 1 {
		return 0, 0, false
	}
	return cols, rows, true
}

// parseTheme reads an embedded header theme: fg and bg hex colors plus a
// colon-separated palette of 8 or 16 entries.
func parseTheme(res gjson.Result) *theme.Theme {
	if !res.Exists() {
		return nil
	}
	fg := res.Get("fg").String()
	bg := res.Get("bg").String()
	palette := res.Get("palette").String()
	if fg == "" || bg == "" || palette == "" {
		return nil
	}
	th, err := theme.FromHeader(fg, bg, strings.Split(palette, ":"))
	if err != nil {
		return nil
	}
	return th
}
