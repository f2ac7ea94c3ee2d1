package asciicast

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/gifcast/gifcast/frames"
)

// openV2 parses an asciicast v2 recording: a JSON header line followed by
// one JSON array per event, [time, code, data], with absolute times.
func openV2(headerLine string, scanner *bufio.Scanner) (*Cast, error) {
	if !gjson.Valid(headerLine) {
		return nil, ErrUnsupportedVersion
	}
	h := gjson.Parse(headerLine)
	if h.Get("version").Int() != 2 {
		return nil, ErrUnsupportedVersion
	}

	cols := int(h.Get("width").Int())
	rows := int(h.Get("height").Int())

	header := Header{
		Version:       2,
		Cols:          cols,
		Rows:          rows,
		IdleTimeLimit: h.Get("idle_time_limit").Float(),
		Theme:         parseTheme(h.Get("theme")),
	}

	return &Cast{
		Header: header,
		Events: &eventLines{scanner: scanner, absolute: true},
	}, nil
}

// eventLines streams v2/v3 event lines. Events with codes other than
// output and resize are skipped; blank lines and v3 comment lines are
// ignored.
type eventLines struct {
	scanner  *bufio.Scanner
	absolute bool    // v2 times are absolute, v3 times are intervals
	prevTime float64 // running total for interval times
	line     int
	done     bool
}

func (e *eventLines) Next() (frames.Event, error) {
	if e.done {
		return frames.Event{}, io.EOF
	}
	for e.scanner.Scan() {
		e.line++
		text := e.scanner.Text()
		if text == "" || text[0] == '#' {
			continue
		}
		if !gjson.Valid(text) {
			e.done = true
			return frames.Event{}, fmt.Errorf("asciicast: malformed event at line %d", e.line+1)
		}
		arr := gjson.Parse(text).Array()
		if len(arr) < 3 {
			e.done = true
			return frames.Event{}, fmt.Errorf("asciicast: malformed event at line %d", e.line+1)
		}

		t := arr[0].Float()
		if !e.absolute {
			t += e.prevTime
		}
		e.prevTime = t

		code := arr[1].String()
		data := arr[2].String()

		switch code {
		case "o":
			return frames.Event{Time: t, Data: data}, nil
		case "r":
			if seq, ok := resizeSequence(data); ok {
				return frames.Event{Time: t, Data: seq}, nil
			}
		}
		// Input, markers and unknown codes don't affect the screen.
	}
	e.done = true
	if err := e.scanner.Err(); err != nil {
		return frames.Event{}, fmt.Errorf("asciicast: read failed after line %d: %w", e.line, err)
	}
	return frames.Event{}, io.EOF
}
