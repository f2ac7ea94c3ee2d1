package asciicast

import (
	"bufio"

	"github.com/tidwall/gjson"
)

// openV3 parses an asciicast v3 recording. The header nests terminal
// geometry under "term", event times are intervals since the previous
// event, and lines starting with '#' are comments.
func openV3(headerLine string, scanner *bufio.Scanner) (*Cast, error) {
	if !gjson.Valid(headerLine) {
		return nil, ErrUnsupportedVersion
	}
	h := gjson.Parse(headerLine)
	if h.Get("version").Int() != 3 {
		return nil, ErrUnsupportedVersion
	}

	term := h.Get("term")
	header := Header{
		Version:       3,
		Cols:          int(term.Get("cols").Int()),
		Rows:          int(term.Get("rows").Int()),
		IdleTimeLimit: h.Get("idle_time_limit").Float(),
		Theme:         parseTheme(term.Get("theme")),
	}

	return &Cast{
		Header: header,
		Events: &eventLines{scanner: scanner, absolute: false},
	}, nil
}
