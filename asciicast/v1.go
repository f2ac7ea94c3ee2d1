package asciicast

import (
	"bufio"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gifcast/gifcast/frames"
)

// openV1 parses an asciicast v1 recording: one JSON document with the
// whole stdout stream embedded as [delay, data] pairs. Delays are
// intervals and are accumulated into absolute times.
func openV1(firstLine string, scanner *bufio.Scanner) (*Cast, error) {
	var sb strings.Builder
	sb.WriteString(firstLine)
	for scanner.Scan() {
		sb.WriteString("\n")
		sb.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := sb.String()
	if !gjson.Valid(doc) {
		return nil, ErrUnsupportedVersion
	}
	root := gjson.Parse(doc)
	if root.Get("version").Int() != 1 {
		return nil, ErrUnsupportedVersion
	}

	header := Header{
		Version: 1,
		Cols:    int(root.Get("width").Int()),
		Rows:    int(root.Get("height").Int()),
	}

	var events []frames.Event
	var t float64
	for _, pair := range root.Get("stdout").Array() {
		arr := pair.Array()
		if len(arr) != 2 {
			continue
		}
		t += arr[0].Float()
		events = append(events, frames.Event{Time: t, Data: arr[1].String()})
	}

	return &Cast{
		Header: header,
		Events: frames.SliceSource(events),
	}, nil
}
