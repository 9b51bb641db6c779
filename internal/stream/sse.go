package stream

import (
	"bufio"
	"io"
	"strings"
)

// Frame is one dispatched Server-Sent Event.
type Frame struct {
	Event string
	Data  string
	ID    string
}

const defaultEvent = "message"

// readFrames parses an SSE body and calls emit for every complete frame.
// emit returns false to stop reading early. The returned error is the
// scanner's error; a clean EOF returns nil.
func readFrames(r io.Reader, maxEventBytes int, emit func(Frame) bool) error {
	scanner := bufio.NewScanner(r)
	if maxEventBytes <= 0 {
		maxEventBytes = 1024 * 1024
	}
	// The scanner's limit is the larger of max and the initial capacity.
	scanner.Buffer(make([]byte, 0, min(64*1024, maxEventBytes)), maxEventBytes)

	var (
		event   string
		id      string
		data    strings.Builder
		hasData bool
	)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if line == "" {
			if hasData {
				f := Frame{Event: event, Data: data.String(), ID: id}
				if f.Event == "" {
					f.Event = defaultEvent
				}
				if !emit(f) {
					return nil
				}
			}
			event = ""
			data.Reset()
			hasData = false
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			event = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		case "id":
			id = value
		}
		// retry and unknown fields are ignored
	}
	return scanner.Err()
}
