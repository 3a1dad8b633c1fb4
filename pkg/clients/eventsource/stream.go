package eventsource

import (
	"bufio"
	"io"
	"strings"
)

// Stream reads messages from a text/event-stream body
type Stream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

// NewStream returns a stream reading from body
func NewStream(body io.ReadCloser) *Stream {
	return &Stream{
		body:   body,
		reader: bufio.NewReaderSize(body, 64*1024),
	}
}

// Next returns the data of the next message; comments, event names, ids and retry hints are skipped.
// Data spread over multiple data lines is joined with newlines.
func (s *Stream) Next() ([]byte, error) {
	var data []string
	hasData := false

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return nil, io.EOF
			}
			if err != io.EOF {
				return nil, err
			}
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if err == io.EOF {
				return nil, io.EOF
			}
			if hasData {
				return []byte(strings.Join(data, "\n")), nil
			}
			continue
		}

		if strings.HasPrefix(line, ":") {
			// keepalive
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		if field == "data" {
			data = append(data, value)
			hasData = true
		}

		if err == io.EOF {
			// unterminated message
			return nil, io.EOF
		}
	}
}

// Close closes the underlying body
func (s *Stream) Close() error {
	return s.body.Close()
}
