package types

import (
	"bufio"
	"errors"
	"io"
)

// MaxJSONLLineSize is the largest single JSONL line we accept (10MB).
// Transcript lines carrying thinking blocks or tool output routinely exceed
// bufio.Scanner's 64KB default.
const MaxJSONLLineSize = 10 * 1024 * 1024

// JSONLScanner reads a JSONL file line by line. Unlike bufio.Scanner it
// does not stop at a line longer than its limit: the line is discarded,
// counted in Oversized, and reading resumes at the next one.
type JSONLScanner struct {
	r         *bufio.Reader
	limit     int
	buf       []byte
	line      []byte
	err       error
	oversized int
}

// NewJSONLScanner returns a line scanner sized for Claude Code JSONL files.
func NewJSONLScanner(r io.Reader) *JSONLScanner {
	return newJSONLScanner(r, MaxJSONLLineSize)
}

func newJSONLScanner(r io.Reader, limit int) *JSONLScanner {
	return &JSONLScanner{r: bufio.NewReaderSize(r, 64*1024), limit: limit}
}

// Scan advances to the next line that fits the limit. It returns false at
// the end of input or on a read error.
func (s *JSONLScanner) Scan() bool {
	for s.err == nil {
		line, tooLong, err := s.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			s.err = err
			return false
		}
		eof := err != nil
		if eof {
			s.err = io.EOF
		}

		if tooLong {
			s.oversized++
			continue
		}
		if eof && len(line) == 0 {
			return false
		}
		s.line = line
		return true
	}
	return false
}

// readLine returns one line without its terminator. Bytes past the limit
// are read and dropped rather than buffered.
func (s *JSONLScanner) readLine() ([]byte, bool, error) {
	s.buf = s.buf[:0]
	tooLong := false
	for {
		chunk, err := s.r.ReadSlice('\n')
		if !tooLong {
			// +2 leaves room for a trailing "\r\n".
			if len(s.buf)+len(chunk) > s.limit+2 {
				tooLong = true
				s.buf = s.buf[:0]
			} else {
				s.buf = append(s.buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		line := dropLineEnd(s.buf)
		if len(line) > s.limit {
			tooLong = true
		}
		if tooLong {
			line = nil
		}
		return line, tooLong, err
	}
}

func dropLineEnd(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}

// Bytes returns the current line. It is only valid until the next Scan.
func (s *JSONLScanner) Bytes() []byte {
	return s.line
}

// Text returns the current line as a string.
func (s *JSONLScanner) Text() string {
	return string(s.line)
}

// Err returns the first read error, or nil at a clean end of input.
func (s *JSONLScanner) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

// Oversized is the number of lines skipped for exceeding the limit.
func (s *JSONLScanner) Oversized() int {
	return s.oversized
}
