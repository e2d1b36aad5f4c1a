// Package source holds the line-oriented collaborators of a compilation run:
// positions, the line reader feeding the lexer and the line echo hook used by
// the listing.
package source

import (
	"bufio"
	"io"
	"strings"
)

// maxLineLength bounds a single source line; longer lines are reported by
// the scanner as bufio.ErrTooLong.
const maxLineLength = 1 << 20

// Reader delivers the source one line at a time.
// ReadLine returns io.EOF once the input is exhausted.
type Reader interface {
	ReadLine() (string, error)
}

// LineSink receives every line consumed by the lexer, in order.
type LineSink interface {
	Line(number int, text string)
}

// LineReader adapts an io.Reader to a Reader.
type LineReader struct {
	scanner *bufio.Scanner
	count   int
}

func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	return &LineReader{scanner: scanner}
}

// NewStringReader is a shortcut over NewLineReader for in-memory sources.
func NewStringReader(text string) *LineReader {
	return NewLineReader(strings.NewReader(text))
}

func (r *LineReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		r.count++
		return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// Count returns the number of lines delivered so far.
func (r *LineReader) Count() int {
	return r.count
}

// Lines is a Reader over an already split source, used by the language
// server where the document text is held in memory.
type Lines struct {
	lines []string
	next  int
}

func NewLines(text string) *Lines {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	// a trailing newline does not open an extra line
	if size := len(lines); size > 0 && lines[size-1] == "" {
		lines = lines[:size-1]
	}

	return &Lines{lines: lines}
}

func (l *Lines) ReadLine() (string, error) {
	if l.next >= len(l.lines) {
		return "", io.EOF
	}

	line := l.lines[l.next]
	l.next++

	return line, nil
}
