package diag

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Listing writes the annotated source echo of a run.
//
// Every consumed line is written as " NNN  text". Diagnostics reported while
// a line was current are written after it, as a caret line padded to the
// column followed by a description line:
//
//	*001*     ^ошибка код 14
//	***** должен идти символ ';'
type Listing struct {
	w       *bufio.Writer
	diags   *Collector
	written int
	errNo   int
	err     error
}

func NewListing(w io.Writer, diags *Collector) *Listing {
	return &Listing{
		w:     bufio.NewWriter(w),
		diags: diags,
	}
}

// Line echoes a source line, after the diagnostics still pending.
func (l *Listing) Line(number int, text string) {
	l.flushDiagnostics()
	l.printf(" %3d  %s\n", number, text)
}

// Close writes the remaining diagnostics and flushes the output.
func (l *Listing) Close() error {
	l.flushDiagnostics()

	if err := l.w.Flush(); err != nil && l.err == nil {
		l.err = err
	}

	return l.err
}

// Errors returns how many diagnostics have been written so far.
func (l *Listing) Errors() int {
	return l.errNo
}

func (l *Listing) flushDiagnostics() {
	for _, d := range l.diags.From(l.written) {
		l.errNo++
		l.printf("*%03d* %s^ошибка код %d\n", l.errNo, caretPadding(d.Pos.Column), d.Code)
		l.printf("***** %s\n", d.Code.Description())
	}

	l.written = l.diags.Len()
}

func (l *Listing) printf(format string, args ...any) {
	if l.err != nil {
		return
	}

	_, l.err = fmt.Fprintf(l.w, format, args...)
}

func caretPadding(column int) string {
	if column <= 1 {
		return ""
	}

	return strings.Repeat(" ", column-1)
}
