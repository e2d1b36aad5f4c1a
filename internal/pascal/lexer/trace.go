package lexer

import (
	"bufio"
	"io"
)

// TraceSink is the append-only lexeme log of a run. Each lexeme is written
// followed by '|'. A nil *TraceSink discards everything.
type TraceSink struct {
	w      *bufio.Writer
	closer io.Closer
	err    error
}

// NewTraceSink writes to w. When w is also an io.Closer it is closed by Close.
func NewTraceSink(w io.Writer) *TraceSink {
	sink := &TraceSink{w: bufio.NewWriter(w)}
	if closer, ok := w.(io.Closer); ok {
		sink.closer = closer
	}

	return sink
}

func (t *TraceSink) Lexeme(text string) {
	if t == nil || t.err != nil {
		return
	}

	if _, err := t.w.WriteString(text); err != nil {
		t.err = err
		return
	}

	t.err = t.w.WriteByte('|')
}

// Close flushes the log and releases the underlying writer.
// It returns the first write error encountered.
func (t *TraceSink) Close() error {
	if t == nil {
		return nil
	}

	if err := t.w.Flush(); err != nil && t.err == nil {
		t.err = err
	}

	if t.closer != nil {
		if err := t.closer.Close(); err != nil && t.err == nil {
			t.err = err
		}

		t.closer = nil
	}

	return t.err
}
