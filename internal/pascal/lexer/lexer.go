// Package lexer turns the lines delivered by a source.Reader into tokens,
// one token per call to Next.
package lexer

import (
	"errors"
	"io"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// DefaultMaxInteger is the largest integer literal accepted when Options
// does not set one.
const DefaultMaxInteger = 32767

// ----------------------
// Lexer Types definition
// ----------------------

type Token struct {
	Kind Kind
	Text string // lexeme as written in the source
	Pos  source.Position

	// Symbol is set for identifiers.
	Symbol *symbols.Symbol
	// Int is the value of an integer constant, Char the value of a char constant.
	Int  int
	Char rune
}

// Width is the number of columns the lexeme spans, at least 1.
func (t Token) Width() int {
	if n := len([]rune(t.Text)); n > 0 {
		return n
	}

	return 1
}

type Options struct {
	// Names interns identifiers; a private interner is used when nil.
	Names *symbols.Interner
	// Lines is told about every line pulled from the source.
	Lines source.LineSink
	// Trace receives every recognized lexeme.
	Trace *TraceSink
	// FoldIdentifiers lower-cases identifiers before interning them.
	FoldIdentifiers bool
	// MaxInteger bounds integer literals, DefaultMaxInteger when zero.
	MaxInteger int
}

// Lexer is a pull tokenizer over a line source.
// Every call to Next advances the column or pulls a new line, so a run
// always terminates. Once the input is exhausted Next returns EOF forever.
type Lexer struct {
	src   source.Reader
	diags *diag.Collector
	opts  Options

	line   []rune
	lineNo int
	col    int // 0-based index of the next rune in line
	eof    bool
	err    error
	tokens int
}

func New(src source.Reader, diags *diag.Collector, opts Options) *Lexer {
	if opts.Names == nil {
		opts.Names = symbols.NewInterner()
	}

	if opts.MaxInteger <= 0 {
		opts.MaxInteger = DefaultMaxInteger
	}

	return &Lexer{
		src:   src,
		diags: diags,
		opts:  opts,
	}
}

// Next returns the next token of the source.
func (l *Lexer) Next() Token {
	for {
		if l.eof {
			return Token{Kind: EOF, Pos: l.pos()}
		}

		if l.col >= len(l.line) {
			l.pullLine()
			continue
		}

		start := l.pos()
		c := l.line[l.col]

		switch {
		case isSpace(c):
			l.col++
			continue

		case c == '{':
			l.skipComment(start, "}")
			continue

		case c == '(' && l.peek(1) == '*':
			l.skipComment(start, "*)")
			continue

		case isLetter(c):
			return l.emit(l.scanWord(start))

		case isDigit(c):
			return l.emit(l.scanNumber(start))

		case c == '\'':
			return l.emit(l.scanQuoted(start))
		}

		if kind, size, ok := l.scanOperator(); ok {
			text := string(l.line[l.col : l.col+size])
			l.col += size

			return l.emit(Token{Kind: kind, Text: text, Pos: start})
		}

		l.report(start, diag.ErrIllegalSymbol, 1)
		l.col++
	}
}

// Line returns the number of lines pulled so far.
func (l *Lexer) Line() int {
	return l.lineNo
}

// Tokens returns the number of tokens produced so far, EOF excluded.
func (l *Lexer) Tokens() int {
	return l.tokens
}

// Err returns the first read error other than io.EOF. Such an error ends the
// input as if the source were exhausted.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) Names() *symbols.Interner {
	return l.opts.Names
}

func (l *Lexer) emit(tok Token) Token {
	l.tokens++
	l.opts.Trace.Lexeme(tok.Text)

	return tok
}

func (l *Lexer) pullLine() {
	if l.eof {
		return
	}

	text, err := l.src.ReadLine()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
		}

		l.eof = true
		l.col = len(l.line)

		return
	}

	l.lineNo++
	l.line = []rune(text)
	l.col = 0

	if l.opts.Lines != nil {
		l.opts.Lines.Line(l.lineNo, text)
	}
}

func (l *Lexer) pos() source.Position {
	return source.Position{Line: l.lineNo, Column: l.col + 1}
}

func (l *Lexer) peek(offset int) rune {
	if i := l.col + offset; i < len(l.line) {
		return l.line[i]
	}

	return 0
}

func (l *Lexer) report(pos source.Position, code diag.Code, width int) {
	l.diags.Report(pos, code, width)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v' || c == '\r'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
