package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/source"
)

func isLetter(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

// scanWord reads a letter-led span and classifies it as keyword or identifier.
func (l *Lexer) scanWord(start source.Position) Token {
	begin := l.col
	for l.col < len(l.line) && (isLetter(l.line[l.col]) || isDigit(l.line[l.col])) {
		l.col++
	}

	text := string(l.line[begin:l.col])

	if kind, ok := LookupKeyword(text); ok {
		return Token{Kind: kind, Text: text, Pos: start}
	}

	name := text
	if l.opts.FoldIdentifiers {
		name = strings.ToLower(name)
	}

	return Token{
		Kind:   Ident,
		Text:   text,
		Pos:    start,
		Symbol: l.opts.Names.Intern(name, start),
	}
}

// scanNumber reads an unsigned integer or real literal.
//
//	digits [ '.' digits ] [ ('e'|'E') [sign] digits ]
//
// A '.' not followed by a digit ends the literal, so "1..5" is a subrange.
func (l *Lexer) scanNumber(start source.Position) Token {
	begin := l.col
	l.skipDigits()

	isReal := false
	malformed := false

	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		isReal = true
		l.col++
		l.skipDigits()
	}

	if c := l.peek(0); c == 'e' || c == 'E' {
		isReal = true
		l.col++

		if c := l.peek(0); c == '+' || c == '-' {
			l.col++
		}

		if isDigit(l.peek(0)) {
			l.skipDigits()
		} else {
			malformed = true
		}
	}

	text := string(l.line[begin:l.col])
	width := l.col - begin

	if !isReal {
		value, overflow := parseInteger(text, l.opts.MaxInteger)
		if overflow {
			l.report(start, diag.ErrIntegerOverflow, width)
			value = 0
		}

		return Token{Kind: IntConst, Text: text, Pos: start, Int: value}
	}

	switch {
	case malformed:
		l.report(start, diag.ErrRealLiteral, width)
	default:
		if _, err := strconv.ParseFloat(text, 64); errors.Is(err, strconv.ErrRange) {
			l.report(start, diag.ErrRealOverflow, width)
		}
	}

	return Token{Kind: FloatConst, Text: text, Pos: start}
}

func (l *Lexer) skipDigits() {
	for l.col < len(l.line) && isDigit(l.line[l.col]) {
		l.col++
	}
}

// parseInteger converts a run of decimal digits, reporting values above limit.
// The bound is checked before each step, so no limit lets the value wrap.
func parseInteger(digits string, limit int) (int, bool) {
	value := 0
	for _, d := range digits {
		digit := int(d - '0')
		if digit > limit || value > (limit-digit)/10 {
			return 0, true
		}

		value = value*10 + digit
	}

	return value, false
}

// scanQuoted reads a quote-delimited literal. A doubled quote stands for one
// quote. Exactly one enclosed character makes a char constant, anything else
// a string constant. An unterminated literal runs to the end of the line.
func (l *Lexer) scanQuoted(start source.Position) Token {
	begin := l.col
	l.col++ // opening quote

	var content []rune
	closed := false

	for l.col < len(l.line) {
		c := l.line[l.col]
		l.col++

		if c != '\'' {
			content = append(content, c)
			continue
		}

		if l.peek(0) == '\'' {
			content = append(content, '\'')
			l.col++

			continue
		}

		closed = true

		break
	}

	text := string(l.line[begin:l.col])

	if !closed {
		l.report(start, diag.ErrCharLiteral, l.col-begin)
	}

	if len(content) == 1 {
		return Token{Kind: CharConst, Text: text, Pos: start, Char: content[0]}
	}

	return Token{Kind: StringConst, Text: text, Pos: start}
}

// skipComment skips from the opening delimiter at the cursor up to and
// including closing, pulling lines as needed.
func (l *Lexer) skipComment(start source.Position, closing string) {
	if closing == "*)" {
		l.col += 2
	} else {
		l.col++
	}

	for !l.eof {
		if l.col >= len(l.line) {
			l.pullLine()
			continue
		}

		if l.at(closing) {
			l.col += len(closing)
			return
		}

		l.col++
	}

	l.report(start, diag.ErrUnclosedComment, len(closing))
}

// at reports whether the line continues with the ASCII text s at the cursor.
func (l *Lexer) at(s string) bool {
	for i, c := range s {
		if l.peek(i) != c {
			return false
		}
	}

	return true
}

var singleOperators = map[rune]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'=': Equal,
	')': RightParen,
	'[': LeftBracket,
	']': RightBracket,
	',': Comma,
	';': Semicolon,
	'^': Caret,
}

// scanOperator recognizes the operator at the cursor with one character of
// lookahead, returning its kind and length in runes.
func (l *Lexer) scanOperator() (Kind, int, bool) {
	c, next := l.peek(0), l.peek(1)

	switch c {
	case ':':
		if next == '=' {
			return Assign, 2, true
		}

		return Colon, 1, true

	case '<':
		switch next {
		case '=':
			return LessEqual, 2, true
		case '>':
			return NotEqual, 2, true
		}

		return Less, 1, true

	case '>':
		if next == '=' {
			return GreaterEqual, 2, true
		}

		return Greater, 1, true

	case '.':
		if next == '.' {
			return TwoPoints, 2, true
		}

		return Point, 1, true

	case '(':
		return LeftParen, 1, true
	}

	if kind, ok := singleOperators[c]; ok {
		return kind, 1, true
	}

	return 0, 0, false
}
