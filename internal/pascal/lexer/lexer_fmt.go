package lexer

import (
	"fmt"
	"strings"
)

func (t Token) String() string {
	return fmt.Sprintf("{ \"Kind\": %q, \"Pos\": %q, \"Text\": %q }", t.Kind, t.Pos, t.Text)
}

// Tokenize drains a lexer and returns every token up to, but excluding, EOF.
func Tokenize(l *Lexer) []Token {
	var tokens []Token
	for tok := l.Next(); tok.Kind != EOF; tok = l.Next() {
		tokens = append(tokens, tok)
	}

	return tokens
}

// Kinds renders the kinds of tokens, space separated.
func Kinds(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, tok.Kind.String())
	}

	return strings.Join(parts, " ")
}
