package lexer

import (
	"strings"

	"github.com/pacer/pascheck/internal/pascal/diag"
)

// keywords maps the lower-cased spelling of every reserved word to its kind.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, With-And+1)
	for k := And; k <= With; k++ {
		m[kindNames[k]] = k
	}

	return m
}()

// LookupKeyword classifies a letter-led span. Keywords match case-insensitively.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(text)]
	return k, ok
}

// expectedCodes are the diagnostics reported when a required token is missing.
var expectedCodes = map[Kind]diag.Code{
	Ident:        diag.ErrIdentExpected,
	Program:      diag.ErrProgramExpected,
	RightParen:   diag.ErrRightParExpected,
	Colon:        diag.ErrColonExpected,
	Of:           diag.ErrOfExpected,
	LeftParen:    diag.ErrLeftParExpected,
	LeftBracket:  diag.ErrLBracketExpected,
	RightBracket: diag.ErrRBracketExpected,
	End:          diag.ErrEndExpected,
	Semicolon:    diag.ErrSemicolonExpected,
	IntConst:     diag.ErrIntegerExpected,
	Equal:        diag.ErrEqualExpected,
	Begin:        diag.ErrBeginExpected,
	Comma:        diag.ErrCommaExpected,
	Assign:       diag.ErrAssignExpected,
	Then:         diag.ErrThenExpected,
	Do:           diag.ErrDoExpected,
	Point:        diag.ErrPointExpected,
	TwoPoints:    diag.ErrTwoPointsExpected,
}

// ExpectedCode returns the diagnostic for a missing token of kind k.
func (k Kind) ExpectedCode() diag.Code {
	if code, ok := expectedCodes[k]; ok {
		return code
	}

	return diag.ErrIllegalSymbol
}
