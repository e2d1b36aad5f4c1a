package lexer

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/testutil"
)

func lex(text string, opts Options) ([]Token, []diag.Diagnostic) {
	diags := diag.NewCollector()
	tokens := Tokenize(New(source.NewStringReader(text), diags, opts))

	return tokens, diags.All()
}

type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) Line(number int, text string) {
	r.lines = append(r.lines, text)
}

func TestNext_Kinds(t *testing.T) {
	data := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{
			Name:     "header",
			Input:    "program p;",
			Expected: "program identifier ;",
		},
		{
			Name:     "declaration",
			Input:    "var x, y: integer;",
			Expected: "var identifier , identifier : identifier ;",
		},
		{
			Name:     "operators",
			Input:    ":= : <= <> < >= > .. . ( ) [ ] , ; = + - * / ^",
			Expected: ":= : <= <> < >= > .. . ( ) [ ] , ; = + - * / ^",
		},
		{
			Name:     "operators without spaces",
			Input:    "a:=b<>c;",
			Expected: "identifier := identifier <> identifier ;",
		},
		{
			Name:     "keywords ignore case",
			Input:    "BEGIN End wHiLe Div mod",
			Expected: "begin end while div mod",
		},
		{
			Name:     "subrange",
			Input:    "1..5",
			Expected: "integer constant .. integer constant",
		},
		{
			Name:     "reals",
			Input:    "3.14 2e10 1.5E-3",
			Expected: "real constant real constant real constant",
		},
		{
			Name:     "program end",
			Input:    "end.",
			Expected: "end .",
		},
		{
			Name:     "quoted",
			Input:    "'a' 'abc' '''' ''",
			Expected: "char constant string constant char constant string constant",
		},
		{
			Name:     "comments",
			Input:    "a { comment } b (* another *) c",
			Expected: "identifier identifier identifier",
		},
		{
			Name:     "identifiers with digits and underscores",
			Input:    "_tmp x1 счет",
			Expected: "identifier identifier identifier",
		},
	}

	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			tokens, diags := lex(d.Input, Options{})

			testutil.AssertNoErrors(t, diags)

			if got := Kinds(tokens); got != d.Expected {
				t.Errorf("Expected %q, got %q", d.Expected, got)
			}
		})
	}
}

func TestNext_Values(t *testing.T) {
	tokens, diags := lex("1..32767 'q' ''''", Options{})
	testutil.AssertNoErrors(t, diags)

	if tokens[0].Int != 1 || tokens[2].Int != 32767 {
		t.Errorf("unexpected integer values %d and %d", tokens[0].Int, tokens[2].Int)
	}

	if tokens[3].Char != 'q' {
		t.Errorf("Expected char 'q', got %q", tokens[3].Char)
	}

	if tokens[4].Char != '\'' || tokens[4].Text != "''''" {
		t.Errorf("Expected a quote char written as '''', got %q from %q", tokens[4].Char, tokens[4].Text)
	}
}

func TestNext_Errors(t *testing.T) {
	data := []struct {
		Name     string
		Input    string
		Code     diag.Code
		Column   int
		Expected string
	}{
		{"illegal character", "a ? b", diag.ErrIllegalSymbol, 3, "identifier identifier"},
		{"integer overflow", "x 40000", diag.ErrIntegerOverflow, 3, "identifier integer constant"},
		{"malformed exponent", "1e+ x", diag.ErrRealLiteral, 1, "real constant identifier"},
		{"real overflow", "1e999", diag.ErrRealOverflow, 1, "real constant"},
		{"unterminated literal", "c := 'abc", diag.ErrCharLiteral, 6, "identifier := string constant"},
		{"unclosed comment", "a { never closed", diag.ErrUnclosedComment, 3, "identifier"},
		{"unclosed paren comment", "a (* never", diag.ErrUnclosedComment, 3, "identifier"},
	}

	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			tokens, diags := lex(d.Input, Options{})

			testutil.AssertCodes(t, diags, d.Code)

			if len(diags) == 1 && diags[0].Pos.Column != d.Column {
				t.Errorf("Expected column %d, got %d", d.Column, diags[0].Pos.Column)
			}

			if got := Kinds(tokens); got != d.Expected {
				t.Errorf("Expected %q, got %q", d.Expected, got)
			}
		})
	}
}

func TestNext_MaxInteger(t *testing.T) {
	tokens, diags := lex("40000", Options{MaxInteger: 1 << 20})

	testutil.AssertNoErrors(t, diags)

	if tokens[0].Int != 40000 {
		t.Errorf("Expected 40000, got %d", tokens[0].Int)
	}
}

func TestParseInteger_Limits(t *testing.T) {
	data := []struct {
		Name     string
		Digits   string
		Limit    int
		Value    int
		Overflow bool
	}{
		{"at limit", "32767", 32767, 32767, false},
		{"above limit", "32768", 32767, 0, true},
		{"leading zeros", "0007", 7, 7, false},
		{"digit above small limit", "9", 7, 0, true},
		{"max int", strconv.Itoa(math.MaxInt), math.MaxInt, math.MaxInt, false},
		{"above max int", strconv.Itoa(math.MaxInt) + "0", math.MaxInt, 0, true},
		{"wrapping digits", "99999999999999999999", math.MaxInt, 0, true},
	}

	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			value, overflow := parseInteger(d.Digits, d.Limit)
			if value != d.Value || overflow != d.Overflow {
				t.Errorf("parseInteger(%s, %d) = %d, %v; want %d, %v",
					d.Digits, d.Limit, value, overflow, d.Value, d.Overflow)
			}
		})
	}

	tokens, diags := lex("99999999999999999999", Options{MaxInteger: math.MaxInt})
	testutil.AssertCodes(t, diags, diag.ErrIntegerOverflow)

	if tokens[0].Kind != IntConst || tokens[0].Int != 0 {
		t.Errorf("Expected an integer constant valued 0, got %s", tokens[0])
	}
}

func TestNext_Positions(t *testing.T) {
	tokens, _ := lex("program p;\n  begin\n\n end.", Options{})

	data := []struct {
		Index int
		Pos   source.Position
	}{
		{0, source.Position{Line: 1, Column: 1}},
		{1, source.Position{Line: 1, Column: 9}},
		{3, source.Position{Line: 2, Column: 3}},
		{4, source.Position{Line: 4, Column: 2}},
		{5, source.Position{Line: 4, Column: 5}},
	}

	for _, d := range data {
		if got := tokens[d.Index].Pos; got != d.Pos {
			t.Errorf("token %d (%s): expected %s, got %s", d.Index, tokens[d.Index].Text, d.Pos, got)
		}
	}
}

func TestNext_EOFForever(t *testing.T) {
	l := New(source.NewStringReader("x"), diag.NewCollector(), Options{})

	if tok := l.Next(); tok.Kind != Ident {
		t.Fatalf("Expected identifier, got %s", tok)
	}

	for range 3 {
		if tok := l.Next(); tok.Kind != EOF {
			t.Fatalf("Expected EOF, got %s", tok)
		}
	}

	if l.Tokens() != 1 {
		t.Errorf("Expected 1 token, got %d", l.Tokens())
	}
}

func TestNext_TerminatesOnGarbage(t *testing.T) {
	input := "?? ' { \n (* ` ~ ! @ # $ % & \n '' 9e 1. .. ::= <<>> }"
	l := New(source.NewStringReader(input), diag.NewCollector(), Options{})

	for calls := 0; ; calls++ {
		if calls > len(input)+1 {
			t.Fatalf("lexer did not reach EOF after %d calls", calls)
		}

		if l.Next().Kind == EOF {
			break
		}
	}
}

func TestNext_MultilineComment(t *testing.T) {
	lines := &lineRecorder{}
	diags := diag.NewCollector()
	l := New(source.NewStringReader("a {\n ignored\n} b"), diags, Options{Lines: lines})

	tokens := Tokenize(l)

	if got := Kinds(tokens); got != "identifier identifier" {
		t.Errorf("unexpected tokens %q", got)
	}

	if tokens[1].Pos.Line != 3 {
		t.Errorf("Expected b on line 3, got %s", tokens[1].Pos)
	}

	if len(lines.lines) != 3 || lines.lines[1] != " ignored" {
		t.Errorf("every line must be echoed, got %q", lines.lines)
	}

	if l.Line() != 3 {
		t.Errorf("Expected 3 lines, got %d", l.Line())
	}
}

func TestNext_Trace(t *testing.T) {
	var out strings.Builder
	trace := NewTraceSink(&out)

	lex("x := 1; { skipped }\nwriteln('hi')", Options{Trace: trace})

	if err := trace.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "x|:=|1|;|writeln|(|'hi'|)|"
	if out.String() != want {
		t.Errorf("Expected trace %q, got %q", want, out.String())
	}
}

func TestNext_Interning(t *testing.T) {
	tokens, _ := lex("abc ABC abc", Options{})

	if tokens[0].Symbol != tokens[2].Symbol {
		t.Error("same spelling must yield the same symbol")
	}

	if tokens[0].Symbol == tokens[1].Symbol {
		t.Error("identifiers are case-sensitive by default")
	}

	folded, _ := lex("abc ABC", Options{FoldIdentifiers: true})
	if folded[0].Symbol != folded[1].Symbol || folded[1].Symbol.Name != "abc" {
		t.Error("folded identifiers must share the lower-case symbol")
	}

	if folded[1].Text != "ABC" {
		t.Errorf("the lexeme keeps its spelling, got %q", folded[1].Text)
	}
}

func TestKind_ExpectedCode(t *testing.T) {
	data := []struct {
		Kind Kind
		Code diag.Code
	}{
		{Semicolon, diag.ErrSemicolonExpected},
		{Assign, diag.ErrAssignExpected},
		{Then, diag.ErrThenExpected},
		{Ident, diag.ErrIdentExpected},
		{Point, diag.ErrPointExpected},
		{Star, diag.ErrIllegalSymbol},
	}

	for _, d := range data {
		if got := d.Kind.ExpectedCode(); got != d.Code {
			t.Errorf("%s: expected code %d, got %d", d.Kind, d.Code, got)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	for k := And; k <= With; k++ {
		got, ok := LookupKeyword(strings.ToUpper(k.String()))
		if !ok || got != k {
			t.Errorf("keyword %s not recognized", k)
		}
	}

	if _, ok := LookupKeyword("writeln"); ok {
		t.Error("writeln is an ordinary identifier")
	}
}
