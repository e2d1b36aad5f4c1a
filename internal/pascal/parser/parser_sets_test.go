package parser

import (
	"slices"
	"testing"

	"github.com/pacer/pascheck/internal/pascal/lexer"
)

func TestSet_Operations(t *testing.T) {
	s := NewSet(lexer.Semicolon, lexer.With)

	if !s.Has(lexer.Semicolon) || !s.Has(lexer.With) {
		t.Error("members must be found")
	}

	if s.Has(lexer.Begin) || s.Has(lexer.Kind(-1)) || s.Has(lexer.Kind(lexer.Count)) {
		t.Error("non-members must not be found")
	}

	u := s.Union(NewSet(lexer.Begin), NewSet(lexer.EOF))
	if got := u.Kinds(); !slices.Equal(got, []lexer.Kind{lexer.EOF, lexer.Semicolon, lexer.Begin, lexer.With}) {
		t.Errorf("unexpected union %v", u)
	}

	if s.Has(lexer.Begin) {
		t.Error("Union must not modify its receiver")
	}

	if !NewSet().IsEmpty() || s.With(lexer.End).IsEmpty() {
		t.Error("IsEmpty mismatch")
	}

	if got := NewSet(lexer.Semicolon, lexer.End).String(); got != "{; end}" {
		t.Errorf("unexpected rendering %q", got)
	}
}

func TestRules_Table(t *testing.T) {
	for r := rule(0); r < ruleCount; r++ {
		info := rules[r]

		if info.Name == "" {
			t.Errorf("rule %d has no name", r)
		}

		if info.Starters.IsEmpty() {
			t.Errorf("%s has no starters", r)
		}

		if info.Starters.Has(lexer.EOF) {
			t.Errorf("%s must not start with end of input", r)
		}

		if !info.Code.Known() {
			t.Errorf("%s reports unknown code %d", r, info.Code)
		}
	}
}

func TestRules_Starters(t *testing.T) {
	data := []struct {
		Rule   rule
		Has    []lexer.Kind
		HasNot []lexer.Kind
	}{
		{
			Rule:   ruleStatement,
			Has:    []lexer.Kind{lexer.Ident, lexer.Begin, lexer.If, lexer.While},
			HasNot: []lexer.Kind{lexer.Semicolon, lexer.End, lexer.Else},
		},
		{
			Rule:   ruleExpression,
			Has:    []lexer.Kind{lexer.Plus, lexer.Minus, lexer.Not, lexer.Nil, lexer.LeftParen, lexer.StringConst},
			HasNot: []lexer.Kind{lexer.Star, lexer.RightParen},
		},
		{
			Rule:   ruleFactor,
			Has:    []lexer.Kind{lexer.Ident, lexer.IntConst},
			HasNot: []lexer.Kind{lexer.Plus, lexer.Minus},
		},
		{
			Rule:   ruleType,
			Has:    []lexer.Kind{lexer.Array, lexer.LeftParen, lexer.Ident, lexer.Minus},
			HasNot: []lexer.Kind{lexer.Semicolon},
		},
		{
			Rule:   ruleSimpleType,
			Has:    []lexer.Kind{lexer.LeftParen, lexer.CharConst},
			HasNot: []lexer.Kind{lexer.Array},
		},
		{
			Rule: ruleBlock,
			Has:  []lexer.Kind{lexer.Const, lexer.Type, lexer.Var, lexer.Begin},
		},
	}

	for _, d := range data {
		t.Run(d.Rule.String(), func(t *testing.T) {
			starters := rules[d.Rule].Starters

			for _, k := range d.Has {
				if !starters.Has(k) {
					t.Errorf("%s must start with %s", d.Rule, k)
				}
			}

			for _, k := range d.HasNot {
				if starters.Has(k) {
					t.Errorf("%s must not start with %s", d.Rule, k)
				}
			}
		})
	}
}

func TestFollow_Widens(t *testing.T) {
	caller := NewSet(lexer.End)
	got := follow(ruleDeclaration, caller)

	if !got.Has(lexer.Semicolon) || !got.Has(lexer.End) {
		t.Errorf("Expected natural and caller followers, got %s", got)
	}
}
