package parser

import (
	"strings"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
)

// every token kind must fit in a Set
const _ = uint(2*64 - lexer.Count)

// Set is a bit set of token kinds.
type Set [2]uint64

func NewSet(kinds ...lexer.Kind) Set {
	var s Set
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}

	return s
}

func (s Set) Has(k lexer.Kind) bool {
	if k < 0 || int(k) >= lexer.Count {
		return false
	}

	return s[k/64]&(1<<(k%64)) != 0
}

func (s Set) Union(others ...Set) Set {
	for _, o := range others {
		s[0] |= o[0]
		s[1] |= o[1]
	}

	return s
}

func (s Set) With(kinds ...lexer.Kind) Set {
	return s.Union(NewSet(kinds...))
}

func (s Set) IsEmpty() bool {
	return s[0] == 0 && s[1] == 0
}

// Kinds lists the members in ascending order.
func (s Set) Kinds() []lexer.Kind {
	var kinds []lexer.Kind
	for k := lexer.Kind(0); int(k) < lexer.Count; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

func (s Set) String() string {
	names := make([]string, 0, len(s.Kinds()))
	for _, k := range s.Kinds() {
		names = append(names, k.String())
	}

	return "{" + strings.Join(names, " ") + "}"
}

// -----------------------
// Starters and followers
// -----------------------

type rule int

const (
	ruleProgram rule = iota
	ruleBlock
	ruleDeclaration
	ruleConst
	ruleType
	ruleSimpleType
	ruleCompound
	ruleStatement
	ruleVariable
	ruleExpression
	ruleTerm
	ruleFactor

	ruleCount
)

// ruleInfo describes a nonterminal: the tokens that may start it, the tokens
// that naturally follow it, and the diagnostic reported when it is missing.
type ruleInfo struct {
	Name     string
	Starters Set
	Follow   Set
	Code     diag.Code
}

var (
	constStarters = NewSet(lexer.IntConst, lexer.FloatConst, lexer.CharConst, lexer.StringConst,
		lexer.Ident, lexer.Plus, lexer.Minus)
	factorStarters = NewSet(lexer.Ident, lexer.IntConst, lexer.FloatConst, lexer.CharConst,
		lexer.StringConst, lexer.LeftParen, lexer.Not, lexer.Nil)

	signs  = NewSet(lexer.Plus, lexer.Minus)
	addOps = NewSet(lexer.Plus, lexer.Minus, lexer.Or)
	mulOps = NewSet(lexer.Star, lexer.Slash, lexer.Div, lexer.Mod, lexer.And)
	relOps = NewSet(lexer.Equal, lexer.NotEqual, lexer.Less, lexer.LessEqual,
		lexer.Greater, lexer.GreaterEqual)
)

var rules = [ruleCount]ruleInfo{
	ruleProgram: {
		Name:     "program",
		Starters: NewSet(lexer.Program),
		Follow:   NewSet(lexer.EOF),
		Code:     diag.ErrProgramExpected,
	},
	ruleBlock: {
		Name:     "block",
		Starters: NewSet(lexer.Const, lexer.Type, lexer.Var, lexer.Begin),
		Follow:   NewSet(lexer.Point),
		Code:     diag.ErrDeclarationPart,
	},
	ruleDeclaration: {
		Name:     "declaration",
		Starters: NewSet(lexer.Ident),
		Follow:   NewSet(lexer.Semicolon),
		Code:     diag.ErrIdentExpected,
	},
	ruleConst: {
		Name:     "constant",
		Starters: constStarters,
		Follow:   NewSet(lexer.Semicolon, lexer.TwoPoints),
		Code:     diag.ErrConstant,
	},
	ruleType: {
		Name:     "type",
		Starters: constStarters.With(lexer.LeftParen, lexer.Array),
		Follow:   NewSet(lexer.Semicolon),
		Code:     diag.ErrType,
	},
	ruleSimpleType: {
		Name:     "simple type",
		Starters: constStarters.With(lexer.LeftParen),
		Follow:   NewSet(lexer.Comma, lexer.RightBracket),
		Code:     diag.ErrType,
	},
	ruleCompound: {
		Name:     "compound statement",
		Starters: NewSet(lexer.Begin),
		Follow:   NewSet(lexer.Semicolon, lexer.End, lexer.Point),
		Code:     diag.ErrBeginExpected,
	},
	ruleStatement: {
		Name:     "statement",
		Starters: NewSet(lexer.Ident, lexer.Begin, lexer.If, lexer.While),
		Follow:   NewSet(lexer.Semicolon, lexer.End, lexer.Else),
		Code:     diag.ErrStatement,
	},
	ruleVariable: {
		Name:     "variable",
		Starters: NewSet(lexer.Ident),
		Follow:   NewSet(lexer.Assign),
		Code:     diag.ErrStatement,
	},
	ruleExpression: {
		Name:     "expression",
		Starters: factorStarters.Union(signs),
		Follow:   NewSet(lexer.RightParen, lexer.RightBracket, lexer.Comma, lexer.Then, lexer.Do),
		Code:     diag.ErrExpression,
	},
	ruleTerm: {
		Name:     "term",
		Starters: factorStarters,
		Follow:   addOps.Union(relOps),
		Code:     diag.ErrStatement,
	},
	ruleFactor: {
		Name:     "factor",
		Starters: factorStarters,
		Follow:   mulOps,
		Code:     diag.ErrStatement,
	},
}

func (r rule) String() string {
	if r < 0 || r >= ruleCount {
		return "rule(?)"
	}

	return rules[r].Name
}
