package parser

import (
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// Operands are checked on their base type, so a subrange of integer is an
// integer here. An unknown operand is compatible with everything: the error
// that produced it has already been reported.

// binary types the additive and multiplicative operators.
func (p *Parser) binary(op lexer.Token, left, right operand) operand {
	l, r := symbols.Base(left.typ), symbols.Base(right.typ)
	b := p.builtins

	switch op.Kind {
	case lexer.And, lexer.Or:
		if l == nil || r == nil {
			return operand{typ: b.Boolean}
		}

		if l != b.Boolean || r != b.Boolean {
			p.reportAt(op, diag.ErrLogicalOperands)
			return operand{}
		}

		return operand{typ: b.Boolean}

	case lexer.Div, lexer.Mod:
		if l == nil || r == nil {
			return operand{}
		}

		if l != b.Integer || r != b.Integer {
			p.reportAt(op, diag.ErrDivModOperands)
			return operand{}
		}

		return operand{typ: b.Integer}
	}

	if l == nil || r == nil {
		return operand{}
	}

	if !b.IsNumeric(l) || !b.IsNumeric(r) {
		p.reportAt(op, arithmeticCodes[op.Kind])
		return operand{}
	}

	if l == b.Real || r == b.Real {
		return operand{typ: b.Real}
	}

	return operand{typ: b.Integer}
}

var arithmeticCodes = map[lexer.Kind]diag.Code{
	lexer.Plus:  diag.ErrAdditiveOperands,
	lexer.Minus: diag.ErrAdditiveOperands,
	lexer.Star:  diag.ErrMulOperands,
	lexer.Slash: diag.ErrSlashOperands,
}

// signed types a leading + or -. A negated integer constant keeps its value.
func (p *Parser) signed(sign lexer.Token, x operand) operand {
	if symbols.IsUnknown(x.typ) {
		return operand{}
	}

	if !p.builtins.IsNumeric(x.typ) {
		p.reportAt(sign, diag.ErrAdditiveOperands)
		return operand{}
	}

	result := operand{typ: symbols.Base(x.typ), value: x.value}
	if sign.Kind == lexer.Minus && x.value.Kind == symbols.IntValue {
		result.value.Int = -x.value.Int
	}

	return result
}

func (p *Parser) not(x operand, at lexer.Token) operand {
	b := p.builtins

	if !symbols.IsUnknown(x.typ) && !b.IsBoolean(x.typ) {
		p.reportAt(at, diag.ErrLogicalOperands)
		return operand{}
	}

	return operand{typ: b.Boolean}
}

type category int

const (
	categoryNone category = iota
	categoryNumeric
	categoryChar
	categoryBoolean
)

func (p *Parser) categoryOf(t symbols.Type) category {
	b := p.builtins

	switch {
	case b.IsNumeric(t):
		return categoryNumeric
	case b.IsChar(t):
		return categoryChar
	case b.IsBoolean(t):
		return categoryBoolean
	default:
		return categoryNone
	}
}

// relation types a relational operator. The result is boolean even when the
// operands do not compare.
func (p *Parser) relation(op lexer.Token, left, right operand) operand {
	result := operand{typ: p.builtins.Boolean}

	if symbols.IsUnknown(left.typ) || symbols.IsUnknown(right.typ) {
		return result
	}

	l, r := p.categoryOf(left.typ), p.categoryOf(right.typ)
	if l == categoryNone || l != r {
		p.reportAt(op, diag.ErrRelationTypes)
	}

	return result
}

// assignable reports whether a value of type value may be stored into a
// location of type target. The relation is directional: real accepts
// integer, a subrange accepts its base type, and every type accepts itself.
// A subrange value counts as its base type.
func (p *Parser) assignable(target, value symbols.Type) bool {
	if symbols.IsUnknown(target) || symbols.IsUnknown(value) || target == value {
		return true
	}

	b := p.builtins
	base := symbols.Base(value)

	if target == b.Real && (base == b.Integer || base == b.Real) {
		return true
	}

	if sub, ok := target.(*symbols.Subrange); ok {
		return base == sub.Base
	}

	return target == base
}

// checkRange reports a constant value falling outside the bounds of a
// subrange target.
func (p *Parser) checkRange(target symbols.Type, value operand, at lexer.Token) {
	sub, ok := target.(*symbols.Subrange)
	if !ok || !value.value.IsSet() {
		return
	}

	lo, hi, ok := sub.Bounds()
	if !ok {
		return
	}

	v, ok := symbols.Ordinal(value.value, sub.Base)
	if ok && (v < lo || v > hi) {
		p.reportAt(at, diag.ErrOutOfRange)
	}
}

// checkAssignment reports an incompatible assignment at the ':=' token, and
// an out of range constant at the start of the assigned expression.
func (p *Parser) checkAssignment(target symbols.Type, value operand, assign, start lexer.Token) {
	if !p.assignable(target, value.typ) {
		p.reportAt(assign, diag.ErrTypeMismatch)
		return
	}

	p.checkRange(target, value, start)
}

// checkCondition reports a non boolean if or while condition.
func (p *Parser) checkCondition(cond operand, start lexer.Token) {
	if symbols.IsUnknown(cond.typ) || p.builtins.IsBoolean(cond.typ) {
		return
	}

	p.reportAt(start, diag.ErrTypeMismatch)
}

// checkIndex selects the component of typ designated by one index.
func (p *Parser) checkIndex(typ symbols.Type, index operand, start lexer.Token) symbols.Type {
	if symbols.IsUnknown(typ) {
		return nil
	}

	arr, ok := typ.(*symbols.Array)
	if !ok {
		p.reportAt(start, diag.ErrNotArray)
		return nil
	}

	if indexType := arr.Indexes[0]; !p.assignable(indexType, index.typ) {
		p.reportAt(start, diag.ErrTypeMismatch)
	} else {
		p.checkRange(indexType, index, start)
	}

	return arr.Indexed()
}
