package parser

import (
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// constant → [sign] (intc | floatc | ident) | charc | stringc
//
// The returned value is set for integer, char and enum constants.
// Real and string constants carry none.
func (p *Parser) constant(followers Set) (symbols.Type, symbols.Value) {
	if !p.enter(ruleConst, followers) {
		return nil, symbols.Value{}
	}

	var (
		typ   symbols.Type
		value symbols.Value
	)

	sign := p.tok
	signed := signs.Has(sign.Kind)
	if signed {
		p.next()
	}

	switch tok := p.tok; tok.Kind {
	case lexer.IntConst:
		typ, value = p.builtins.Integer, symbols.IntOf(tok.Int)
		p.next()

	case lexer.FloatConst:
		typ = p.builtins.Real
		p.next()

	case lexer.CharConst:
		typ, value = p.builtins.Char, symbols.CharOf(tok.Char)
		p.next()

	case lexer.StringConst:
		p.next()

	case lexer.Ident:
		id, ok := p.resolve(tok)
		switch {
		case !ok:
			p.undeclared(tok)
		case id.Class != symbols.ClassConst:
			p.reportAt(tok, diag.ErrNameMisuse)
		default:
			typ, value = id.Type, id.Value
		}

		p.next()

	default:
		p.report(diag.ErrConstant)
	}

	if signed && !symbols.IsUnknown(typ) {
		switch {
		case !p.builtins.IsNumeric(typ):
			p.reportAt(sign, diag.ErrAdditiveOperands)
			typ, value = nil, symbols.Value{}
		case sign.Kind == lexer.Minus && value.Kind == symbols.IntValue:
			value.Int = -value.Int
		}
	}

	p.leave(followers)

	return typ, value
}

// typ → simpleType | 'array' '[' simpleType (',' simpleType)* ']' 'of' typ
func (p *Parser) typ(followers Set) symbols.Type {
	if !p.enter(ruleType, followers) {
		return nil
	}

	var typ symbols.Type
	if p.tok.Kind == lexer.Array {
		typ = p.arrayType(followers)
	} else {
		typ = p.simpleType(followers)
	}

	p.leave(followers)

	return typ
}

// simpleType → '(' ident (',' ident)* ')' | const '..' const | ident
func (p *Parser) simpleType(followers Set) symbols.Type {
	if !p.enter(ruleSimpleType, followers) {
		return nil
	}

	var typ symbols.Type

	switch {
	case p.tok.Kind == lexer.LeftParen:
		typ = p.enumType(followers)

	case p.tok.Kind == lexer.Ident && p.isTypeName(p.tok):
		id, _ := p.resolve(p.tok)
		typ = id.Type
		p.next()

	default:
		typ = p.subrangeType(followers)
	}

	p.leave(followers)

	return typ
}

func (p *Parser) isTypeName(tok lexer.Token) bool {
	id, ok := p.resolve(tok)
	return ok && id.Class == symbols.ClassType
}

// enumType declares every member as a constant of the new type, in order.
func (p *Parser) enumType(followers Set) symbols.Type {
	enum := &symbols.Enum{}
	p.newType(enum)

	p.next() // '('

	for {
		if p.tok.Kind != lexer.Ident {
			p.accept(lexer.Ident)
			break
		}

		member := p.tok
		if p.declare(member, symbols.ClassConst, enum, symbols.EnumOf(member.Symbol)) {
			enum.Members = append(enum.Members, member.Symbol)
		}

		p.next()

		if p.tok.Kind != lexer.Comma {
			break
		}

		p.next()
	}

	p.accept(lexer.RightParen)

	return enum
}

// subrangeType → const '..' const
func (p *Parser) subrangeType(followers Set) symbols.Type {
	low := p.tok

	lowType, lowValue := p.constant(NewSet(lexer.TwoPoints).Union(followers))

	// a misplaced name in type position has been reported already
	if p.tok.Kind != lexer.TwoPoints && low.Kind == lexer.Ident && lowType == nil {
		return nil
	}

	p.accept(lexer.TwoPoints)

	highType, highValue := p.constant(followers)

	return p.newSubrange(low.Pos, low.Width(), lowType, lowValue, highType, highValue)
}

// newSubrange allocates the subrange type. Bounds are recorded only when both
// share an ordinal base type and min < max; otherwise the subrange keeps a
// nil base and is treated as unknown.
func (p *Parser) newSubrange(
	pos source.Position,
	width int,
	lowType symbols.Type,
	low symbols.Value,
	highType symbols.Type,
	high symbols.Value,
) *symbols.Subrange {
	sub := &symbols.Subrange{}
	p.newType(sub)

	if symbols.IsUnknown(lowType) || symbols.IsUnknown(highType) {
		return sub
	}

	base := symbols.Base(lowType)

	lo, okLo := symbols.Ordinal(low, base)
	hi, okHi := symbols.Ordinal(high, base)

	if base != symbols.Base(highType) || base == p.builtins.Real || !okLo || !okHi || lo >= hi {
		p.diagAt(pos, width, diag.ErrSubrange)
		return sub
	}

	sub.Base, sub.Min, sub.Max = base, low, high

	return sub
}

// arrayType → 'array' '[' simpleType (',' simpleType)* ']' 'of' typ
func (p *Parser) arrayType(followers Set) symbols.Type {
	arr := &symbols.Array{}
	p.newType(arr)

	p.next() // 'array'
	p.accept(lexer.LeftBracket)

	inner := NewSet(lexer.Comma, lexer.RightBracket, lexer.Of).Union(followers)

	for {
		start := p.tok

		index := p.simpleType(inner)
		if !p.isIndexType(index) {
			p.reportAt(start, diag.ErrType)
		}

		arr.Indexes = append(arr.Indexes, index)

		if p.tok.Kind != lexer.Comma {
			break
		}

		p.next()
	}

	p.accept(lexer.RightBracket)
	p.accept(lexer.Of)

	arr.Element = p.typ(followers)

	return arr
}

// isIndexType accepts every ordinal type and the unknown type.
func (p *Parser) isIndexType(t symbols.Type) bool {
	if symbols.IsUnknown(t) {
		return true
	}

	if _, ok := t.(*symbols.Array); ok {
		return false
	}

	return symbols.Base(t) != p.builtins.Real
}
