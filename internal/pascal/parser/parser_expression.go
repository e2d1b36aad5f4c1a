package parser

import (
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// operand is the result of an expression rule: its type, nil when unknown,
// and its value when the expression is a single constant.
type operand struct {
	typ   symbols.Type
	value symbols.Value
}

// expression → simpleExpression [relOp simpleExpression]
func (p *Parser) expression(followers Set) operand {
	defer func() { p.depth-- }()
	if p.tooDeep(ruleExpression, followers) {
		return operand{}
	}

	if !p.enter(ruleExpression, followers) {
		return operand{}
	}

	left := p.simpleExpression(relOps.Union(followers))

	if relOps.Has(p.tok.Kind) {
		op := p.tok
		p.next()

		right := p.simpleExpression(followers)
		left = p.relation(op, left, right)
	}

	p.leave(followers)

	return left
}

// simpleExpression → [sign] term (addOp term)*
func (p *Parser) simpleExpression(followers Set) operand {
	inner := addOps.Union(followers)

	var sign *lexer.Token
	if signs.Has(p.tok.Kind) {
		tok := p.tok
		sign = &tok
		p.next()
	}

	left := p.term(inner)
	if sign != nil {
		left = p.signed(*sign, left)
	}

	for addOps.Has(p.tok.Kind) {
		op := p.tok
		p.next()

		right := p.term(inner)
		left = p.binary(op, left, right)
	}

	p.leave(followers)

	return left
}

// term → factor (mulOp factor)*
func (p *Parser) term(followers Set) operand {
	if !p.enter(ruleTerm, followers) {
		return operand{}
	}

	inner := follow(ruleFactor, followers)

	left := p.factor(inner)
	for mulOps.Has(p.tok.Kind) {
		op := p.tok
		p.next()

		right := p.factor(inner)
		left = p.binary(op, left, right)
	}

	p.leave(followers)

	return left
}

// factor → intc | floatc | charc | stringc | variable | constIdent
// | '(' expression ')' | 'not' factor | 'nil'
func (p *Parser) factor(followers Set) operand {
	if !p.enter(ruleFactor, followers) {
		return operand{}
	}

	var result operand

	switch tok := p.tok; tok.Kind {
	case lexer.IntConst:
		result = operand{typ: p.builtins.Integer, value: symbols.IntOf(tok.Int)}
		p.next()

	case lexer.FloatConst:
		result = operand{typ: p.builtins.Real}
		p.next()

	case lexer.CharConst:
		result = operand{typ: p.builtins.Char, value: symbols.CharOf(tok.Char)}
		p.next()

	case lexer.StringConst, lexer.Nil:
		p.next()

	case lexer.LeftParen:
		p.next()
		result = p.expression(NewSet(lexer.RightParen).Union(followers))
		p.accept(lexer.RightParen)

	case lexer.Not:
		p.next()
		start := p.tok
		result = p.not(p.factor(followers), start)

	case lexer.Ident:
		result = p.identifier(followers)
	}

	p.leave(followers)

	return result
}

// identifier is a factor naming a constant or a variable.
func (p *Parser) identifier(followers Set) operand {
	tok := p.tok

	id, ok := p.resolve(tok)
	switch {
	case !ok:
		p.undeclared(tok)
		p.next()

		return operand{typ: p.selectors(nil, followers)}

	case id.Class == symbols.ClassConst:
		p.next()
		return operand{typ: id.Type, value: id.Value}

	case id.Class == symbols.ClassType:
		p.reportAt(tok, diag.ErrNameMisuse)
		p.next()

		return operand{}

	default:
		p.next()
		return operand{typ: p.selectors(id.Type, followers)}
	}
}
