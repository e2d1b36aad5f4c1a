package parser

import (
	"strings"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// the output procedure is recognized by spelling, it is never declared
const writelnName = "writeln"

// compoundStatement → 'begin' statement (';' statement)* 'end'
func (p *Parser) compoundStatement(followers Set) {
	if !p.enter(ruleCompound, followers) {
		return
	}

	p.next() // 'begin'

	starters := rules[ruleStatement].Starters
	inner := NewSet(lexer.Semicolon, lexer.End).Union(starters, followers)

	p.statement(inner)
	for p.tok.Kind == lexer.Semicolon || starters.Has(p.tok.Kind) {
		p.accept(lexer.Semicolon)
		p.statement(inner)
	}

	p.accept(lexer.End)
	p.leave(followers)
}

// statement → assignment | compoundStatement | ifStatement | whileStatement
// | 'writeln' '(' expression ')' | ε
func (p *Parser) statement(followers Set) {
	defer func() { p.depth-- }()
	if p.tooDeep(ruleStatement, followers) {
		return
	}

	starters := rules[ruleStatement].Starters

	// the empty statement is valid wherever a follower stands
	if !starters.Has(p.tok.Kind) && !followers.Has(p.tok.Kind) {
		p.report(rules[ruleStatement].Code)
		p.skipTo(starters.Union(followers))
	}

	if !starters.Has(p.tok.Kind) {
		return
	}

	switch p.tok.Kind {
	case lexer.Ident:
		if strings.EqualFold(p.tok.Text, writelnName) {
			p.writeln(followers)
		} else {
			p.assignment(followers)
		}

	case lexer.Begin:
		p.compoundStatement(followers)

	case lexer.If:
		p.ifStatement(followers)

	case lexer.While:
		p.whileStatement(followers)
	}

	p.leave(followers)
}

// assignment → variable ':=' expression
func (p *Parser) assignment(followers Set) {
	target := p.variable(follow(ruleVariable, followers))

	assign := p.tok
	p.accept(lexer.Assign)

	start := p.tok
	value := p.expression(followers)

	p.checkAssignment(target, value, assign, start)
}

// ifStatement → 'if' expression 'then' statement ['else' statement]
func (p *Parser) ifStatement(followers Set) {
	p.next() // 'if'

	start := p.tok
	cond := p.expression(NewSet(lexer.Then).Union(followers))
	p.checkCondition(cond, start)

	p.accept(lexer.Then)
	p.statement(NewSet(lexer.Else).Union(followers))

	if p.tok.Kind == lexer.Else {
		p.next()
		p.statement(followers)
	}
}

// whileStatement → 'while' expression 'do' statement
func (p *Parser) whileStatement(followers Set) {
	p.next() // 'while'

	start := p.tok
	cond := p.expression(NewSet(lexer.Do).Union(followers))
	p.checkCondition(cond, start)

	p.accept(lexer.Do)
	p.statement(followers)
}

// writeln '(' expression ')'
func (p *Parser) writeln(followers Set) {
	p.next()
	p.accept(lexer.LeftParen)
	p.expression(NewSet(lexer.RightParen).Union(followers))
	p.accept(lexer.RightParen)
}

// variable → ident ('[' expression (',' expression)* ']')*
//
// Only variables may be assigned; constants and type names are reported.
func (p *Parser) variable(followers Set) symbols.Type {
	if !p.enter(ruleVariable, followers) {
		return nil
	}

	tok := p.tok

	var typ symbols.Type

	id, ok := p.resolve(tok)
	switch {
	case !ok:
		p.undeclared(tok)
	case id.Class != symbols.ClassVar:
		p.reportAt(tok, diag.ErrNameMisuse)
	default:
		typ = id.Type
	}

	p.next()

	typ = p.selectors(typ, followers)
	p.leave(followers)

	return typ
}

// selectors parses the index lists following a variable name and returns
// the selected type. a[i][j] and a[i, j] select the same element.
func (p *Parser) selectors(typ symbols.Type, followers Set) symbols.Type {
	inner := NewSet(lexer.Comma, lexer.RightBracket).Union(followers)

	for p.tok.Kind == lexer.LeftBracket {
		p.next()

		for {
			start := p.tok
			index := p.expression(inner)
			typ = p.checkIndex(typ, index, start)

			if p.tok.Kind != lexer.Comma {
				break
			}

			p.next()
		}

		p.accept(lexer.RightBracket)
	}

	return typ
}
