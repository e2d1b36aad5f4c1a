package parser

import (
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// program → 'program' ident ';' block '.'
func (p *Parser) program() {
	p.scopes.Open()

	followers := rules[ruleProgram].Follow
	if !p.enter(ruleProgram, followers) {
		return
	}

	p.next()

	if p.tok.Kind == lexer.Ident {
		p.name = p.tok.Symbol.Name
	}

	p.accept(lexer.Ident)
	p.accept(lexer.Semicolon)
	p.block(rules[ruleBlock].Follow)
	p.accept(lexer.Point)

	if p.tok.Kind != lexer.EOF {
		p.report(diag.ErrUnexpected)
		p.skipTo(followers)
	}
}

// block → constPart typePart varPart compoundStatement
//
// Each part is optional and parsed once, in this order: a part met after a
// later one fails the follower check of the part before it.
func (p *Parser) block(followers Set) {
	if !p.enter(ruleBlock, followers) {
		return
	}

	p.constPart(NewSet(lexer.Type, lexer.Var, lexer.Begin).Union(followers))
	p.typePart(NewSet(lexer.Var, lexer.Begin).Union(followers))
	p.varPart(NewSet(lexer.Begin).Union(followers))

	p.compoundStatement(followers)
	p.leave(followers)
}

// constPart → ['const' (ident '=' const ';')+]
func (p *Parser) constPart(followers Set) {
	p.declarationPart(lexer.Const, followers, p.constDeclaration)
}

// typePart → ['type' (ident '=' type ';')+]
func (p *Parser) typePart(followers Set) {
	p.declarationPart(lexer.Type, followers, p.typeDeclaration)
}

// varPart → ['var' (identList ':' type ';')+]
func (p *Parser) varPart(followers Set) {
	p.declarationPart(lexer.Var, followers, p.varDeclaration)
}

// declarationPart parses one optional section opened by keyword: at least one
// declaration, then as many as start with an identifier. A section keyword
// ends the declarations; the follower check of the part reports it when it
// is out of place.
func (p *Parser) declarationPart(keyword lexer.Kind, followers Set, declaration func(Set)) {
	if p.tok.Kind != keyword {
		return
	}

	p.next()

	inner := rules[ruleDeclaration].Starters.Union(followers).With(lexer.Const, lexer.Type, lexer.Var)

	declaration(inner)
	for p.tok.Kind == lexer.Ident {
		declaration(inner)
	}

	p.leave(followers)
}

func (p *Parser) constDeclaration(followers Set) {
	if !p.enter(ruleDeclaration, followers) {
		return
	}

	name := p.tok
	p.next()
	p.accept(lexer.Equal)

	typ, value := p.constant(follow(ruleDeclaration, followers))
	p.declare(name, symbols.ClassConst, typ, value)

	p.accept(lexer.Semicolon)
	p.leave(followers)
}

func (p *Parser) typeDeclaration(followers Set) {
	if !p.enter(ruleDeclaration, followers) {
		return
	}

	name := p.tok
	p.next()
	p.accept(lexer.Equal)

	typ := p.typ(follow(ruleDeclaration, followers))
	p.declare(name, symbols.ClassType, typ, symbols.Value{})

	p.accept(lexer.Semicolon)
	p.leave(followers)
}

func (p *Parser) varDeclaration(followers Set) {
	if !p.enter(ruleDeclaration, followers) {
		return
	}

	names := []lexer.Token{p.tok}
	p.next()

	for p.tok.Kind == lexer.Comma {
		p.next()

		if p.tok.Kind != lexer.Ident {
			p.accept(lexer.Ident)
			break
		}

		names = append(names, p.tok)
		p.next()
	}

	p.accept(lexer.Colon)

	typ := p.typ(follow(ruleDeclaration, followers))
	for _, name := range names {
		p.declare(name, symbols.ClassVar, typ, symbols.Value{})
	}

	p.accept(lexer.Semicolon)
	p.leave(followers)
}
