// Package parser is the recursive-descent syntactic analyzer. It drives the
// lexer token by token and checks the program semantically while parsing,
// filling the scope, identifier and type tables as declarations are met.
//
// Every grammar rule follows the same discipline: check the current token
// against the rule's starters and skip when it does not fit, parse the
// construct passing widened followers to the sub-rules, then check the
// current token against the caller's followers and skip when it does not
// fit. No error stops the run.
package parser

import (
	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// DefaultMaxDepth bounds the nesting of statements and expressions.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDepth limits recursion on nested statements and expressions,
	// DefaultMaxDepth when zero.
	MaxDepth int
}

// Result is what remains of a run once the source is consumed.
type Result struct {
	// Name is the program name, empty when the header is missing.
	Name     string
	Builtins *symbols.Builtins
	// Scopes is the final stack: the fictitious scope and the program scope.
	Scopes *symbols.Stack
	// Program is the scope holding the program's declarations.
	Program *symbols.Scope
}

type Parser struct {
	lex   *lexer.Lexer
	diags *diag.Collector
	tok   lexer.Token

	scopes   symbols.Stack
	builtins *symbols.Builtins
	name     string

	// position of the last diagnostic, to report at most one per token
	lastReport source.Position
	reported   bool

	maxDepth int
	depth    int
}

// Parse analyzes the whole source behind lex and reports into diags.
func Parse(lex *lexer.Lexer, diags *diag.Collector, opts Options) *Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	p := &Parser{
		lex:      lex,
		diags:    diags,
		maxDepth: opts.MaxDepth,
	}

	p.builtins = symbols.OpenFictitious(&p.scopes, lex.Names())
	p.next()
	p.program()

	return &Result{
		Name:     p.name,
		Builtins: p.builtins,
		Scopes:   &p.scopes,
		Program:  p.scopes.Current(),
	}
}

func (p *Parser) next() {
	p.tok = p.lex.Next()
}

// accept consumes the current token when it has the expected kind, and
// reports the kind's "expected" code otherwise without advancing.
func (p *Parser) accept(kind lexer.Kind) bool {
	if p.tok.Kind == kind {
		p.next()
		return true
	}

	p.report(kind.ExpectedCode())

	return false
}

// report attaches code to the current token.
func (p *Parser) report(code diag.Code) {
	p.reportAt(p.tok, code)
}

func (p *Parser) reportAt(tok lexer.Token, code diag.Code) {
	p.diagAt(tok.Pos, tok.Width(), code)
}

func (p *Parser) diagAt(pos source.Position, width int, code diag.Code) {
	if p.reported && p.lastReport == pos {
		return
	}

	p.reported = true
	p.lastReport = pos
	p.diags.Report(pos, code, width)
}

// skipTo advances until the current token belongs to set. It never moves
// past the end of input.
func (p *Parser) skipTo(set Set) {
	for !set.Has(p.tok.Kind) && p.tok.Kind != lexer.EOF {
		p.next()
	}
}

// enter performs the starter check of rule r and tells whether the rule
// can be parsed.
func (p *Parser) enter(r rule, followers Set) bool {
	starters := rules[r].Starters

	if !starters.Has(p.tok.Kind) {
		p.report(rules[r].Code)
		p.skipTo(starters.Union(followers))
	}

	return starters.Has(p.tok.Kind)
}

// leave performs the follower check closing a rule.
func (p *Parser) leave(followers Set) {
	if p.tok.Kind == lexer.EOF || followers.Has(p.tok.Kind) {
		return
	}

	p.report(diag.ErrUnexpected)
	p.skipTo(followers)
}

// follow widens the caller's followers with the natural followers of r.
func follow(r rule, followers Set) Set {
	return rules[r].Follow.Union(followers)
}

// tooDeep must be paired with a deferred p.depth-- by the caller.
func (p *Parser) tooDeep(r rule, followers Set) bool {
	p.depth++
	if p.depth <= p.maxDepth {
		return false
	}

	p.report(rules[r].Code)
	p.skipTo(followers)

	return true
}

// -------------
// Symbol tables
// -------------

func (p *Parser) resolve(tok lexer.Token) (*symbols.Identifier, bool) {
	return p.scopes.Resolve(tok.Symbol.Name)
}

// declare binds tok in the current scope. A name already declared in this
// scope is reported and the first binding is kept.
func (p *Parser) declare(tok lexer.Token, class symbols.Class, typ symbols.Type, value symbols.Value) bool {
	id := &symbols.Identifier{
		Symbol: tok.Symbol,
		Class:  class,
		Type:   typ,
		Value:  value,
	}

	if !p.scopes.Declare(id) {
		p.reportAt(tok, diag.ErrDuplicateName)
		return false
	}

	return true
}

// undeclared reports tok and binds it as an untyped variable so later uses
// of the same name stay silent.
func (p *Parser) undeclared(tok lexer.Token) {
	p.reportAt(tok, diag.ErrUndeclared)
	p.scopes.Declare(&symbols.Identifier{Symbol: tok.Symbol, Class: symbols.ClassVar})
}

// newType registers typ in the current scope.
func (p *Parser) newType(typ symbols.Type) {
	p.scopes.Current().Types.Add(typ)
}
