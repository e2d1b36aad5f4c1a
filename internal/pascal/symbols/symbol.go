// Package symbols holds the tables shared by the lexer and the analyzer:
// the symbol interner, the per-scope identifier and type tables, the scope
// stack and the type model.
package symbols

import "github.com/pacer/pascheck/internal/pascal/source"

// Symbol is the canonical instance of an identifier spelling.
// Two symbols are equal iff they are the same pointer.
type Symbol struct {
	Name string
	Pos  source.Position // first occurrence
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}

	return s.Name
}

// Interner maps spellings to their Symbol for the lifetime of a run.
type Interner struct {
	symbols map[string]*Symbol
}

func NewInterner() *Interner {
	return &Interner{symbols: make(map[string]*Symbol)}
}

// Intern returns the Symbol registered for name, creating it at pos when
// the name has not been seen yet.
func (in *Interner) Intern(name string, pos source.Position) *Symbol {
	if sym, ok := in.symbols[name]; ok {
		return sym
	}

	sym := &Symbol{Name: name, Pos: pos}
	in.symbols[name] = sym

	return sym
}

// Lookup returns the Symbol of name without registering it.
func (in *Interner) Lookup(name string) (*Symbol, bool) {
	sym, ok := in.symbols[name]
	return sym, ok
}

func (in *Interner) Len() int {
	return len(in.symbols)
}
