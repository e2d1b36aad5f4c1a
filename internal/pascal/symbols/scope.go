package symbols

// Scope is one nesting level of name visibility.
// Enclosing is the index of the parent scope in its Stack, -1 for the outermost.
type Scope struct {
	Identifiers *IdentifierTable
	Types       *TypeTable
	Enclosing   int
}

// Stack keeps the active path of scopes, innermost last.
// The zero value is an empty stack.
type Stack struct {
	scopes []*Scope
}

// Open pushes a new scope nested inside the current one and returns it.
func (s *Stack) Open() *Scope {
	scope := &Scope{
		Identifiers: NewIdentifierTable(),
		Types:       &TypeTable{},
		Enclosing:   len(s.scopes) - 1,
	}

	s.scopes = append(s.scopes, scope)

	return scope
}

// Close pops the innermost scope. Closing an empty stack is a no-op.
func (s *Stack) Close() {
	if len(s.scopes) == 0 {
		return
	}

	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Current returns the innermost scope, or nil when the stack is empty.
func (s *Stack) Current() *Scope {
	if len(s.scopes) == 0 {
		return nil
	}

	return s.scopes[len(s.scopes)-1]
}

func (s *Stack) Depth() int {
	return len(s.scopes)
}

// Declare inserts id into the current scope.
func (s *Stack) Declare(id *Identifier) bool {
	scope := s.Current()
	if scope == nil {
		return false
	}

	return scope.Identifiers.Insert(id)
}

// Resolve looks name up in the current scope and then in each enclosing
// scope outward, so inner bindings shadow outer ones.
func (s *Stack) Resolve(name string) (*Identifier, bool) {
	for i := len(s.scopes) - 1; i >= 0; i = s.scopes[i].Enclosing {
		if id, ok := s.scopes[i].Identifiers.Lookup(name); ok {
			return id, true
		}
	}

	return nil, false
}
