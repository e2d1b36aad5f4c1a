package symbols

// Class is the role an identifier is declared with.
type Class int

const (
	ClassType Class = iota
	ClassConst
	ClassVar
)

func (c Class) String() string {
	switch c {
	case ClassType:
		return "type"
	case ClassConst:
		return "const"
	case ClassVar:
		return "var"
	default:
		return "unknown"
	}
}

// Identifier binds a Symbol to a role and a declared type.
// Value is only set for ClassConst.
type Identifier struct {
	Symbol *Symbol
	Class  Class
	Type   Type
	Value  Value
}

func (id *Identifier) Name() string {
	return id.Symbol.Name
}

// IdentifierTable holds the identifiers declared in a single scope.
// Names are unique within the table; enclosing scopes are not consulted.
type IdentifierTable struct {
	byName map[string]*Identifier
	order  []*Identifier
}

func NewIdentifierTable() *IdentifierTable {
	return &IdentifierTable{byName: make(map[string]*Identifier)}
}

// Insert adds id unless an identifier with the same name already exists.
// The first binding always wins.
func (t *IdentifierTable) Insert(id *Identifier) bool {
	name := id.Name()
	if _, exists := t.byName[name]; exists {
		return false
	}

	if id.Class == ClassType && id.Type != nil {
		setName(id.Type, name)
	}

	t.byName[name] = id
	t.order = append(t.order, id)

	return true
}

func (t *IdentifierTable) Lookup(name string) (*Identifier, bool) {
	id, ok := t.byName[name]
	return id, ok
}

func (t *IdentifierTable) Len() int {
	return len(t.order)
}

// All returns the identifiers in declaration order.
func (t *IdentifierTable) All() []*Identifier {
	return t.order
}

// TypeTable registers the types allocated while elaborating a scope.
// It is never queried by name.
type TypeTable struct {
	types []Type
}

func (t *TypeTable) Add(typ Type) Type {
	t.types = append(t.types, typ)
	return typ
}

func (t *TypeTable) Len() int {
	return len(t.types)
}

func (t *TypeTable) All() []Type {
	return t.types
}
