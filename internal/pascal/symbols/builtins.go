package symbols

import "github.com/pacer/pascheck/internal/pascal/source"

// Builtins are the predefined types shared by every scope of a run.
type Builtins struct {
	Boolean *Enum
	Integer *Scalar
	Real    *Scalar
	Char    *Scalar

	False *Symbol
	True  *Symbol
}

// OpenFictitious pushes the outermost scope holding boolean (false, true),
// integer, real and char, and returns the allocated types.
func OpenFictitious(stack *Stack, names *Interner) *Builtins {
	scope := stack.Open()

	var none source.Position

	b := &Builtins{
		Integer: &Scalar{Name: "integer"},
		Real:    &Scalar{Name: "real"},
		Char:    &Scalar{Name: "char"},
		False:   names.Intern("false", none),
		True:    names.Intern("true", none),
	}

	b.Boolean = &Enum{Members: []*Symbol{b.False, b.True}}

	for _, typ := range []Type{b.Boolean, b.Integer, b.Real, b.Char} {
		scope.Types.Add(typ)
	}

	declare := func(name string, class Class, typ Type, value Value) {
		scope.Identifiers.Insert(&Identifier{
			Symbol: names.Intern(name, none),
			Class:  class,
			Type:   typ,
			Value:  value,
		})
	}

	declare("boolean", ClassType, b.Boolean, Value{})
	declare("integer", ClassType, b.Integer, Value{})
	declare("real", ClassType, b.Real, Value{})
	declare("char", ClassType, b.Char, Value{})
	declare("false", ClassConst, b.Boolean, EnumOf(b.False))
	declare("true", ClassConst, b.Boolean, EnumOf(b.True))

	return b
}

// IsNumeric reports whether t is integer or real, looking through subranges.
func (b *Builtins) IsNumeric(t Type) bool {
	base := Base(t)
	return base == b.Integer || base == b.Real
}

func (b *Builtins) IsBoolean(t Type) bool {
	return Base(t) == b.Boolean
}

func (b *Builtins) IsChar(t Type) bool {
	return Base(t) == b.Char
}

func (b *Builtins) IsInteger(t Type) bool {
	return Base(t) == b.Integer
}

func (b *Builtins) IsReal(t Type) bool {
	return Base(t) == b.Real
}
