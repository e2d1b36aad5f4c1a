package symbols

import (
	"strconv"
	"strings"
)

type TypeKind int

const (
	KindScalar TypeKind = iota
	KindEnum
	KindSubrange
	KindArray
)

// Type is one of *Scalar, *Enum, *Subrange or *Array.
//
// Types are compared by identity: every declaration allocates a fresh
// instance, so two textually identical declarations never compare equal.
// The nil Type is the "unknown" type produced by failed constructs; it is
// compatible with everything so a single error does not cascade.
type Type interface {
	Kind() TypeKind
	String() string
}

// Scalar is an opaque built-in atomic type (integer, real, char).
type Scalar struct {
	Name string
}

func (s *Scalar) Kind() TypeKind { return KindScalar }
func (s *Scalar) String() string { return s.Name }

// Enum is an ordered sequence of members; a member's ordinal is its index.
type Enum struct {
	Name    string
	Members []*Symbol
}

func (e *Enum) Kind() TypeKind { return KindEnum }

func (e *Enum) String() string {
	if e.Name != "" {
		return e.Name
	}

	names := make([]string, 0, len(e.Members))
	for _, member := range e.Members {
		names = append(names, member.Name)
	}

	return "(" + strings.Join(names, ", ") + ")"
}

// Ordinal returns the index of member, or -1 when it does not belong to e.
func (e *Enum) Ordinal(member *Symbol) int {
	for i, m := range e.Members {
		if m == member {
			return i
		}
	}

	return -1
}

// Subrange restricts an ordinal base type to Min..Max.
// Base is nil when the declared bounds were rejected; such a subrange stays
// usable but is never checked.
type Subrange struct {
	Name string
	Base Type
	Min  Value
	Max  Value
}

func (s *Subrange) Kind() TypeKind { return KindSubrange }

func (s *Subrange) String() string {
	if s.Name != "" {
		return s.Name
	}

	if s.Base == nil {
		return "<invalid subrange>"
	}

	return s.Min.String() + ".." + s.Max.String()
}

// Bounds returns the ordinals of Min and Max.
func (s *Subrange) Bounds() (lo, hi int, ok bool) {
	if s.Base == nil {
		return 0, 0, false
	}

	lo, okLo := Ordinal(s.Min, s.Base)
	hi, okHi := Ordinal(s.Max, s.Base)

	return lo, hi, okLo && okHi
}

// Array has one index type per dimension and a single element type.
type Array struct {
	Name    string
	Indexes []Type
	Element Type

	rest *Array
}

func (a *Array) Kind() TypeKind { return KindArray }

// Indexed returns the type selected by the first index: the element type for
// a one-dimensional array, otherwise the array over the remaining indexes.
// The same instance is returned on every call.
func (a *Array) Indexed() Type {
	if len(a.Indexes) <= 1 {
		return a.Element
	}

	if a.rest == nil {
		a.rest = &Array{Indexes: a.Indexes[1:], Element: a.Element}
	}

	return a.rest
}

func (a *Array) String() string {
	if a.Name != "" {
		return a.Name
	}

	indexes := make([]string, 0, len(a.Indexes))
	for _, index := range a.Indexes {
		indexes = append(indexes, TypeString(index))
	}

	return "array[" + strings.Join(indexes, ", ") + "] of " + TypeString(a.Element)
}

// TypeString is String with a readable rendering of the unknown type.
func TypeString(t Type) string {
	if t == nil {
		return "<unknown>"
	}

	return t.String()
}

// IsUnknown reports whether t is the unknown type or behaves like it.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}

	if sub, ok := t.(*Subrange); ok {
		return sub.Base == nil
	}

	return false
}

// Base returns the base type of a subrange and t itself otherwise.
func Base(t Type) Type {
	if sub, ok := t.(*Subrange); ok {
		return sub.Base
	}

	return t
}

// setName names an anonymous type after the declaration that binds it.
func setName(t Type, name string) {
	switch typ := t.(type) {
	case *Enum:
		if typ.Name == "" {
			typ.Name = name
		}
	case *Subrange:
		if typ.Name == "" {
			typ.Name = name
		}
	case *Array:
		if typ.Name == "" {
			typ.Name = name
		}
	}
}

type ValueKind int

const (
	NoValue ValueKind = iota
	IntValue
	CharValue
	EnumValue
)

// Value is the literal value of a constant. Exactly one of Int, Char and
// Enum is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Int  int
	Char rune
	Enum *Symbol
}

func IntOf(v int) Value        { return Value{Kind: IntValue, Int: v} }
func CharOf(r rune) Value      { return Value{Kind: CharValue, Char: r} }
func EnumOf(sym *Symbol) Value { return Value{Kind: EnumValue, Enum: sym} }

func (v Value) IsSet() bool {
	return v.Kind != NoValue
}

func (v Value) String() string {
	switch v.Kind {
	case IntValue:
		return strconv.Itoa(v.Int)
	case CharValue:
		return "'" + string(v.Char) + "'"
	case EnumValue:
		return v.Enum.String()
	default:
		return "<none>"
	}
}

// Ordinal returns the position of v in the ordering of its type t:
// numeric order for integers, code order for chars, declaration order for
// enum members.
func Ordinal(v Value, t Type) (int, bool) {
	switch v.Kind {
	case IntValue:
		return v.Int, true
	case CharValue:
		return int(v.Char), true
	case EnumValue:
		enum, ok := Base(t).(*Enum)
		if !ok {
			return 0, false
		}

		ordinal := enum.Ordinal(v.Enum)
		return ordinal, ordinal >= 0
	default:
		return 0, false
	}
}
