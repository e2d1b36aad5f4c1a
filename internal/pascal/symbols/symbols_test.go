package symbols

import (
	"testing"

	"github.com/pacer/pascheck/internal/pascal/source"
)

func TestInterner_OneInstancePerName(t *testing.T) {
	in := NewInterner()

	first := in.Intern("count", source.Position{Line: 1, Column: 5})
	second := in.Intern("count", source.Position{Line: 9, Column: 2})

	if first != second {
		t.Fatal("Expected the same Symbol for the same spelling")
	}

	if second.Pos.Line != 1 {
		t.Errorf("Expected position of the first occurrence, got %s", second.Pos)
	}

	if in.Intern("Count", source.Position{}) == first {
		t.Error("Spellings differing in case must intern separately")
	}

	if in.Len() != 2 {
		t.Errorf("Expected 2 symbols, got %d", in.Len())
	}

	if _, ok := in.Lookup("missing"); ok {
		t.Error("Lookup must not register new names")
	}
}

func TestIdentifierTable_FirstBindingWins(t *testing.T) {
	in := NewInterner()
	table := NewIdentifierTable()
	integer := &Scalar{Name: "integer"}
	char := &Scalar{Name: "char"}

	x := in.Intern("x", source.Position{})

	if !table.Insert(&Identifier{Symbol: x, Class: ClassConst, Type: integer, Value: IntOf(1)}) {
		t.Fatal("first insertion must succeed")
	}

	if table.Insert(&Identifier{Symbol: x, Class: ClassVar, Type: char}) {
		t.Fatal("duplicate insertion must fail")
	}

	id, ok := table.Lookup("x")
	if !ok {
		t.Fatal("x must resolve")
	}

	if id.Class != ClassConst || id.Type != integer || id.Value.Int != 1 {
		t.Errorf("Expected the first binding, got %s %s %s", id.Class, TypeString(id.Type), id.Value)
	}

	if table.Len() != 1 {
		t.Errorf("Expected 1 identifier, got %d", table.Len())
	}
}

func TestIdentifierTable_NamesAnonymousTypes(t *testing.T) {
	in := NewInterner()
	table := NewIdentifierTable()

	colors := &Enum{Members: []*Symbol{in.Intern("red", source.Position{}), in.Intern("blue", source.Position{})}}
	if colors.String() != "(red, blue)" {
		t.Errorf("unexpected anonymous enum name %q", colors.String())
	}

	table.Insert(&Identifier{Symbol: in.Intern("color", source.Position{}), Class: ClassType, Type: colors})

	if colors.String() != "color" {
		t.Errorf("Expected the type to take its declared name, got %q", colors.String())
	}
}

func TestStack_Shadowing(t *testing.T) {
	in := NewInterner()
	var stack Stack

	builtins := OpenFictitious(&stack, in)
	stack.Open()

	x := in.Intern("x", source.Position{})
	stack.Declare(&Identifier{Symbol: x, Class: ClassVar, Type: builtins.Integer})

	inner := stack.Open()
	if inner.Enclosing != 1 {
		t.Fatalf("Expected enclosing index 1, got %d", inner.Enclosing)
	}

	if !stack.Declare(&Identifier{Symbol: x, Class: ClassVar, Type: builtins.Char}) {
		t.Fatal("shadowing declaration must succeed in the inner scope")
	}

	id, _ := stack.Resolve("x")
	if id.Type != builtins.Char {
		t.Errorf("Expected inner binding, got %s", TypeString(id.Type))
	}

	stack.Close()

	id, _ = stack.Resolve("x")
	if id.Type != builtins.Integer {
		t.Errorf("Expected outer binding after close, got %s", TypeString(id.Type))
	}

	if stack.Depth() != 2 {
		t.Errorf("Expected depth 2, got %d", stack.Depth())
	}

	if _, ok := stack.Resolve("y"); ok {
		t.Error("y was never declared")
	}
}

func TestStack_CloseEmpty(t *testing.T) {
	var stack Stack
	stack.Close()

	if stack.Current() != nil || stack.Depth() != 0 {
		t.Error("empty stack must stay empty")
	}

	if stack.Declare(&Identifier{Symbol: &Symbol{Name: "x"}}) {
		t.Error("declaring without a scope must fail")
	}
}

func TestBuiltins(t *testing.T) {
	in := NewInterner()
	var stack Stack
	b := OpenFictitious(&stack, in)

	data := []struct {
		Name  string
		Class Class
		Type  Type
	}{
		{"boolean", ClassType, b.Boolean},
		{"integer", ClassType, b.Integer},
		{"real", ClassType, b.Real},
		{"char", ClassType, b.Char},
		{"false", ClassConst, b.Boolean},
		{"true", ClassConst, b.Boolean},
	}

	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			id, ok := stack.Resolve(d.Name)
			if !ok {
				t.Fatalf("%s must be predefined", d.Name)
			}

			if id.Class != d.Class || id.Type != d.Type {
				t.Errorf("unexpected binding %s %s", id.Class, TypeString(id.Type))
			}
		})
	}

	if b.Boolean.String() != "boolean" {
		t.Errorf("Expected boolean to be named, got %q", b.Boolean.String())
	}

	if b.Boolean.Ordinal(b.True) != 1 || b.Boolean.Ordinal(b.False) != 0 {
		t.Error("false < true")
	}

	if stack.Current().Types.Len() != 4 {
		t.Errorf("Expected 4 built-in types, got %d", stack.Current().Types.Len())
	}
}

func TestTypeIdentity(t *testing.T) {
	a := &Subrange{Base: &Scalar{Name: "integer"}, Min: IntOf(1), Max: IntOf(5)}
	b := &Subrange{Base: a.Base, Min: IntOf(1), Max: IntOf(5)}

	if Type(a) == Type(b) {
		t.Error("textually identical declarations must be distinct types")
	}

	if Base(a) != Base(b) {
		t.Error("both subranges share the integer base")
	}
}

func TestSubrangeBounds(t *testing.T) {
	in := NewInterner()
	red := in.Intern("red", source.Position{})
	green := in.Intern("green", source.Position{})
	blue := in.Intern("blue", source.Position{})
	colors := &Enum{Members: []*Symbol{red, green, blue}}

	data := []struct {
		Name   string
		Sub    *Subrange
		Lo, Hi int
		Ok     bool
	}{
		{"integer", &Subrange{Base: &Scalar{Name: "integer"}, Min: IntOf(-3), Max: IntOf(7)}, -3, 7, true},
		{"char", &Subrange{Base: &Scalar{Name: "char"}, Min: CharOf('a'), Max: CharOf('z')}, 'a', 'z', true},
		{"enum", &Subrange{Base: colors, Min: EnumOf(green), Max: EnumOf(blue)}, 1, 2, true},
		{"rejected", &Subrange{Min: IntOf(5), Max: IntOf(1)}, 0, 0, false},
	}

	for _, d := range data {
		t.Run(d.Name, func(t *testing.T) {
			lo, hi, ok := d.Sub.Bounds()
			if ok != d.Ok || lo != d.Lo || hi != d.Hi {
				t.Errorf("Expected (%d, %d, %v), got (%d, %d, %v)", d.Lo, d.Hi, d.Ok, lo, hi, ok)
			}
		})
	}

	if !IsUnknown(data[3].Sub) || IsUnknown(data[0].Sub) || !IsUnknown(nil) {
		t.Error("only nil and rejected subranges are unknown")
	}
}
