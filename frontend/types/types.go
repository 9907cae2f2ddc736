package types

import (
	"fmt"
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/ir"
	"strconv"
	"strings"
)

var panicf = ilerr.Panicf

// Visibility says whether a value is part of the public inputs of the circuit
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) prefix() string {
	if v == Public {
		return "pub "
	}
	return ""
}

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

type Signedness uint8

const (
	Unsigned Signedness = iota
	Signed
)

func (s Signedness) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}

// ArraySize is either a fixed length or Variable
type ArraySize struct {
	length   uint64
	variable bool
}

var VariableSize = ArraySize{variable: true}

func FixedSize(length uint64) ArraySize { return ArraySize{length: length} }

func (s ArraySize) IsFixed() bool { return !s.variable }

// Len returns the length of a fixed size
func (s ArraySize) Len() (uint64, bool) { return s.length, !s.variable }

// IsSubtypeOf is true when an array of size s can be used where one of size other is expected:
// a fixed size fits a variable one, and fixed sizes must match
func (s ArraySize) IsSubtypeOf(other ArraySize) bool {
	switch {
	case other.variable:
		return true
	case s.variable:
		return false
	default:
		return s.length == other.length
	}
}

func (s ArraySize) String() string {
	if s.variable {
		return "[]"
	}
	return "[" + strconv.FormatUint(s.length, 10) + "]"
}

// Type is one of the shapes below. Copies are cheap: a PolymorphicInteger or a pending
// Constness copies the reference to its shared cell, so every copy sees the same binding
type Type interface {
	fmt.Stringer
	isType()
}

var (
	_ Type = FieldElement{}
	_ Type = Integer{}
	_ Type = PolymorphicInteger{}
	_ Type = Bool{}
	_ Type = Unit{}
	_ Type = Array{}
	_ Type = Struct{}
	_ Type = Tuple{}
	_ Type = Error{}
	_ Type = Unspecified{}
)

// FieldElement is the base field of the circuit
type FieldElement struct {
	Const      Constness
	Visibility Visibility
}

// Integer is a fixed width integer, u8 = Integer{Sign: Unsigned, Bits: 8}
type Integer struct {
	Const      Constness
	Visibility Visibility
	Sign       Signedness
	Bits       uint32
}

// PolymorphicInteger is an integer whose width and sign are not known yet.
// It behaves as DefaultIntType if Var never gets bound
type PolymorphicInteger struct {
	Const Constness
	Var   *TypeVariable
}

type Bool struct{}

type Unit struct{}

// Array is Elem repeated Size times, [4]Field = Array{Size: FixedSize(4), Elem: FieldElement{}}
type Array struct {
	Visibility Visibility
	Size       ArraySize
	Elem       Type
}

// Struct refers to a nominal struct definition, compared by identity only
type Struct struct {
	Visibility Visibility
	Def        *StructType
}

type Tuple struct {
	Elems []Type
}

// Error is the type of something that already failed to type-check.
// It unifies with everything so the failure is only reported once
type Error struct{}

// Unspecified is the type of a declaration that has no annotation yet.
// It must be replaced before it reaches unification
type Unspecified struct{}

func (FieldElement) isType()       {}
func (Integer) isType()            {}
func (PolymorphicInteger) isType() {}
func (Bool) isType()               {}
func (Unit) isType()               {}
func (Array) isType()              {}
func (Struct) isType()             {}
func (Tuple) isType()              {}
func (Error) isType()              {}
func (Unspecified) isType()        {}

func (t FieldElement) String() string {
	return t.Const.String() + t.Visibility.prefix() + "Field"
}

func (t Integer) String() string {
	sign := "u"
	if t.Sign == Signed {
		sign = "i"
	}
	return t.Const.String() + t.Visibility.prefix() + sign + strconv.FormatUint(uint64(t.Bits), 10)
}

func (t PolymorphicInteger) String() string { return t.Var.String() }
func (Bool) String() string                 { return "bool" }
func (Unit) String() string                 { return "()" }
func (t Array) String() string {
	return t.Visibility.prefix() + t.Size.String() + t.Elem.String()
}
func (t Struct) String() string { return t.Visibility.prefix() + t.Def.String() }
func (t Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, elem := range t.Elems {
		elems[i] = elem.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}
func (Error) String() string       { return "error" }
func (Unspecified) String() string { return "unspecified" }

// Witness is a private field element
func Witness(span ir.Range) Type {
	return FieldElement{Const: ConstNo(span), Visibility: Private}
}

// PublicField is a public field element
func PublicField(span ir.Range) Type {
	return FieldElement{Const: ConstNo(span), Visibility: Public}
}

// Constant is a field element known at compile time
func Constant(span ir.Range) Type {
	return FieldElement{Const: ConstYes(span), Visibility: Private}
}

// DefaultIntType is what an integer literal is when nothing constrains it
func DefaultIntType(span ir.Range) Type {
	return Witness(span)
}

// Equal is structural equality, except for structs which are equal by identity.
// Type variables and constness variables are equal only to themselves
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case FieldElement:
		b, ok := b.(FieldElement)
		return ok && a == b
	case Integer:
		b, ok := b.(Integer)
		return ok && a == b
	case PolymorphicInteger:
		b, ok := b.(PolymorphicInteger)
		return ok && a.Const == b.Const && a.Var == b.Var
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Unit:
		_, ok := b.(Unit)
		return ok
	case Array:
		b, ok := b.(Array)
		return ok && a.Visibility == b.Visibility && a.Size == b.Size && Equal(a.Elem, b.Elem)
	case Struct:
		b, ok := b.(Struct)
		return ok && a.Visibility == b.Visibility && a.Def.Equal(b.Def)
	case Tuple:
		b, ok := b.(Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case Error:
		_, ok := b.(Error)
		return ok
	case Unspecified:
		_, ok := b.(Unspecified)
		return ok
	default:
		panicf("unknown type %T", a)
		return false
	}
}

// withConstSpan points the constness of t at newSpan, for better error messages
// that show both the failing site and the earlier site that forced t to be const or non-const.
//
// For a bound PolymorphicInteger the shared binding is updated in place
func withConstSpan(t Type, newSpan ir.Range) Type {
	switch t := t.(type) {
	case FieldElement:
		t.Const = t.Const.withSpan(newSpan)
		return t
	case Integer:
		t.Const = t.Const.withSpan(newSpan)
		return t
	case PolymorphicInteger:
		if bound, ok := t.Var.Binding(); ok {
			t.Var.binding = withConstSpan(bound, newSpan)
			return t
		}
		t.Const = t.Const.withSpan(newSpan)
		return t
	default:
		return t
	}
}

// IsConst reports whether t is a numeric type that must be known at compile time.
// It is false for anything that is not numeric
func IsConst(t Type) bool {
	switch t := t.(type) {
	case FieldElement:
		return t.Const.IsConst()
	case Integer:
		return t.Const.IsConst()
	case PolymorphicInteger:
		if bound, ok := t.Var.Binding(); ok {
			return IsConst(bound)
		}
		return t.Const.IsConst()
	default:
		return false
	}
}
