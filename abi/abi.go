// Package abi describes the public interface of a circuit: the parameters of its entry point,
// their shape and whether they are public or private inputs
package abi

import (
	"fmt"
	"github.com/pkg/errors"
	"strconv"
)

type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

func (v Visibility) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Visibility) UnmarshalText(text []byte) error {
	switch string(text) {
	case "public":
		*v = Public
	case "private", "":
		*v = Private
	default:
		return errors.Errorf("unknown visibility %q", text)
	}
	return nil
}

type Sign uint8

const (
	Unsigned Sign = iota
	Signed
)

func (s Sign) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}

// Type is one of Field, Integer or Array
type Type interface {
	fmt.Stringer
	// FieldCount is how many field elements a value of this type takes in the witness
	FieldCount() uint64
	isAbiType()
}

var (
	_ Type = Field{}
	_ Type = Integer{}
	_ Type = Array{}
)

type Field struct {
	Visibility Visibility
}

type Integer struct {
	Sign       Sign
	Width      uint32
	Visibility Visibility
}

type Array struct {
	Visibility Visibility
	Length     uint64
	Elem       Type
}

func (Field) isAbiType()   {}
func (Integer) isAbiType() {}
func (Array) isAbiType()   {}

func (Field) FieldCount() uint64   { return 1 }
func (Integer) FieldCount() uint64 { return 1 }
func (t Array) FieldCount() uint64 { return t.Length * t.Elem.FieldCount() }

func (t Field) String() string { return t.Visibility.String() + " field" }
func (t Integer) String() string {
	sign := "u"
	if t.Sign == Signed {
		sign = "i"
	}
	return t.Visibility.String() + " " + sign + strconv.FormatUint(uint64(t.Width), 10)
}
func (t Array) String() string {
	return t.Visibility.String() + " [" + strconv.FormatUint(t.Length, 10) + "]" + t.Elem.String()
}

// IsPublic is true when the whole value is a public input
func IsPublic(t Type) bool {
	switch t := t.(type) {
	case Field:
		return t.Visibility == Public
	case Integer:
		return t.Visibility == Public
	case Array:
		return t.Visibility == Public
	default:
		return false
	}
}

type Param struct {
	Name string
	Type Type
}

// Abi lists the parameters of an entry point, in declaration order
type Abi struct {
	Parameters []Param
}

// FieldCount is the number of field elements needed to hold every parameter
func (a Abi) FieldCount() uint64 {
	var count uint64
	for _, param := range a.Parameters {
		count += param.Type.FieldCount()
	}
	return count
}

// PublicAbi keeps only the public parameters
func (a Abi) PublicAbi() Abi {
	var public []Param
	for _, param := range a.Parameters {
		if IsPublic(param.Type) {
			public = append(public, param)
		}
	}
	return Abi{Parameters: public}
}

func (a Abi) ParamNames() []string {
	names := make([]string, len(a.Parameters))
	for i, param := range a.Parameters {
		names[i] = param.Name
	}
	return names
}
