package types

import (
	"fmt"
)

type TypeVarID uint64

// TypeVariable is a cell shared by every copy of the PolymorphicInteger that holds it.
// It starts unbound and is bound at most once
type TypeVariable struct {
	id TypeVarID
	// binding is nil while unbound
	binding Type
}

func (v *TypeVariable) ID() TypeVarID { return v.id }

// Binding returns what v is bound to, if anything
func (v *TypeVariable) Binding() (Type, bool) {
	return v.binding, v.binding != nil
}

func (v *TypeVariable) IsBound() bool { return v.binding != nil }

func (v *TypeVariable) bind(t Type) {
	if v.binding != nil {
		panicf("type variable %d is already bound to %v and cannot be bound to %v", v.id, v.binding, t)
	}
	v.binding = t
}

// String shows the binding, or Field (the default integer type) while unbound
func (v *TypeVariable) String() string {
	if v.binding != nil {
		return v.binding.String()
	}
	return "Field"
}

func (v *TypeVariable) GoString() string {
	if v.binding != nil {
		return fmt.Sprintf("Bound(%d => %v)", v.id, v.binding)
	}
	return fmt.Sprintf("Unbound(%d)", v.id)
}

// Fresher keeps track of new variable IDs
// it is mutable and not suitable for concurrent use.
//
// Type variables and constness variables share the same id space
type Fresher struct {
	freshCount uint64
}

func NewFresher() *Fresher {
	return &Fresher{}
}

func (f *Fresher) next() TypeVarID {
	id := TypeVarID(f.freshCount)
	f.freshCount++
	return id
}

func (f *Fresher) NewTypeVariable() *TypeVariable {
	return &TypeVariable{id: f.next()}
}

// NewConstVariable returns a fresh, unresolved Maybe
func (f *Fresher) NewConstVariable() Constness {
	return Constness{kind: constMaybe, variable: &constVariable{id: f.next()}}
}

// NewPolymorphicInteger is the type of an integer literal whose width is not known yet
func (f *Fresher) NewPolymorphicInteger(constness Constness) PolymorphicInteger {
	return PolymorphicInteger{Const: constness, Var: f.NewTypeVariable()}
}
