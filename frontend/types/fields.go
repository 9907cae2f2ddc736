package types

import (
	"iter"
	"strconv"
)

// NumElements is the number of elements of t.
// Arrays, structs and tuples are the only types with more than one.
//
// It must only be called on types of a fixed shape; variable size arrays panic
func NumElements(t Type) uint64 {
	switch t := t.(type) {
	case Array:
		length, fixed := t.Size.Len()
		if !fixed {
			panicf("num elements of %v: only fixed size arrays have a known number of elements, types must be resolved before counting", t)
		}
		return length
	case Struct:
		return uint64(len(t.Def.Fields))
	case Tuple:
		return uint64(len(t.Elems))
	default:
		return 1
	}
}

func CanBeUsedInConstrain(t Type) bool {
	switch t.(type) {
	case FieldElement, Integer, PolymorphicInteger, Array, Error, Bool:
		return true
	default:
		return false
	}
}

func IsFixedSizedArray(t Type) bool {
	array, ok := t.(Array)
	return ok && array.Size.IsFixed()
}

func IsVariableSizedArray(t Type) bool {
	array, ok := t.(Array)
	return ok && !array.Size.IsFixed()
}

func IsPublic(t Type) bool {
	switch t := t.(type) {
	case FieldElement:
		return t.Visibility == Public
	case Integer:
		return t.Visibility == Public
	case Array:
		return t.Visibility == Public
	default:
		return false
	}
}

// IterFields iterates over the fields of a struct, or the elements of a tuple named by their index.
// It panics if t is neither
func IterFields(t Type) iter.Seq2[string, Type] {
	var names []string
	var fields []Type
	switch t := t.(type) {
	case Struct:
		for _, field := range t.Def.Fields {
			names = append(names, field.Name)
			fields = append(fields, field.Type)
		}
	case Tuple:
		for i, elem := range t.Elems {
			names = append(names, strconv.Itoa(i))
			fields = append(fields, elem)
		}
	default:
		panicf("tried to iterate over the fields of '%v', which has none", t)
	}
	return func(yield func(string, Type) bool) {
		for i := range names {
			if !yield(names[i], fields[i]) {
				return
			}
		}
	}
}

// GetFieldType returns the type of a struct field, or of a tuple element given its index.
// It panics if t is neither or the field is missing, which the caller must have checked
func GetFieldType(t Type, name string) Type {
	switch t := t.(type) {
	case Struct:
		field, ok := t.Def.GetField(name)
		if !ok {
			panicf("struct %v has no field %s", t.Def, name)
		}
		return field
	case Tuple:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= len(t.Elems) {
			panicf("tuple %v has no element %s", t, name)
		}
		return t.Elems[i]
	default:
		panicf("tried to get field %s of '%v', which has none", name, t)
		return nil
	}
}
