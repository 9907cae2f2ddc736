package types

import "github.com/cottand/circ/abi"

func visibilityToAbi(v Visibility) abi.Visibility {
	if v == Public {
		return abi.Public
	}
	return abi.Private
}

// AsAbiType converts a resolved type into its description at the boundary of the circuit.
// An unbound PolymorphicInteger becomes DefaultIntType.
//
// Variable size arrays, booleans, structs, tuples, unit, Error and Unspecified
// cannot be part of an entry point, and AsAbiType panics for them
func AsAbiType(t Type) abi.Type {
	switch t := t.(type) {
	case FieldElement:
		return abi.Field{Visibility: visibilityToAbi(t.Visibility)}
	case Array:
		length, fixed := t.Size.Len()
		if !fixed {
			panicf("cannot have variable sized array in entry point")
		}
		return abi.Array{
			Visibility: visibilityToAbi(t.Visibility),
			Length:     length,
			Elem:       AsAbiType(t.Elem),
		}
	case Integer:
		sign := abi.Unsigned
		if t.Sign == Signed {
			sign = abi.Signed
		}
		return abi.Integer{Sign: sign, Width: t.Bits, Visibility: visibilityToAbi(t.Visibility)}
	case PolymorphicInteger:
		if bound, ok := t.Var.Binding(); ok {
			return AsAbiType(bound)
		}
		return AsAbiType(DefaultIntType(t.Const.Span()))
	case Bool:
		panicf("currently, cannot have a bool in the entry point function")
	case Struct:
		panicf("struct %v cannot be part of an entry point yet", t.Def)
	case Tuple:
		panicf("tuple %v cannot be part of an entry point yet", t)
	default:
		panicf("%v cannot be part of an entry point", t)
	}
	return nil
}
