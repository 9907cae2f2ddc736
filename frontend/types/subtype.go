package types

import "github.com/cottand/circ/frontend/ir"

// IsSubtypeOf checks t can be used where other is expected, binding variables like TryUnify.
// It differs from TryUnify in two ways:
//   - a const value is accepted where a non-const one is expected, not the other way around
//   - a fixed size array is accepted where a variable size array is expected
func IsSubtypeOf(t, other Type, span ir.Range) error {
	if isError(t) || isError(other) {
		return nil
	}
	if isUnspecified(t) || isUnspecified(other) {
		panicf("cannot check %v against %v: unspecified types must be resolved before subtyping", t, other)
	}

	if poly, ok := t.(PolymorphicInteger); ok {
		if bound, ok := poly.Var.Binding(); ok {
			return IsSubtypeOf(bound, other, span)
		}
		return tryBindToPolymorphicInt(other, poly.Var, poly.Const, span)
	}
	// separate from the case above to keep the argument order
	if poly, ok := other.(PolymorphicInteger); ok {
		if bound, ok := poly.Var.Binding(); ok {
			return IsSubtypeOf(t, bound, span)
		}
		return tryBindToPolymorphicInt(t, poly.Var, poly.Const, span)
	}

	switch t := t.(type) {
	case Array:
		if other, ok := other.(Array); ok {
			if !t.Size.IsSubtypeOf(other.Size) {
				return errNoSpan
			}
			return IsSubtypeOf(t.Elem, other.Elem, span)
		}
	case Tuple:
		if other, ok := other.(Tuple); ok {
			if len(t.Elems) != len(other.Elems) {
				return errNoSpan
			}
			for i := range t.Elems {
				if err := IsSubtypeOf(t.Elems[i], other.Elems[i], span); err != nil {
					return err
				}
			}
			return nil
		}
	case Struct:
		if other, ok := other.(Struct); ok {
			if t.Def.Equal(other.Def) {
				return nil
			}
			return errNoSpan
		}
	case FieldElement:
		if other, ok := other.(FieldElement); ok {
			return t.Const.IsSubtypeOf(other.Const, span)
		}
	case Integer:
		if other, ok := other.(Integer); ok {
			if t.Sign != other.Sign || t.Bits != other.Bits {
				return errNoSpan
			}
			return t.Const.IsSubtypeOf(other.Const, span)
		}
	}

	if Equal(t, other) {
		return nil
	}
	return errNoSpan
}
