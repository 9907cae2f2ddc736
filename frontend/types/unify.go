package types

import (
	"errors"
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/internal/log"
)

var typesLogger = log.DefaultLogger.With("section", "types")

// Unify checks t against expected, binding any type or constness variables
// found along the way. Unification is more strict than subtyping but less strict than Equal.
//
// On failure makeErr() is added to errs, possibly followed by a note explaining
// where the conflicting constness came from.
// Bindings performed before a failure are not undone, which may cause further type errors later on
func Unify(t, expected Type, span ir.Range, errs *ilerr.Errors, makeErr func() ilerr.IleError) {
	if err := TryUnify(t, expected, span); err != nil {
		typesLogger.Debug("unification failed", "type", Slog(t), "expected", Slog(expected), "at", span, "reason", err)
		issueErrors(expected, err, errs, makeErr)
	}
}

// MakeSubtypeOf checks that t can be used where expected is required.
// It reports errors the same way Unify does
func MakeSubtypeOf(t, expected Type, span ir.Range, errs *ilerr.Errors, makeErr func() ilerr.IleError) {
	if err := IsSubtypeOf(t, expected, span); err != nil {
		typesLogger.Debug("subtyping failed", "type", Slog(t), "expected", Slog(expected), "at", span, "reason", err)
		issueErrors(expected, err, errs, makeErr)
	}
}

const (
	nonConstNote = "The value is non-const because of this expression, which uses another non-const value"
	constNote    = "The value is const because of this expression, which forces the value to be const"
)

func issueErrors(expected Type, err error, errs *ilerr.Errors, makeErr func() ilerr.IleError) {
	errs.With(makeErr())

	var kind *SpanKind
	if !errors.As(err, &kind) {
		return
	}
	expectsConst := IsConst(expected)
	switch {
	case expectsConst && kind.Tag == SpanNonConst:
		errs.With(ilerr.New(ilerr.NewUnstructured{Positioner: kind.Range, Msg: nonConstNote}))
	case !expectsConst && kind.Tag == SpanConst:
		errs.With(ilerr.New(ilerr.NewUnstructured{Positioner: kind.Range, Msg: constNote}))
	}
}

// TryUnify is Unify without reporting. Errors are not committed, but bindings are.
// On failure the error is a *SpanKind
func TryUnify(t, other Type, span ir.Range) error {
	if isError(t) || isError(other) {
		return nil
	}
	if isUnspecified(t) || isUnspecified(other) {
		panicf("cannot unify %v with %v: unspecified types must be resolved before unification", t, other)
	}

	if poly, ok := t.(PolymorphicInteger); ok {
		return unifyPolymorphic(poly, other, span)
	}
	if poly, ok := other.(PolymorphicInteger); ok {
		return unifyPolymorphic(poly, t, span)
	}

	switch t := t.(type) {
	case Array:
		if other, ok := other.(Array); ok {
			if t.Size != other.Size {
				return errNoSpan
			}
			return TryUnify(t.Elem, other.Elem, span)
		}
	case Tuple:
		if other, ok := other.(Tuple); ok {
			if len(t.Elems) != len(other.Elems) {
				return errNoSpan
			}
			for i := range t.Elems {
				if err := TryUnify(t.Elems[i], other.Elems[i], span); err != nil {
					return err
				}
			}
			return nil
		}
	case Struct:
		// No recursive unification of fields: the field types belong to the definition,
		// which is shared by every use of the struct
		if other, ok := other.(Struct); ok {
			if t.Def.Equal(other.Def) {
				return nil
			}
			return errNoSpan
		}
	case FieldElement:
		if other, ok := other.(FieldElement); ok {
			return t.Const.Unify(other.Const, span)
		}
	case Integer:
		if other, ok := other.(Integer); ok {
			if t.Sign != other.Sign || t.Bits != other.Bits {
				return errNoSpan
			}
			return t.Const.Unify(other.Const, span)
		}
	}

	if Equal(t, other) {
		return nil
	}
	return errNoSpan
}

func unifyPolymorphic(poly PolymorphicInteger, other Type, span ir.Range) error {
	// If it is already bound, unify against what it is bound to
	if bound, ok := poly.Var.Binding(); ok {
		return TryUnify(bound, other, span)
	}
	// Otherwise, check it is unified against an integer and bind it
	return tryBindToPolymorphicInt(other, poly.Var, poly.Const, span)
}

// tryBindToPolymorphicInt binds variable to t, which must be numeric.
// variable must still be unbound
func tryBindToPolymorphicInt(t Type, variable *TypeVariable, varConst Constness, span ir.Range) error {
	if variable.IsBound() {
		panicf("type variable %d is already bound to %v", variable.id, variable.binding)
	}

	switch concrete := t.(type) {
	case FieldElement:
		variable.bind(withConstSpan(concrete, span))
		return concrete.Const.Unify(varConst, span)
	case Integer:
		variable.bind(withConstSpan(concrete, span))
		return concrete.Const.Unify(varConst, span)
	case PolymorphicInteger:
		if bound, ok := concrete.Var.Binding(); ok {
			return tryBindToPolymorphicInt(bound, variable, varConst, span)
		}
		// only guards against binding a variable directly to itself,
		// this is not an occurs check
		if concrete.Var.id == variable.id {
			return nil
		}
		variable.bind(withConstSpan(concrete, span))
		return concrete.Const.Unify(varConst, span)
	default:
		return errNoSpan
	}
}

func isError(t Type) bool {
	_, ok := t.(Error)
	return ok
}

func isUnspecified(t Type) bool {
	_, ok := t.(Unspecified)
	return ok
}
