package types

import (
	"fmt"
	"github.com/cottand/circ/frontend/ir"
)

type constKind uint8

const (
	// constNo comes first so the zero Constness is a non-const value with no known origin
	constNo constKind = iota
	constYes
	constMaybe
)

// Constness tracks whether a value must be known at compile time.
//
// It is one of
//   - Yes: the value is const, optionally because of the expression at span
//   - No: the value may depend on circuit inputs, optionally because of span
//   - Maybe: not known yet. The fact is shared by every copy of this Constness
//     through constVariable, and is resolved by the first unification that reaches it
type Constness struct {
	kind constKind
	// span is the location that made a Yes or No what it is, and may be ir.NoRange
	span ir.Range
	// variable is only set for Maybe
	variable *constVariable
}

type constVariable struct {
	id TypeVarID
	// resolved is nil until the first unification, and never unset after
	resolved *Constness
}

func ConstYes(span ir.Range) Constness { return Constness{kind: constYes, span: span} }
func ConstNo(span ir.Range) Constness  { return Constness{kind: constNo, span: span} }

// IsMaybe reports whether c is a pending constness variable, resolved or not
func (c Constness) IsMaybe() bool { return c.kind == constMaybe }

// Resolved returns what a Maybe was resolved to. For Yes and No it returns c itself
func (c Constness) Resolved() (Constness, bool) {
	if c.kind != constMaybe {
		return c, true
	}
	if c.variable.resolved == nil {
		return Constness{}, false
	}
	return *c.variable.resolved, true
}

// VariableID returns the id of a Maybe
func (c Constness) VariableID() (TypeVarID, bool) {
	if c.kind != constMaybe {
		return 0, false
	}
	return c.variable.id, true
}

// Span is where a Yes or No came from, or ir.NoRange
func (c Constness) Span() ir.Range {
	if c.kind == constMaybe {
		if resolved, ok := c.Resolved(); ok {
			return resolved.Span()
		}
		return ir.NoRange
	}
	return c.span
}

// withSpan returns c pointing at newSpan as its origin.
// A resolved Maybe has its shared cell updated instead,
// so the new origin is seen by every copy of it.
func (c Constness) withSpan(newSpan ir.Range) Constness {
	switch c.kind {
	case constYes, constNo:
		c.span = newSpan
		return c
	default:
		if c.variable.resolved != nil {
			refined := c.variable.resolved.withSpan(newSpan)
			c.variable.resolved = &refined
		}
		return c
	}
}

func (c Constness) sameVariable(other Constness) bool {
	return c.kind == constMaybe && other.kind == constMaybe && c.variable.id == other.variable.id
}

// root follows resolved Maybes down to a Yes, a No or an unresolved Maybe
func (c Constness) root() Constness {
	for c.kind == constMaybe && c.variable.resolved != nil {
		c = *c.variable.resolved
	}
	return c
}

// resolve fills an unresolved Maybe with other, stamped with span.
// If other already resolves to c there is nothing to record: binding it would close a cycle
func (c Constness) resolve(other Constness, span ir.Range) {
	if c.sameVariable(other.root()) {
		return
	}
	stamped := other.withSpan(span)
	c.variable.resolved = &stamped
}

func conflictSpan(yes, no Constness) error {
	switch {
	case no.span.IsValid():
		return &SpanKind{Tag: SpanNonConst, Range: no.span}
	case yes.span.IsValid():
		return &SpanKind{Tag: SpanConst, Range: yes.span}
	default:
		return &SpanKind{Tag: SpanNone}
	}
}

// Unify tries to make c and other the same fact, resolving pending constness if needed.
// On failure the error is a *SpanKind
func (c Constness) Unify(other Constness, span ir.Range) error {
	switch {
	case c.kind == constYes && other.kind == constYes, c.kind == constNo && other.kind == constNo:
		return nil
	case c.kind == constYes && other.kind == constNo:
		return conflictSpan(c, other)
	case c.kind == constNo && other.kind == constYes:
		return conflictSpan(other, c)
	case c.sameVariable(other):
		return nil
	}

	maybe, rest := c, other
	if c.kind != constMaybe {
		maybe, rest = other, c
	}
	if resolved, ok := maybe.Resolved(); ok {
		return resolved.Unify(rest, span)
	}
	maybe.resolve(rest, span)
	return nil
}

// IsSubtypeOf is Unify except a const value is accepted where a non-const one is expected
func (c Constness) IsSubtypeOf(other Constness, span ir.Range) error {
	switch {
	case c.kind == constYes && other.kind == constYes,
		c.kind == constNo && other.kind == constNo,
		c.kind == constYes && other.kind == constNo:
		return nil
	case c.kind == constNo && other.kind == constYes:
		return conflictSpan(other, c)
	case c.sameVariable(other):
		return nil
	}

	if c.kind == constMaybe {
		if resolved, ok := c.Resolved(); ok {
			return resolved.IsSubtypeOf(other, span)
		}
		c.resolve(other, span)
		return nil
	}
	// other is the Maybe; keep the argument order
	if resolved, ok := other.Resolved(); ok {
		return c.IsSubtypeOf(resolved, span)
	}
	other.resolve(c, span)
	return nil
}

// And combines the constness of two operands. The result is
//   - Yes if both are Yes,
//   - No if either is No,
//   - or, if one of them is still pending, the other one after unifying both
func (c Constness) And(other Constness, span ir.Range) Constness {
	switch {
	case c.kind == constYes && other.kind == constYes:
		return ConstYes(span)
	case c.kind != constMaybe && other.kind != constMaybe:
		return ConstNo(span)
	case c.sameVariable(other):
		return c
	}

	maybe, rest := c, other
	if c.kind != constMaybe {
		maybe, rest = other, c
	}
	if resolved, ok := maybe.Resolved(); ok {
		return resolved.And(rest, span)
	}
	maybe.resolve(rest, span)
	return rest
}

// IsConst reports whether c is const. A Maybe nobody resolved yet counts as const
func (c Constness) IsConst() bool {
	switch c.kind {
	case constYes:
		return true
	case constNo:
		return false
	default:
		if resolved, ok := c.Resolved(); ok {
			return resolved.IsConst()
		}
		return true
	}
}

// String is the prefix used when rendering a type: "const " or nothing
func (c Constness) String() string {
	if c.IsConst() {
		return "const "
	}
	return ""
}

// GoString is for debugging
func (c Constness) GoString() string {
	switch c.kind {
	case constYes:
		return fmt.Sprintf("Yes(%v)", c.span)
	case constNo:
		return fmt.Sprintf("No(%v)", c.span)
	default:
		if resolved, ok := c.Resolved(); ok {
			return fmt.Sprintf("Maybe(%d => %#v)", c.variable.id, resolved)
		}
		return fmt.Sprintf("Maybe(%d)", c.variable.id)
	}
}

type SpanTag uint8

const (
	SpanNone SpanTag = iota
	// SpanConst means the location explains why a value was const
	SpanConst
	// SpanNonConst means the location explains why a value was non-const
	SpanNonConst
)

// SpanKind is the failure of a unification. It records which location, if any,
// can explain a constness conflict in a secondary diagnostic
type SpanKind struct {
	Tag   SpanTag
	Range ir.Range
}

func (k *SpanKind) Error() string {
	switch k.Tag {
	case SpanConst:
		return fmt.Sprintf("types do not unify: value is const because of %v", k.Range)
	case SpanNonConst:
		return fmt.Sprintf("types do not unify: value is non-const because of %v", k.Range)
	default:
		return "types do not unify"
	}
}

var errNoSpan error = &SpanKind{Tag: SpanNone}
