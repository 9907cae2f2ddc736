package types

import (
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/ir"
	"log/slog"
)

// TypeCtx holds the mutable state of type-checking a single compilation unit:
// the variables handed out so far, the struct definitions, and the errors found.
//
// It is not concurrency safe. Variables made by one TypeCtx must not be shared with
// checks running in parallel, as binding them is not synchronised
type TypeCtx struct {
	fresher *Fresher
	Structs *StructTable

	// Errors are language problems that a malformed program could cause
	Errors ilerr.Errors

	logger *slog.Logger
}

func NewEmptyTypeCtx() *TypeCtx {
	return &TypeCtx{
		fresher: NewFresher(),
		Structs: NewStructTable(),
		logger:  typesLogger,
	}
}

func (ctx *TypeCtx) Fresher() *Fresher { return ctx.fresher }

// IntLiteral is the type of an integer literal, to be narrowed by whatever it gets unified with
func (ctx *TypeCtx) IntLiteral(constness Constness) PolymorphicInteger {
	return ctx.fresher.NewPolymorphicInteger(constness)
}

func (ctx *TypeCtx) NewConstVariable() Constness {
	return ctx.fresher.NewConstVariable()
}

func (ctx *TypeCtx) DeclareStruct(name string, span ir.Range, fields []StructField) *StructType {
	def := ctx.Structs.Declare(name, span, fields)
	ctx.logger.Debug("declared struct", "name", name, "id", def.ID, "fields", len(fields))
	return def
}

// Unify is Unify with errors recorded in ctx.Errors
func (ctx *TypeCtx) Unify(t, expected Type, span ir.Range, makeErr func() ilerr.IleError) {
	Unify(t, expected, span, &ctx.Errors, makeErr)
}

// MakeSubtypeOf is MakeSubtypeOf with errors recorded in ctx.Errors
func (ctx *TypeCtx) MakeSubtypeOf(t, expected Type, span ir.Range, makeErr func() ilerr.IleError) {
	MakeSubtypeOf(t, expected, span, &ctx.Errors, makeErr)
}

// Mismatch returns the usual primary error for a failed unification, to be passed to Unify
func Mismatch(t, expected Type, span ir.Range) func() ilerr.IleError {
	return func() ilerr.IleError {
		return ilerr.New(ilerr.NewTypeMismatch{Positioner: span, Expected: expected, Found: t})
	}
}
