package ilerr

import (
	"testing"

	"github.com/cottand/circ/frontend/ir"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorsMerge(t *testing.T) {
	first := New(NewUnstructured{Positioner: ir.Span(1, 1), Msg: "first"})
	second := New(NewUnstructured{Positioner: ir.Span(2, 2), Msg: "second"})

	var nilErrs *Errors
	assert.Nil(t, nilErrs.Merge(nil))

	other := (&Errors{}).With(second)
	assert.Same(t, other, nilErrs.Merge(other))

	errs := (&Errors{}).With(first)
	assert.Same(t, errs, errs.Merge(nil))
	assert.Same(t, errs, errs.Merge(&Errors{}))
	assert.Equal(t, []IleError{first, second}, errs.Merge(other).Errors())
	assert.Equal(t, 1, other.Len(), "merging does not change the merged errors")
}

func TestFormatWithCode(t *testing.T) {
	err := New(Unclassified{From: errors.New("boom"), Positioner: ir.NoRange})
	assert.Equal(t, "(E000) unclassified error: boom", FormatWithCode(err))

	SetDebugPrinting(true)
	t.Cleanup(func() { SetDebugPrinting(false) })
	formatted := FormatWithCode(err)
	assert.Contains(t, formatted, ".go:")
	assert.Contains(t, formatted, ":(E000) unclassified error: boom")
}
