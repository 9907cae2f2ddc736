package types_test

import (
	"testing"

	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeVariables(t *testing.T) {
	f := types.NewFresher()
	constness := f.NewConstVariable()
	literal := f.NewPolymorphicInteger(f.NewConstVariable())
	wrapped := types.Tuple{Elems: []types.Type{
		types.FieldElement{Const: constness},
		types.Array{Size: types.FixedSize(2), Elem: literal},
	}}

	free := types.FreeVariables(wrapped).Slice()
	constID, _ := constness.VariableID()
	literalConstID, _ := literal.Const.VariableID()
	assert.Equal(t, []types.TypeVarID{constID, literalConstID, literal.Var.ID()}, free)
	assert.False(t, types.IsResolved(wrapped))

	require.NoError(t, types.TryUnify(literal, u8, ir.NoRange))
	free = types.FreeVariables(wrapped).Slice()
	assert.Equal(t, []types.TypeVarID{constID}, free, "binding the literal resolved its constness too")

	require.NoError(t, constness.Unify(yes, ir.NoRange))
	assert.True(t, types.IsResolved(wrapped))
}

func TestFreeVariablesSkipsStructFields(t *testing.T) {
	f := types.NewFresher()
	def := types.NewStructType(0, "Lazy", ir.NoRange, []types.StructField{
		{Name: "x", Type: f.NewPolymorphicInteger(f.NewConstVariable())},
	})

	assert.True(t, types.IsResolved(types.Struct{Def: def}))
	assert.True(t, types.IsResolved(types.Witness(ir.NoRange)))
	assert.True(t, types.IsResolved(types.Bool{}))
}

func TestTypeVariableBindsOnce(t *testing.T) {
	f := types.NewFresher()
	a, b := f.NewPolymorphicInteger(no), f.NewPolymorphicInteger(no)
	assert.NotEqual(t, a.Var.ID(), b.Var.ID())
	assert.Equal(t, "Unbound(0)", a.Var.GoString())

	require.NoError(t, types.TryUnify(a, b, ir.NoRange))
	bound, ok := a.Var.Binding()
	require.True(t, ok)
	assert.True(t, types.Equal(b, bound))
	assert.False(t, b.Var.IsBound())

	// b is bound through a, which was already bound
	require.NoError(t, types.TryUnify(a, u8, ir.NoRange))
	assert.True(t, b.Var.IsBound())
	assert.Equal(t, "u8", a.String())
}
