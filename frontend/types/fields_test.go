package types_test

import (
	"testing"

	"github.com/cottand/circ/abi"
	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsAbiType(t *testing.T) {
	pubU32 := integer(no, types.Public, types.Unsigned, 32)

	testCases := []struct {
		name     string
		typ      types.Type
		expected abi.Type
	}{
		{"witness", types.Witness(ir.NoRange), abi.Field{Visibility: abi.Private}},
		{"public field", types.PublicField(ir.NoRange), abi.Field{Visibility: abi.Public}},
		{"signed integer", integer(yes, types.Private, types.Signed, 64), abi.Integer{Sign: abi.Signed, Width: 64, Visibility: abi.Private}},
		{
			"public array of public integers",
			types.Array{Visibility: types.Public, Size: types.FixedSize(3), Elem: pubU32},
			abi.Array{
				Visibility: abi.Public,
				Length:     3,
				Elem:       abi.Integer{Sign: abi.Unsigned, Width: 32, Visibility: abi.Public},
			},
		},
		{
			"nested arrays",
			types.Array{Size: types.FixedSize(2), Elem: types.Array{Size: types.FixedSize(3), Elem: types.Witness(ir.NoRange)}},
			abi.Array{Length: 2, Elem: abi.Array{Length: 3, Elem: abi.Field{}}},
		},
		{"unbound literal", types.NewFresher().NewPolymorphicInteger(no), abi.Field{Visibility: abi.Private}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, types.AsAbiType(tc.typ))
		})
	}
}

func TestAsAbiTypeFollowsBinding(t *testing.T) {
	poly := types.NewFresher().NewPolymorphicInteger(no)
	require.NoError(t, types.TryUnify(poly, u16, ir.NoRange))

	assert.Equal(t, abi.Integer{Sign: abi.Unsigned, Width: 16}, types.AsAbiType(poly))
}

func TestAsAbiTypeRejects(t *testing.T) {
	point := types.NewStructType(0, "Point", ir.NoRange, nil)
	rejected := map[string]types.Type{
		"variable array": types.Array{Size: types.VariableSize, Elem: types.Witness(ir.NoRange)},
		"bool":           types.Bool{},
		"struct":         types.Struct{Def: point},
		"tuple":          types.Tuple{Elems: []types.Type{u8}},
		"unit":           types.Unit{},
		"error":          types.Error{},
		"unspecified":    types.Unspecified{},
	}
	for name, typ := range rejected {
		t.Run(name, func(t *testing.T) {
			assertICE(t, func() { types.AsAbiType(typ) })
		})
	}
}

func TestNumElements(t *testing.T) {
	point := types.NewStructType(0, "Point", ir.NoRange, []types.StructField{
		{Name: "x", Type: types.Witness(ir.NoRange)},
		{Name: "y", Type: types.Witness(ir.NoRange)},
	})

	assert.EqualValues(t, 4, types.NumElements(types.Array{Size: types.FixedSize(4), Elem: u8}))
	assert.EqualValues(t, 2, types.NumElements(types.Struct{Def: point}))
	assert.EqualValues(t, 3, types.NumElements(types.Tuple{Elems: []types.Type{u8, u8, u8}}))
	assert.EqualValues(t, 1, types.NumElements(types.Witness(ir.NoRange)))
	assert.EqualValues(t, 1, types.NumElements(types.Bool{}))

	assertICE(t, func() { types.NumElements(types.Array{Size: types.VariableSize, Elem: u8}) })
}

func TestIterFields(t *testing.T) {
	point := types.NewStructType(0, "Point", ir.NoRange, []types.StructField{
		{Name: "x", Type: types.Witness(ir.NoRange)},
		{Name: "y", Type: u8},
	})

	var names []string
	for name, typ := range types.IterFields(types.Struct{Def: point}) {
		names = append(names, name)
		assert.Equal(t, types.GetFieldType(types.Struct{Def: point}, name), typ)
	}
	assert.Equal(t, []string{"x", "y"}, names)

	tuple := types.Tuple{Elems: []types.Type{u8, types.Bool{}}}
	names = names[:0]
	for name := range types.IterFields(tuple) {
		names = append(names, name)
	}
	assert.Equal(t, []string{"0", "1"}, names)
	assert.Equal(t, types.Bool{}, types.GetFieldType(tuple, "1"))

	t.Run("stops early", func(t *testing.T) {
		count := 0
		for range types.IterFields(tuple) {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	assertICE(t, func() { types.IterFields(u8) })
	assertICE(t, func() { types.GetFieldType(types.Struct{Def: point}, "z") })
	assertICE(t, func() { types.GetFieldType(tuple, "2") })
	assertICE(t, func() { types.GetFieldType(u8, "0") })
}

func TestPredicates(t *testing.T) {
	fixed := types.Array{Visibility: types.Public, Size: types.FixedSize(1), Elem: u8}
	variable := types.Array{Size: types.VariableSize, Elem: u8}

	assert.True(t, types.IsFixedSizedArray(fixed))
	assert.False(t, types.IsFixedSizedArray(variable))
	assert.True(t, types.IsVariableSizedArray(variable))
	assert.False(t, types.IsVariableSizedArray(u8))

	assert.True(t, types.IsPublic(fixed))
	assert.True(t, types.IsPublic(types.PublicField(ir.NoRange)))
	assert.False(t, types.IsPublic(types.Witness(ir.NoRange)))
	assert.False(t, types.IsPublic(types.Struct{Visibility: types.Public}), "only scalars and arrays carry a visibility for the abi")

	for _, usable := range []types.Type{u8, types.Witness(ir.NoRange), fixed, types.Bool{}, types.Error{}} {
		assert.True(t, types.CanBeUsedInConstrain(usable), "%v", usable)
	}
	for _, unusable := range []types.Type{types.Unit{}, types.Tuple{}, types.Struct{}, types.Unspecified{}} {
		assert.False(t, types.CanBeUsedInConstrain(unusable), "%v", unusable)
	}
}

func TestString(t *testing.T) {
	point := types.NewStructType(0, "Point", ir.NoRange, nil)
	bound := types.NewFresher().NewPolymorphicInteger(no)
	require.NoError(t, types.TryUnify(bound, integer(no, types.Private, types.Signed, 8), ir.NoRange))

	testCases := []struct {
		typ      types.Type
		expected string
	}{
		{types.Constant(ir.NoRange), "const Field"},
		{types.PublicField(ir.NoRange), "pub Field"},
		{types.Witness(ir.NoRange), "Field"},
		{integer(yes, types.Public, types.Signed, 64), "const pub i64"},
		{u8, "u8"},
		{types.Array{Visibility: types.Public, Size: types.FixedSize(3), Elem: integer(no, types.Public, types.Unsigned, 32)}, "pub [3]pub u32"},
		{types.Array{Size: types.VariableSize, Elem: types.Witness(ir.NoRange)}, "[]Field"},
		{types.Tuple{Elems: []types.Type{types.Witness(ir.NoRange), types.Bool{}}}, "(Field, bool)"},
		{types.Tuple{}, "()"},
		{types.Unit{}, "()"},
		{types.Struct{Def: point}, "Point"},
		{types.Struct{Visibility: types.Public, Def: point}, "pub Point"},
		{types.NewFresher().NewPolymorphicInteger(no), "Field"},
		{bound, "i8"},
		{types.Error{}, "error"},
		{types.Unspecified{}, "unspecified"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.typ.String())
		})
	}
}

func TestArraySize(t *testing.T) {
	length, fixed := types.FixedSize(7).Len()
	assert.True(t, fixed)
	assert.EqualValues(t, 7, length)

	_, fixed = types.VariableSize.Len()
	assert.False(t, fixed)

	assert.Equal(t, "[7]", types.FixedSize(7).String())
	assert.Equal(t, "[]", types.VariableSize.String())
}
