package types_test

import (
	"testing"

	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructTable(t *testing.T) {
	table := types.NewStructTable()
	point := table.Declare("Point", ir.Span(1, 10), []types.StructField{{Name: "x", Type: u8}})
	line := table.Declare("Line", ir.Span(11, 20), nil)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, types.StructID(0), point.ID)
	assert.Equal(t, types.StructID(1), line.ID)
	assert.Same(t, point, table.Get(point.ID))

	found, ok := table.Lookup("Line")
	require.True(t, ok)
	assert.Same(t, line, found)
	_, ok = table.Lookup("Circle")
	assert.False(t, ok)

	assertICE(t, func() { table.Get(2) })
}

func TestStructFieldsSetOnce(t *testing.T) {
	table := types.NewStructTable()
	line := table.Declare("Line", ir.NoRange, nil)
	point := table.Declare("Point", ir.NoRange, nil)

	// structs can refer to each other once both are declared
	line.SetFields([]types.StructField{
		{Name: "from", Type: types.Struct{Def: point}},
		{Name: "to", Type: types.Struct{Def: point}},
	})
	point.SetFields([]types.StructField{{Name: "x", Type: types.Witness(ir.NoRange)}})

	from, ok := line.GetField("from")
	require.True(t, ok)
	assert.True(t, types.Equal(types.Struct{Def: point}, from))
	_, ok = line.GetField("via")
	assert.False(t, ok)

	assertICE(t, func() { point.SetFields(nil) })
}

func TestStructMethods(t *testing.T) {
	point := types.NewStructType(0, "Point", ir.NoRange, nil)
	point.AddMethod("norm", 3)
	point.AddMethod("add", 1)

	snapshot := point.Methods()
	point.AddMethod("scale", 5)

	collect := func(methods func(yield func(string, types.FuncID) bool)) map[string]types.FuncID {
		all := map[string]types.FuncID{}
		var order []string
		for name, id := range methods {
			all[name] = id
			order = append(order, name)
		}
		assert.IsNonDecreasing(t, order)
		return all
	}

	assert.Equal(t, map[string]types.FuncID{"add": 1, "norm": 3}, collect(snapshot), "a snapshot does not see later methods")
	assert.Equal(t, map[string]types.FuncID{"add": 1, "norm": 3, "scale": 5}, collect(point.Methods()))

	id, ok := point.Method("scale")
	require.True(t, ok)
	assert.Equal(t, types.FuncID(5), id)
	_, ok = point.Method("rotate")
	assert.False(t, ok)
}

func TestStructDefIdentity(t *testing.T) {
	a := types.NewStructType(1, "Point", ir.NoRange, nil)
	sameID := types.NewStructType(1, "Renamed", ir.NoRange, nil)
	other := types.NewStructType(2, "Point", ir.NoRange, nil)

	assert.True(t, a.Equal(sameID))
	assert.False(t, a.Equal(other), "struct names do not matter")
	assert.False(t, a.Equal(nil))
	assert.True(t, (*types.StructType)(nil).Equal(nil))
}
