package scenario

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointScenario = `
structs:
  - name: Point
    fields:
      - {name: x, type: Field}
      - {name: y, type: "pub u8"}
    methods: [norm, add]
checks:
  - op: unify
    actual: "$lit"
    expected: u8
    want: ok
  - name: const into witness
    op: subtype
    actual: const Field
    expected: Field
main:
  - {name: p, type: "pub [3]u32"}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(pointScenario), "point.yaml")
	require.NoError(t, err)

	require.Len(t, f.Structs, 1)
	point := f.Structs[0]
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, 3, point.Line)
	assert.Equal(t, []string{"norm", "add"}, point.Methods)
	require.Len(t, point.Fields, 2)
	assert.Equal(t, Param{Name: "y", Type: "pub u8", Line: 6}, point.Fields[1])

	require.Len(t, f.Checks, 2)
	assert.Equal(t, Check{Name: "#0", Op: OpUnify, Actual: "$lit", Expected: "u8", Want: OutcomeOK, Line: 9}, f.Checks[0])
	assert.Equal(t, "const into witness", f.Checks[1].Name)
	assert.Equal(t, Outcome(""), f.Checks[1].Want)

	assert.Equal(t, []Param{{Name: "p", Type: "pub [3]u32", Line: 18}}, f.Main)
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"point.yaml": {Data: []byte(pointScenario)}}

	f, err := Load(fsys, "point.yaml")
	require.NoError(t, err)
	assert.Len(t, f.Checks, 2)

	_, err = Load(fsys, "missing.yaml")
	assert.ErrorContains(t, err, "reading scenario missing.yaml")

	f, err = Decode(strings.NewReader(pointScenario), "stdin")
	require.NoError(t, err)
	assert.Len(t, f.Main, 1)
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		contains string
	}{
		{"not yaml", "checks: [", "parsing bad.yaml"},
		{"unnamed struct", "structs: [{fields: []}]", "structs[0]: name is required"},
		{"duplicate struct", "structs: [{name: A}, {name: A}]", "struct A is declared more than once"},
		{"duplicate field", "structs: [{name: A, fields: [{name: x, type: Field}, {name: x, type: u8}]}]", "field x of A"},
		{"field without type", "structs: [{name: A, fields: [{name: x}]}]", "structs[0].fields[0]"},
		{"duplicate method", "structs: [{name: A, methods: [m, m]}]", "declares a method more than once"},
		{"unknown op", "checks: [{op: cast, actual: Field, expected: Field}]", "unknown op 'cast'"},
		{"unknown outcome", "checks: [{op: unify, actual: Field, expected: Field, want: maybe}]", "unknown outcome 'maybe'"},
		{"missing expected", "checks: [{op: unify, actual: Field}]", "actual and expected are required"},
		{"duplicate parameter", "main: [{name: x, type: Field}, {name: x, type: Field}]", "parameter x is declared more than once"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
			assert.True(t, strings.HasPrefix(err.Error(), "bad.yaml") || strings.HasPrefix(err.Error(), "parsing bad.yaml"), err.Error())
		})
	}
}
