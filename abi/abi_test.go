package abi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = Abi{Parameters: []Param{
	{Name: "x", Type: Field{Visibility: Private}},
	{Name: "ys", Type: Array{Visibility: Public, Length: 3, Elem: Integer{Sign: Unsigned, Width: 32, Visibility: Public}}},
	{Name: "grid", Type: Array{Length: 2, Elem: Array{Length: 4, Elem: Field{}}}},
}}

func TestFieldCount(t *testing.T) {
	assert.EqualValues(t, 1, Field{}.FieldCount())
	assert.EqualValues(t, 12, sample.FieldCount())
	assert.EqualValues(t, 3, sample.PublicAbi().FieldCount())
	assert.Equal(t, []string{"ys"}, sample.PublicAbi().ParamNames())
}

func TestJSONShape(t *testing.T) {
	encoded, err := json.Marshal(Abi{Parameters: sample.Parameters[1:2]})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parameters":[{"name":"ys","type":{
		"kind":"array","visibility":"public","length":3,
		"type":{"kind":"integer","visibility":"public","sign":"unsigned","width":32}}}]}`, string(encoded))
}

func TestDecodeEncoded(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		encoded, err := json.Marshal(sample)
		require.NoError(t, err)
		var decoded Abi
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, sample, decoded)
	})
	t.Run("yaml", func(t *testing.T) {
		encoded, err := yaml.Marshal(sample)
		require.NoError(t, err)
		var decoded Abi
		require.NoError(t, yaml.Unmarshal(encoded, &decoded))
		assert.Equal(t, sample, decoded)
	})
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	var decoded Abi
	err := json.Unmarshal([]byte(`{"parameters":[{"name":"b","type":{"kind":"bool","visibility":"private"}}]}`), &decoded)
	assert.ErrorContains(t, err, "unknown abi type kind")
}
