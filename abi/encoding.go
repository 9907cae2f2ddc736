package abi

import (
	"encoding/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	kindField   = "field"
	kindInteger = "integer"
	kindArray   = "array"
)

// wireType is the shared JSON and YAML shape of a Type, tagged by kind
type wireType struct {
	Kind       string     `json:"kind" yaml:"kind"`
	Visibility Visibility `json:"visibility" yaml:"visibility"`
	Sign       string     `json:"sign,omitempty" yaml:"sign,omitempty"`
	Width      uint32     `json:"width,omitempty" yaml:"width,omitempty"`
	Length     uint64     `json:"length,omitempty" yaml:"length,omitempty"`
	Type       *wireType  `json:"type,omitempty" yaml:"type,omitempty"`
}

type wireParam struct {
	Name string   `json:"name" yaml:"name"`
	Type wireType `json:"type" yaml:"type"`
}

type wireAbi struct {
	Parameters []wireParam `json:"parameters" yaml:"parameters"`
}

func toWire(t Type) wireType {
	switch t := t.(type) {
	case Field:
		return wireType{Kind: kindField, Visibility: t.Visibility}
	case Integer:
		return wireType{Kind: kindInteger, Visibility: t.Visibility, Sign: t.Sign.String(), Width: t.Width}
	case Array:
		elem := toWire(t.Elem)
		return wireType{Kind: kindArray, Visibility: t.Visibility, Length: t.Length, Type: &elem}
	default:
		panic(errors.Errorf("unknown abi type %T", t))
	}
}

func fromWire(w wireType) (Type, error) {
	switch w.Kind {
	case kindField:
		return Field{Visibility: w.Visibility}, nil
	case kindInteger:
		var sign Sign
		switch w.Sign {
		case "unsigned":
			sign = Unsigned
		case "signed":
			sign = Signed
		default:
			return nil, errors.Errorf("unknown integer sign %q", w.Sign)
		}
		return Integer{Sign: sign, Width: w.Width, Visibility: w.Visibility}, nil
	case kindArray:
		if w.Type == nil {
			return nil, errors.New("array is missing its element type")
		}
		elem, err := fromWire(*w.Type)
		if err != nil {
			return nil, err
		}
		return Array{Visibility: w.Visibility, Length: w.Length, Elem: elem}, nil
	default:
		return nil, errors.Errorf("unknown abi type kind %q", w.Kind)
	}
}

func (a Abi) toWire() wireAbi {
	params := make([]wireParam, len(a.Parameters))
	for i, param := range a.Parameters {
		params[i] = wireParam{Name: param.Name, Type: toWire(param.Type)}
	}
	return wireAbi{Parameters: params}
}

func (w wireAbi) toAbi() (Abi, error) {
	params := make([]Param, len(w.Parameters))
	for i, param := range w.Parameters {
		t, err := fromWire(param.Type)
		if err != nil {
			return Abi{}, errors.Wrapf(err, "parameter %s", param.Name)
		}
		params[i] = Param{Name: param.Name, Type: t}
	}
	return Abi{Parameters: params}, nil
}

func (a Abi) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toWire())
}

func (a *Abi) UnmarshalJSON(data []byte) error {
	var w wireAbi
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toAbi()
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

func (a Abi) MarshalYAML() (any, error) {
	return a.toWire(), nil
}

func (a *Abi) UnmarshalYAML(node *yaml.Node) error {
	var w wireAbi
	if err := node.Decode(&w); err != nil {
		return err
	}
	decoded, err := w.toAbi()
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
