// Package scenario drives the type checker from YAML files that declare structs,
// the types to check against each other, and the parameters of an entry point.
//
// It stands in for the passes that would otherwise feed the checker from source code:
//
//	structs:
//	  - name: Point
//	    fields: [{name: x, type: Field}, {name: y, type: "pub u8"}]
//	checks:
//	  - op: unify
//	    actual: "$lit"
//	    expected: "u8"
//	    want: ok
//	main:
//	  - {name: x, type: "pub [3]u32"}
package scenario

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"strconv"
)

// File is a parsed scenario
type File struct {
	Structs []StructDecl `yaml:"structs,omitempty"`
	Checks  []Check      `yaml:"checks,omitempty"`
	Main    []Param      `yaml:"main,omitempty"`
}

type StructDecl struct {
	Name    string   `yaml:"name"`
	Fields  []Param  `yaml:"fields,omitempty"`
	Methods []string `yaml:"methods,omitempty"`

	Line int `yaml:"-"`
}

// Param is a name with a type descriptor, used for struct fields and entry point parameters
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	Line int `yaml:"-"`
}

type Op string

const (
	OpUnify   Op = "unify"
	OpSubtype Op = "subtype"
)

// Outcome is what a check resulted in
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

type Check struct {
	// Name defaults to the position of the check in the file
	Name     string  `yaml:"name,omitempty"`
	Op       Op      `yaml:"op"`
	Actual   string  `yaml:"actual"`
	Expected string  `yaml:"expected"`
	Want     Outcome `yaml:"want,omitempty"`

	Line int `yaml:"-"`
}

// yaml.v3 only exposes positions on nodes, so the decoding of anything that
// reports diagnostics goes through the node to remember its line

func (d *StructDecl) UnmarshalYAML(node *yaml.Node) error {
	type plain StructDecl
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = node.Line
	return nil
}

func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	type plain Param
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.Line = node.Line
	return nil
}

func (c *Check) UnmarshalYAML(node *yaml.Node) error {
	type plain Check
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.Line = node.Line
	return nil
}

// Load reads a scenario from path within fsys
func Load(fsys fs.FS, path string) (*File, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	return Parse(data, path)
}

// Decode reads a scenario from r. name is only used in error messages
func Decode(r io.Reader, name string) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", name)
	}
	return Parse(data, name)
}

// Parse parses the content of a scenario file. name is only used in error messages
func Parse(data []byte, name string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", name)
	}
	if err := f.validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	f.setDefaults()
	return &f, nil
}

// validate checks the structure of the file. Type descriptors are only read by Run,
// so that malformed ones are reported as diagnostics alongside type errors
func (f *File) validate() error {
	structNames := set.New[string](len(f.Structs))
	for i, decl := range f.Structs {
		if decl.Name == "" {
			return errors.Errorf("structs[%d]: name is required", i)
		}
		if !structNames.Insert(decl.Name) {
			return errors.Errorf("structs[%d]: struct %s is declared more than once", i, decl.Name)
		}
		fieldNames := set.New[string](len(decl.Fields))
		for j, field := range decl.Fields {
			if field.Name == "" || field.Type == "" {
				return errors.Errorf("structs[%d].fields[%d]: name and type are required", i, j)
			}
			if !fieldNames.Insert(field.Name) {
				return errors.Errorf("structs[%d]: field %s of %s is declared more than once", i, field.Name, decl.Name)
			}
		}
		methodNames := set.From(decl.Methods)
		if methodNames.Size() != len(decl.Methods) {
			return errors.Errorf("structs[%d]: %s declares a method more than once", i, decl.Name)
		}
	}

	for i, check := range f.Checks {
		switch check.Op {
		case OpUnify, OpSubtype:
		default:
			return errors.Errorf("checks[%d]: unknown op '%s', expected %s or %s", i, check.Op, OpUnify, OpSubtype)
		}
		switch check.Want {
		case "", OutcomeOK, OutcomeError:
		default:
			return errors.Errorf("checks[%d]: unknown outcome '%s', expected %s or %s", i, check.Want, OutcomeOK, OutcomeError)
		}
		if check.Actual == "" || check.Expected == "" {
			return errors.Errorf("checks[%d]: actual and expected are required", i)
		}
	}

	paramNames := set.New[string](len(f.Main))
	for i, param := range f.Main {
		if param.Name == "" || param.Type == "" {
			return errors.Errorf("main[%d]: name and type are required", i)
		}
		if !paramNames.Insert(param.Name) {
			return errors.Errorf("main[%d]: parameter %s is declared more than once", i, param.Name)
		}
	}
	return nil
}

func (f *File) setDefaults() {
	for i := range f.Checks {
		if f.Checks[i].Name == "" {
			f.Checks[i].Name = "#" + strconv.Itoa(i)
		}
	}
}
