package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/circ/frontend/ir"
	"iter"
	"strings"
)

type StructID uint32

// FuncID identifies a function, as handed out by whoever owns function definitions
type FuncID uint32

type StructField struct {
	Name string
	Type Type
	ir.Range
}

// StructType is a nominal struct definition.
// Two StructType are the same struct only if they have the same ID
type StructType struct {
	ID     StructID
	Name   string
	Fields []StructField
	ir.Range

	fieldsSet bool
	// methods is a persistent map so Methods can hand out snapshots while more methods are discovered
	methods *immutable.SortedMap[string, FuncID]
}

type stringComparer struct{}

func (stringComparer) Compare(a, b string) int { return strings.Compare(a, b) }

func NewStructType(id StructID, name string, span ir.Range, fields []StructField) *StructType {
	return &StructType{
		ID:        id,
		Name:      name,
		Fields:    fields,
		Range:     span,
		fieldsSet: fields != nil,
		methods:   immutable.NewSortedMap[string, FuncID](stringComparer{}),
	}
}

func (s *StructType) Equal(other *StructType) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

func (s *StructType) String() string {
	if s == nil {
		return "<nil struct>"
	}
	return s.Name
}

// SetFields finalises the field list of a struct declared without one.
// Fields can only be set once
func (s *StructType) SetFields(fields []StructField) {
	if s.fieldsSet {
		panicf("fields of struct %s were already set", s.Name)
	}
	s.Fields = fields
	s.fieldsSet = true
}

func (s *StructType) GetField(name string) (Type, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Type, true
		}
	}
	return nil, false
}

func (s *StructType) AddMethod(name string, id FuncID) {
	s.methods = s.methods.Set(name, id)
}

func (s *StructType) Method(name string) (FuncID, bool) {
	return s.methods.Get(name)
}

// Methods iterates over the methods known so far, sorted by name
func (s *StructType) Methods() iter.Seq2[string, FuncID] {
	snapshot := s.methods
	return func(yield func(string, FuncID) bool) {
		it := snapshot.Iterator()
		for !it.Done() {
			name, id, _ := it.Next()
			if !yield(name, id) {
				return
			}
		}
	}
}

// StructTable owns every struct definition of a compilation unit
type StructTable struct {
	defs   []*StructType
	byName map[string]*StructType
}

func NewStructTable() *StructTable {
	return &StructTable{byName: make(map[string]*StructType)}
}

// Declare adds a new struct. fields may be nil, to be set later with StructType.SetFields,
// so that structs can refer to each other
func (t *StructTable) Declare(name string, span ir.Range, fields []StructField) *StructType {
	def := NewStructType(StructID(len(t.defs)), name, span, fields)
	t.defs = append(t.defs, def)
	t.byName[name] = def
	return def
}

func (t *StructTable) Get(id StructID) *StructType {
	if int(id) >= len(t.defs) {
		panicf("struct id %d out of range (%d structs declared)", id, len(t.defs))
	}
	return t.defs[id]
}

func (t *StructTable) Lookup(name string) (*StructType, bool) {
	def, ok := t.byName[name]
	return def, ok
}

func (t *StructTable) Len() int { return len(t.defs) }
