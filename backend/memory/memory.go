// Package memory keeps track of where the arrays of a circuit live once their types are resolved.
//
// Arrays are laid out one after the other in a flat address space, each element taking one address
package memory

import (
	"fmt"
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/types"
	"github.com/cottand/circ/internal/log"
	"math"
	"math/big"
)

var memLogger = log.DefaultLogger.With("section", "memory")

// FieldModulus is the order of the scalar field of BN254, which field elements live in
var FieldModulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

type ArrayID uint32

// DefinitionID identifies the variable an array was declared as
type DefinitionID uint32

// Witness is the index of a witness in the circuit
type Witness uint32

type MemArray struct {
	ID   ArrayID
	Name string
	Def  DefinitionID
	// Element is the type of every element, which must be a resolved scalar
	Element types.Type
	Len     uint32
	// Address is the base address of the array
	Address uint32
	// Max is the largest value an element can hold
	Max *big.Int

	Values []Witness
}

// SetWitnesses records the witnesses holding the values of the array.
// There is either one per element, or none
func (a *MemArray) SetWitnesses(witnesses []Witness) {
	a.Values = append(a.Values, witnesses...)
	if len(a.Values) != 0 && len(a.Values) != int(a.Len) {
		ilerr.Panicf("array %s has %d elements but was given %d witnesses", a.Name, a.Len, len(a.Values))
	}
}

func (a *MemArray) String() string {
	return fmt.Sprintf("%s: [%d]%v at %d", a.Name, a.Len, a.Element, a.Address)
}

type Memory struct {
	arrays []*MemArray
	// LastAddress is the first address not used by any array
	LastAddress uint32
}

func New() *Memory {
	return &Memory{}
}

// AllocateArray allocates the array def was declared as, after every array allocated so far.
// t must be a resolved, fixed size array type whose flattened length fits in an address, see FlatLength.
// Nested arrays are flattened: [2][3]u8 takes 6 addresses of u8
func (m *Memory) AllocateArray(def DefinitionID, name string, t types.Type) ArrayID {
	array, ok := t.(types.Array)
	if !ok {
		ilerr.Panicf("cannot allocate %s of type %v, which is not an array", name, t)
	}
	length, ok := FlatLength(array)
	if !ok {
		ilerr.Panicf("array %s of type %v does not fit in memory", name, t)
	}
	element := array.Elem
	for {
		inner, ok := element.(types.Array)
		if !ok {
			break
		}
		element = inner.Elem
	}
	return m.newArray(def, name, element, length)
}

// FlatLength is the number of addresses array takes once nested arrays are flattened.
// It is false if the length does not fit in 32 bits
func FlatLength(array types.Array) (uint32, bool) {
	var length uint64 = 1
	var t types.Type = array
	for {
		inner, ok := t.(types.Array)
		if !ok {
			return uint32(length), true
		}
		size := ArraySizeOf(inner.Size)
		if size > math.MaxUint32 || length*size > math.MaxUint32 {
			return 0, false
		}
		length *= size
		t = inner.Elem
	}
}

func (m *Memory) newArray(def DefinitionID, name string, element types.Type, length uint32) ArrayID {
	if length == 0 {
		ilerr.Panicf("cannot allocate array %s of length 0", name)
	}
	if uint64(m.LastAddress)+uint64(length) > math.MaxUint32 {
		ilerr.Panicf("no address space left for array %s of length %d", name, length)
	}
	id := ArrayID(len(m.arrays))
	array := &MemArray{
		ID:      id,
		Name:    name,
		Def:     def,
		Element: element,
		Len:     length,
		Address: m.LastAddress,
		Max:     MaxSize(element),
	}
	m.arrays = append(m.arrays, array)
	m.LastAddress += length
	memLogger.Debug("allocated array", "name", name, "id", id, "len", length, "address", array.Address)
	return id
}

// FindArray returns the array allocated for def
func (m *Memory) FindArray(def DefinitionID) (*MemArray, bool) {
	for _, array := range m.arrays {
		if array.Def == def {
			return array, true
		}
	}
	return nil, false
}

func (m *Memory) Array(id ArrayID) *MemArray {
	if int(id) >= len(m.arrays) {
		ilerr.Panicf("array id %d out of range (%d arrays allocated)", id, len(m.arrays))
	}
	return m.arrays[id]
}

func (m *Memory) Len() int { return len(m.arrays) }

// Arrays returns the arrays in allocation order
func (m *Memory) Arrays() []*MemArray { return m.arrays }

// ArraySizeOf is the length of a fixed size. Variable sizes must have been resolved earlier
func ArraySizeOf(size types.ArraySize) uint64 {
	length, fixed := size.Len()
	if !fixed {
		ilerr.Panicf("variable sized arrays must be resolved to a fixed size before being laid out in memory")
	}
	return length
}

// MaxSize is the largest value an element of type t can hold
func MaxSize(t types.Type) *big.Int {
	switch t := t.(type) {
	case types.FieldElement:
		return new(big.Int).Sub(FieldModulus, big.NewInt(1))
	case types.Integer:
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits))
		return limit.Sub(limit, big.NewInt(1))
	case types.PolymorphicInteger:
		if bound, ok := t.Var.Binding(); ok {
			return MaxSize(bound)
		}
		return MaxSize(types.DefaultIntType(t.Const.Span()))
	case types.Bool:
		return big.NewInt(1)
	default:
		ilerr.Panicf("arrays of %v cannot be laid out in memory", t)
		return nil
	}
}
