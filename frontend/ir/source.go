package ir

import (
	"encoding/binary"
	"fmt"
	"go/token"
	"hash/fnv"
)

// Positioner allows finding the location in the original source file.
// The easiest way to be a Positioner is to embed a Range
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range is a span of source code.
//
// The zero Range means 'no location', as token.NoPos does for a single position
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

var NoRange = Range{}

func (r Range) Pos() token.Pos { return r.PosStart }
func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether r points somewhere in the source
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

func (r Range) String() string {
	if !r.IsValid() {
		return "-"
	}
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// Hash returns a hash value for the Range
func (r Range) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte{}
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosStart))
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosEnd))
	_, _ = h.Write(arr)
	return h.Sum64()
}

func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner.
func RangeOf(p Positioner) Range {
	if p == nil {
		return Range{}
	}
	if asRange, ok := p.(*Range); ok {
		return *asRange
	}
	if asRange, ok := p.(Range); ok {
		return asRange
	}
	return Range{p.Pos(), p.End()}
}

// Span builds a Range out of raw offsets, mostly useful in tests and tooling
// where there is no token.FileSet around
func Span(start, end int) Range {
	return Range{PosStart: token.Pos(start), PosEnd: token.Pos(end)}
}
