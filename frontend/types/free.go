package types

import (
	"cmp"
	"github.com/hashicorp/go-set/v3"
)

// FreeVariables returns the ids of the type variables and constness variables
// in t that nothing resolved yet, in ascending order.
//
// Struct fields are not visited, as they belong to the definition rather than to t
func FreeVariables(t Type) *set.TreeSet[TypeVarID] {
	free := set.NewTreeSet[TypeVarID](cmp.Compare[TypeVarID])
	collectFree(t, free)
	return free
}

func collectFree(t Type, free *set.TreeSet[TypeVarID]) {
	switch t := t.(type) {
	case FieldElement:
		collectFreeConst(t.Const, free)
	case Integer:
		collectFreeConst(t.Const, free)
	case PolymorphicInteger:
		if bound, ok := t.Var.Binding(); ok {
			collectFree(bound, free)
			return
		}
		free.Insert(t.Var.id)
		collectFreeConst(t.Const, free)
	case Array:
		collectFree(t.Elem, free)
	case Tuple:
		for _, elem := range t.Elems {
			collectFree(elem, free)
		}
	}
}

func collectFreeConst(c Constness, free *set.TreeSet[TypeVarID]) {
	if c.kind != constMaybe {
		return
	}
	if resolved, ok := c.Resolved(); ok {
		collectFreeConst(resolved, free)
		return
	}
	free.Insert(c.variable.id)
}

// IsResolved is true when t has no free variables,
// so projecting it does not silently fall back to defaults
func IsResolved(t Type) bool {
	return FreeVariables(t).Empty()
}
