package scenario

import (
	"fmt"
	"github.com/cottand/circ/abi"
	"github.com/cottand/circ/backend/memory"
	"github.com/cottand/circ/frontend/ilerr"
	"github.com/cottand/circ/frontend/ir"
	"github.com/cottand/circ/frontend/types"
	"github.com/cottand/circ/internal/log"
	"github.com/pkg/errors"
	"math"
)

var scenarioLogger = log.DefaultLogger.With("section", "scenario")

// Result is the outcome of a single check
type Result struct {
	Check Check
	// Outcome is empty when one of the types could not be read
	Outcome Outcome
	// Diagnostics is what the checker reported, if anything
	Diagnostics []ilerr.IleError
}

// Entry is a parameter of the entry point together with its type
type Entry struct {
	Param
	Type types.Type
	// Projectable is false when Type cannot be part of the ABI
	Projectable bool
}

type Report struct {
	Ctx     *types.TypeCtx
	Results []Result
	Main    []Entry

	// Problems are what make a scenario fail: types that could not be read,
	// diagnostics of checks which did not expect any, and checks whose outcome was not the wanted one
	Problems ilerr.Errors
}

func (r *Report) Failed() bool { return r.Problems.HasError() }

// lineSpan locates a scenario element. Positions in scenarios are line numbers
func lineSpan(line int) ir.Range { return ir.Span(line, line) }

// Run declares the structs of f, runs its checks in order, and types its entry point.
// Checks share variables: a "$x" bound by one check stays bound for the ones after it.
//
// Checking against an 'unspecified' type is an internal error and panics
func Run(f *File) *Report {
	ctx := types.NewEmptyTypeCtx()
	d := newDescriptors(ctx)
	r := &Report{Ctx: ctx}

	// declare every struct before reading fields, so they can refer to each other in any order
	defs := make([]*types.StructType, len(f.Structs))
	for i, decl := range f.Structs {
		defs[i] = ctx.DeclareStruct(decl.Name, lineSpan(decl.Line), nil)
	}
	var nextMethod types.FuncID
	for i, decl := range f.Structs {
		fields := make([]types.StructField, 0, len(decl.Fields))
		for _, field := range decl.Fields {
			span := lineSpan(field.Line)
			t, ok := r.read(d, field.Type, span)
			if !ok {
				t = types.Error{}
			}
			fields = append(fields, types.StructField{Name: field.Name, Type: t, Range: span})
		}
		defs[i].SetFields(fields)
		for _, method := range decl.Methods {
			defs[i].AddMethod(method, nextMethod)
			nextMethod++
		}
	}

	for _, check := range f.Checks {
		r.Results = append(r.Results, r.runCheck(d, check))
	}

	// every field element of the entry point is a witness, and witnesses are 32 bit indices
	var witnesses uint64
	for _, param := range f.Main {
		span := lineSpan(param.Line)
		entry := Entry{Param: param}
		t, ok := r.read(d, param.Type, span)
		if ok {
			entry.Type = t
			reason := entryPointProblem(t)
			if reason == "" {
				count := types.AsAbiType(t).FieldCount()
				if witnesses+count > math.MaxUint32 {
					reason = fmt.Sprintf("the entry point takes more than %d field elements", uint32(math.MaxUint32))
				} else {
					witnesses += count
				}
			}
			if reason != "" {
				r.Problems.With(ilerr.New(ilerr.NewUnstructured{
					Positioner: span,
					Msg:        fmt.Sprintf("parameter %s of main: %s", param.Name, reason),
				}))
			} else {
				entry.Projectable = true
			}
		}
		r.Main = append(r.Main, entry)
	}

	scenarioLogger.Debug("ran scenario", "checks", len(r.Results), "problems", &r.Problems)
	return r
}

// Diagnose parses and runs the scenario in data, returning the report together with
// every problem found. A scenario that cannot be parsed has no report, and a single
// ilerr.Unclassified problem wrapping the parse error
func Diagnose(data []byte, name string) (*Report, *ilerr.Errors) {
	problems := &ilerr.Errors{}
	f, err := Parse(data, name)
	if err != nil {
		return nil, problems.With(ilerr.New(ilerr.Unclassified{From: err, Positioner: ir.NoRange}))
	}
	report := Run(f)
	return report, problems.Merge(&report.Problems)
}

func (r *Report) runCheck(d *descriptors, check Check) Result {
	span := lineSpan(check.Line)
	result := Result{Check: check}
	actual, okActual := r.read(d, check.Actual, span)
	expected, okExpected := r.read(d, check.Expected, span)
	if !okActual || !okExpected {
		return result
	}

	before := r.Ctx.Errors.Len()
	makeErr := types.Mismatch(actual, expected, span)
	switch check.Op {
	case OpUnify:
		r.Ctx.Unify(actual, expected, span, makeErr)
	case OpSubtype:
		r.Ctx.MakeSubtypeOf(actual, expected, span, makeErr)
	default:
		ilerr.Panicf("unknown op %s, the scenario should have been validated", check.Op)
	}
	result.Diagnostics = r.Ctx.Errors.Errors()[before:]

	result.Outcome = OutcomeOK
	if len(result.Diagnostics) > 0 {
		result.Outcome = OutcomeError
	}
	scenarioLogger.Debug("ran check", "name", check.Name, "op", check.Op, "outcome", result.Outcome)

	switch {
	case check.Want == "":
		r.Problems.With(result.Diagnostics...)
	case check.Want != result.Outcome:
		r.Problems.With(result.Diagnostics...)
		r.Problems.With(ilerr.New(ilerr.NewExpectationFailed{
			Positioner: span,
			Check:      check.Name,
			Wanted:     string(check.Want),
			Got:        string(result.Outcome),
		}))
	}
	return result
}

func (r *Report) read(d *descriptors, src string, span ir.Range) (types.Type, bool) {
	t, err := d.read(src, span)
	if err == nil {
		return t, true
	}
	var unknown *unknownStructError
	if errors.As(err, &unknown) {
		r.Problems.With(ilerr.New(ilerr.NewUnknownStruct{Positioner: span, Name: unknown.name}))
	} else {
		r.Problems.With(ilerr.New(ilerr.NewMalformedType{Positioner: span, Source: src, Reason: err.Error()}))
	}
	return nil, false
}

// entryPointProblem says why t cannot be a parameter of the entry point, if it cannot
func entryPointProblem(t types.Type) string {
	switch t := t.(type) {
	case types.FieldElement, types.Integer, types.PolymorphicInteger:
		return ""
	case types.Array:
		if !t.Size.IsFixed() {
			return "variable sized arrays cannot be part of the entry point"
		}
		if length, _ := t.Size.Len(); length == 0 {
			return "empty arrays cannot be part of the entry point"
		}
		if reason := entryPointProblem(t.Elem); reason != "" {
			return reason
		}
		if _, fits := memory.FlatLength(t); !fits {
			return fmt.Sprintf("arrays of more than %d elements cannot be laid out in memory", uint32(math.MaxUint32))
		}
		return ""
	default:
		return fmt.Sprintf("%v cannot be part of the entry point", t)
	}
}

// Abi describes the parameters of main that can be projected.
// Unresolved parameters fall back to their defaults, see Unresolved
func (r *Report) Abi() abi.Abi {
	var params []abi.Param
	for _, entry := range r.Main {
		if !entry.Projectable {
			continue
		}
		params = append(params, abi.Param{Name: entry.Name, Type: types.AsAbiType(entry.Type)})
	}
	return abi.Abi{Parameters: params}
}

// Unresolved lists the parameters of main whose type still has free variables,
// which Abi and Layout replace by their defaults
func (r *Report) Unresolved() []string {
	var names []string
	for _, entry := range r.Main {
		if entry.Type != nil && !types.IsResolved(entry.Type) {
			names = append(names, entry.Name)
		}
	}
	return names
}

// Layout allocates memory for the array parameters of main and assigns witnesses
// to every parameter in order, one per field element.
// The scenario must not have failed: Run rejects entry points that do not fit in memory
func (r *Report) Layout() *memory.Memory {
	mem := memory.New()
	var next memory.Witness
	for i, entry := range r.Main {
		if !entry.Projectable {
			continue
		}
		count := memory.Witness(types.AsAbiType(entry.Type).FieldCount())
		if types.IsFixedSizedArray(entry.Type) {
			array := mem.Array(mem.AllocateArray(memory.DefinitionID(i), entry.Name, entry.Type))
			witnesses := make([]memory.Witness, count)
			for j := range witnesses {
				witnesses[j] = next + memory.Witness(j)
			}
			array.SetWitnesses(witnesses)
		}
		next += count
	}
	return mem
}
