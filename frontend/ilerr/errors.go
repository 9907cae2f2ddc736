package ilerr

import (
	"fmt"
	"github.com/cottand/circ/frontend/ir"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
var enableDebugErrorPrinting = false

const enableDebugFullStacktrace bool = false

// SetDebugPrinting toggles whether FormatWithCode prefixes errors with the
// frame that created them
func SetDebugPrinting(enabled bool) {
	enableDebugErrorPrinting = enabled
}

type ErrCode int

const (
	None ErrCode = iota
	TypeMismatch
	Unstructured
	ArgumentMismatch
	UnknownStruct
	MalformedType
	ExpectationFailed
)

type IleError interface {
	Error() string
	Code() ErrCode
	ir.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ir.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewTypeMismatch is the usual primary error when two types fail to unify
type NewTypeMismatch struct {
	ir.Positioner
	Expected fmt.Stringer
	Found    fmt.Stringer
	stack    []byte
}

func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected type '%v', but found a different type '%v'", e.Expected, e.Found)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewUnstructured is a free-form note attached to a location,
// typically explaining why a value was forced to be const or non-const
type NewUnstructured struct {
	ir.Positioner
	Msg   string
	stack []byte
}

func (e NewUnstructured) Error() string    { return e.Msg }
func (e NewUnstructured) Code() ErrCode    { return Unstructured }
func (e NewUnstructured) getStack() []byte { return e.stack }
func (e NewUnstructured) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewArgumentMismatch struct {
	ir.Positioner
	Param    string
	Expected fmt.Stringer
	Found    fmt.Stringer
	stack    []byte
}

func (e NewArgumentMismatch) Error() string {
	return fmt.Sprintf("argument '%s' expected type '%v', but was given '%v'", e.Param, e.Expected, e.Found)
}
func (e NewArgumentMismatch) Code() ErrCode    { return ArgumentMismatch }
func (e NewArgumentMismatch) getStack() []byte { return e.stack }
func (e NewArgumentMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnknownStruct struct {
	ir.Positioner
	Name  string
	stack []byte
}

func (e NewUnknownStruct) Error() string {
	return fmt.Sprintf("struct '%s' is not defined", e.Name)
}
func (e NewUnknownStruct) Code() ErrCode    { return UnknownStruct }
func (e NewUnknownStruct) getStack() []byte { return e.stack }
func (e NewUnknownStruct) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewMalformedType struct {
	ir.Positioner
	Source string
	Reason string
	stack  []byte
}

func (e NewMalformedType) Error() string {
	return fmt.Sprintf("could not read type '%s': %s", e.Source, e.Reason)
}
func (e NewMalformedType) Code() ErrCode    { return MalformedType }
func (e NewMalformedType) getStack() []byte { return e.stack }
func (e NewMalformedType) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewExpectationFailed struct {
	ir.Positioner
	Check  string
	Wanted string
	Got    string
	stack  []byte
}

func (e NewExpectationFailed) Error() string {
	return fmt.Sprintf("check %s: wanted %s but got %s", e.Check, e.Wanted, e.Got)
}
func (e NewExpectationFailed) Code() ErrCode    { return ExpectationFailed }
func (e NewExpectationFailed) getStack() []byte { return e.stack }
func (e NewExpectationFailed) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// Panicf raises an ICE. Use it for states earlier passes must have ruled out,
// never for mistakes in the user's program
func Panicf(format string, args ...any) {
	panic(ICE{Msg: fmt.Sprintf(format, args...), stack: debug.Stack()})
}
