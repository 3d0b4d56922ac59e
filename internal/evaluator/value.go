// Package evaluator holds the runtime model shared by both backends: the
// value union produced by evaluation, the binding environment, the error
// classes, the machine that hosts builtin execution and tracing, and a
// plain tree-walking evaluator that serves as the semantic reference.
package evaluator

import (
	"fmt"

	"github.com/funvibe/uplc/internal/constant"
)

type Kind string

const (
	FUNCTION_VAL Kind = "FUNCTION"
	THUNK_VAL    Kind = "THUNK"
	SCALAR_VAL   Kind = "SCALAR"
	TAGGED_VAL   Kind = "TAGGED"
)

// Value is what evaluation produces: a callable closure, a suspended
// computation, a decoded constant, or a tagged sum. Inspect renders a
// printable form for diagnostics and drivers.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Function wraps a host closure of exactly one argument.
type Function struct {
	Fn func(arg Value) (Value, error)
}

func (f *Function) Kind() Kind      { return FUNCTION_VAL }
func (f *Function) Inspect() string { return "<function>" }

// Thunk is a suspended computation. Run re-executes the body in full on
// every invocation; nothing is memoized, so forcing twice does the work
// twice.
type Thunk struct {
	Run func() (Value, error)
}

func (t *Thunk) Kind() Kind      { return THUNK_VAL }
func (t *Thunk) Inspect() string { return "<delayed>" }

// Scalar is a decoded constant.
type Scalar struct {
	Constant constant.Constant
}

func (s *Scalar) Kind() Kind      { return SCALAR_VAL }
func (s *Scalar) Inspect() string { return fmt.Sprintf("(con %s %s)", s.Constant.Type(), s.Constant) }

// Tagged is a constructor application: a tag and the evaluated fields in
// order.
type Tagged struct {
	Tag    uint64
	Fields []Value
}

func (t *Tagged) Kind() Kind { return TAGGED_VAL }
func (t *Tagged) Inspect() string {
	out := fmt.Sprintf("(constr %d", t.Tag)
	for _, f := range t.Fields {
		out += " " + f.Inspect()
	}
	return out + ")"
}

// Apply invokes v with arg, failing with NotAFunction when v cannot be
// called.
func Apply(v, arg Value) (Value, error) {
	fn, ok := v.(*Function)
	if !ok {
		return nil, &RuntimeError{Kind: NotAFunction, Detail: fmt.Sprintf("got %s", v.Kind())}
	}
	return fn.Fn(arg)
}

// Force resumes a suspended computation, failing with NotAThunk when v is
// anything else.
func Force(v Value) (Value, error) {
	t, ok := v.(*Thunk)
	if !ok {
		return nil, &RuntimeError{Kind: NotAThunk, Detail: fmt.Sprintf("got %s", v.Kind())}
	}
	return t.Run()
}

// ForceRoot settles a finished evaluation: a root thunk is forced exactly
// once, anything else passes through.
func ForceRoot(v Value) (Value, error) {
	if t, ok := v.(*Thunk); ok {
		return t.Run()
	}
	return v, nil
}

// DecodeConstant maps a literal onto its Scalar. Every kind of the closed
// constant union decodes losslessly; anything else is a coverage gap
// reported as a compile error.
func DecodeConstant(c constant.Constant) (Value, error) {
	switch c.(type) {
	case *constant.Integer, *constant.ByteString, *constant.String, *constant.Unit,
		*constant.Bool, *constant.DataConstant, *constant.List, *constant.Pair,
		*constant.G1Element, *constant.G2Element, *constant.MlResult:
		return &Scalar{Constant: c}, nil
	case nil:
		return nil, &CompileError{Kind: UnsupportedConstantKind, Name: "<nil>"}
	default:
		return nil, &CompileError{Kind: UnsupportedConstantKind, Name: fmt.Sprintf("%T", c)}
	}
}
