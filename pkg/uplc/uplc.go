// Package uplc is the public surface of the evaluator. It re-exports the
// term and runtime types the internal packages define and wires parsing,
// compilation and execution together for embedders; programs come in as
// text or as constructed terms and come out as settled runtime values.
package uplc

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/funvibe/uplc/internal/backend"
	"github.com/funvibe/uplc/internal/builtin"
	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/jit"
	"github.com/funvibe/uplc/internal/parser"
	"github.com/funvibe/uplc/internal/term"
)

// Term model aliases
type Term = term.Term
type Program = term.Program
type Version = term.Version

// Runtime value aliases
type Value = evaluator.Value
type Function = evaluator.Function
type Thunk = evaluator.Thunk
type Scalar = evaluator.Scalar
type Tagged = evaluator.Tagged

// Machine aliases
type Machine = evaluator.Machine
type Builtin = evaluator.Builtin
type Catalog = evaluator.Catalog
type Env = evaluator.Env

// Constant model aliases
type Constant = constant.Constant
type Data = constant.Data

// Error aliases
type ParseError = parser.ParseError
type CompileError = evaluator.CompileError
type CompileErrorKind = evaluator.CompileErrorKind
type RuntimeError = evaluator.RuntimeError
type RuntimeErrorKind = evaluator.RuntimeErrorKind

// Re-export error kinds
const (
	UnboundVariable         = evaluator.UnboundVariable
	UnknownBuiltin          = evaluator.UnknownBuiltin
	UnsupportedConstantKind = evaluator.UnsupportedConstantKind

	NotAFunction          = evaluator.NotAFunction
	NotAThunk             = evaluator.NotAThunk
	NotATaggedValue       = evaluator.NotATaggedValue
	BranchIndexOutOfRange = evaluator.BranchIndexOutOfRange
	ExplicitError         = evaluator.ExplicitError
	BuiltinFailure        = evaluator.BuiltinFailure
)

// Parse reads a complete (program version body) unit.
func Parse(src string) (*Program, error) {
	return parser.Parse(src)
}

// ParseTerm reads a bare term at the latest language version.
func ParseTerm(src string) (Term, error) {
	return parser.ParseTerm(src)
}

// NewMachine builds a machine carrying the standard builtin catalog. One
// machine serves one evaluation at a time; its Logs collect trace output
// across every run it hosts.
func NewMachine() *Machine {
	return evaluator.NewMachine(builtin.Catalog())
}

// Compile stages t on m once; the result can be applied or forced any
// number of times without re-translating the term. A root delay comes
// back as an unforced Thunk.
func Compile(m *Machine, t Term) (Value, error) {
	return jit.New(m).Compile(t)
}

// CompileWith is Compile with initial bindings standing in for enclosing
// binders, innermost first.
func CompileWith(m *Machine, t Term, bindings *Env) (Value, error) {
	return jit.New(m).CompileWith(t, bindings)
}

// Apply invokes a compiled function with one argument.
func Apply(v, arg Value) (Value, error) {
	return evaluator.Apply(v, arg)
}

// Force resumes a delayed computation. Forcing the same Thunk twice does
// the work twice.
func Force(v Value) (Value, error) {
	return evaluator.Force(v)
}

// Result is a finished evaluation: the settled value plus everything
// trace logged while producing it.
type Result struct {
	Value Value
	Logs  []string
}

// Option adjusts a single Evaluate or Run call.
type Option func(*settings)

type settings struct {
	backend  string
	logger   *zap.Logger
	bindings *evaluator.Env
}

// WithBackend selects the execution engine by name, "jit" or "tree-walk".
// The compiling engine is the default.
func WithBackend(name string) Option {
	return func(s *settings) { s.backend = name }
}

// WithLogger attaches a structured logger to the machine for this run.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) { s.logger = log }
}

// WithBinding makes value visible to the program under name, as if an
// enclosing binder supplied it. A later binding shadows an earlier one
// with the same name.
func WithBinding(name string, value Value) Option {
	return func(s *settings) { s.bindings = s.bindings.Bind(name, value) }
}

// Evaluate runs t to completion on a fresh machine. The result carries
// the trace log even when evaluation fails, so the side channel stays
// available for diagnosing the failure.
func Evaluate(t Term, opts ...Option) (Result, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	engine, err := backend.ForName(s.backend)
	if err != nil {
		return Result{}, err
	}
	m := NewMachine()
	if s.logger != nil {
		m.WithLogger(s.logger)
	}
	v, err := engine.RunWith(m, t, s.bindings)
	if err != nil {
		return Result{Logs: m.Logs}, err
	}
	return Result{Value: v, Logs: m.Logs}, nil
}

// Run parses src as a program and evaluates its body.
func Run(src string, opts ...Option) (Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(prog.Body, opts...)
}

// ToValue wraps a native Go value as a runtime value, for handing host
// data to a program through bindings or Apply.
func ToValue(val any) (Value, error) {
	switch v := val.(type) {
	case Value:
		return v, nil
	case Constant:
		return &Scalar{Constant: v}, nil
	case Data:
		return &Scalar{Constant: &constant.DataConstant{Value: v}}, nil
	case bool:
		return &Scalar{Constant: constant.Boolean(v)}, nil
	case int:
		return &Scalar{Constant: constant.Int(int64(v))}, nil
	case int64:
		return &Scalar{Constant: constant.Int(v)}, nil
	case *big.Int:
		return &Scalar{Constant: &constant.Integer{Value: v}}, nil
	case string:
		return &Scalar{Constant: constant.Str(v)}, nil
	case []byte:
		return &Scalar{Constant: constant.Bytes(v)}, nil
	case nil:
		return &Scalar{Constant: constant.UnitVal}, nil
	}
	return nil, fmt.Errorf("no runtime representation for %T", val)
}
