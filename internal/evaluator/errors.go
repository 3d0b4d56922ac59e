package evaluator

import "fmt"

// Translation failures: the input term is malformed relative to the scope
// and catalog at hand. Never retryable.
type CompileErrorKind string

const (
	UnboundVariable         CompileErrorKind = "unbound variable"
	UnknownBuiltin          CompileErrorKind = "unknown builtin"
	UnsupportedConstantKind CompileErrorKind = "unsupported constant kind"
)

type CompileError struct {
	Kind CompileErrorKind
	Name string
}

func (e *CompileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("compile: %s", e.Kind)
	}
	return fmt.Sprintf("compile: %s: %s", e.Kind, e.Name)
}

// Evaluation failures. The first one terminates the run; there is no
// handler construct in the language, so none of these are recoverable.
type RuntimeErrorKind string

const (
	NotAFunction          RuntimeErrorKind = "not a function"
	NotAThunk             RuntimeErrorKind = "not a thunk"
	NotATaggedValue       RuntimeErrorKind = "not a tagged value"
	BranchIndexOutOfRange RuntimeErrorKind = "branch index out of range"
	ExplicitError         RuntimeErrorKind = "explicit error"
	BuiltinFailure        RuntimeErrorKind = "builtin failure"
)

type RuntimeError struct {
	Kind    RuntimeErrorKind
	Builtin string // set when a builtin raised the failure
	Detail  string
}

func (e *RuntimeError) Error() string {
	out := "evaluate: " + string(e.Kind)
	if e.Builtin != "" {
		out += ": " + e.Builtin
	}
	if e.Detail != "" {
		out += ": " + e.Detail
	}
	return out
}

// BuiltinErrorf builds the failure a builtin reports when its arguments are
// structurally wrong or its domain rules are violated.
func BuiltinErrorf(name, format string, a ...any) *RuntimeError {
	return &RuntimeError{Kind: BuiltinFailure, Builtin: name, Detail: fmt.Sprintf(format, a...)}
}
