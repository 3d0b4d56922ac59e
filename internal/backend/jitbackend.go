package backend

import (
	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/jit"
	"github.com/funvibe/uplc/internal/term"
)

// JITBackend executes terms by compiling them to closure graphs first.
type JITBackend struct{}

// NewJIT creates a new compiling backend.
func NewJIT() *JITBackend {
	return &JITBackend{}
}

// Run compiles the term and settles the result.
func (b *JITBackend) Run(m *evaluator.Machine, t term.Term) (evaluator.Value, error) {
	return jit.Run(m, t)
}

// RunWith is Run with initial bindings handed to the compiler.
func (b *JITBackend) RunWith(m *evaluator.Machine, t term.Term, bindings *evaluator.Env) (evaluator.Value, error) {
	v, err := jit.New(m).CompileWith(t, bindings)
	if err != nil {
		return nil, err
	}
	return evaluator.ForceRoot(v)
}

// Name returns the backend name.
func (b *JITBackend) Name() string {
	return "jit"
}
