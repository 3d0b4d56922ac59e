package backend

import (
	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/term"
)

// TreeWalkBackend wraps the reference tree-walk evaluator.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend.
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run validates the whole term, walks it, and settles the result. The
// upfront validation makes malformed names, builtins and constants fail
// on exactly the inputs the compiling backend rejects, reached by
// evaluation or not.
func (b *TreeWalkBackend) Run(m *evaluator.Machine, t term.Term) (evaluator.Value, error) {
	return b.RunWith(m, t, nil)
}

// RunWith is Run with initial bindings. Bound names count as in scope
// during validation and resolve against the bindings during the walk.
func (b *TreeWalkBackend) RunWith(m *evaluator.Machine, t term.Term, bindings *evaluator.Env) (evaluator.Value, error) {
	if err := evaluator.Check(t, bindings.Names(), m.Catalog()); err != nil {
		return nil, err
	}
	v, err := m.Eval(t, bindings)
	if err != nil {
		return nil, err
	}
	return evaluator.ForceRoot(v)
}

// Name returns the backend name.
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
