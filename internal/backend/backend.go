// Package backend provides an interface for the two execution engines.
// This allows switching between the tree-walk evaluator and the closure
// compiler; both implement the same semantics and must stay
// indistinguishable from the outside.
package backend

import (
	"fmt"

	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/term"
)

// Backend is the interface for execution engines.
type Backend interface {
	// Run evaluates the term on the machine and returns the settled result.
	Run(m *evaluator.Machine, t term.Term) (evaluator.Value, error)

	// RunWith evaluates the term with initial bindings standing in for
	// enclosing binders, innermost first.
	RunWith(m *evaluator.Machine, t term.Term, bindings *evaluator.Env) (evaluator.Value, error)

	// Name returns the backend name for display.
	Name() string
}

// ForName resolves a backend by its configuration name. The compiling
// backend is the default.
func ForName(name string) (Backend, error) {
	switch name {
	case "", "jit":
		return NewJIT(), nil
	case "treewalk", "tree-walk":
		return NewTreeWalk(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
