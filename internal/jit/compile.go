// Package jit translates terms into graphs of host closures ahead of
// execution. Translation resolves every variable reference to a frame
// depth, decodes every constant and looks up every builtin exactly once;
// running the staged code never dispatches on node shape again, only the
// values flowing through the frame change between runs.
package jit

import (
	"fmt"

	"github.com/funvibe/uplc/internal/evaluator"
	"github.com/funvibe/uplc/internal/term"
)

// code is one staged node: a host closure from the runtime frame to the
// node's value.
type code func(env *frame) (evaluator.Value, error)

// Compiler stages terms for one machine. The machine hosts builtin
// execution and tracing on every run of the staged code; the Compiler
// itself keeps no state between terms.
type Compiler struct {
	machine *evaluator.Machine
}

func New(m *evaluator.Machine) *Compiler {
	return &Compiler{machine: m}
}

// Compile stages t with no initial bindings and runs the root code, so
// redexes outside any binder evaluate immediately. A root Delay comes
// back as an unforced Thunk.
func (c *Compiler) Compile(t term.Term) (evaluator.Value, error) {
	return c.CompileWith(t, nil)
}

// CompileWith stages t against initial bindings, then runs the root code
// in the matching frame. The bindings stand in for enclosing binders,
// innermost first.
func (c *Compiler) CompileWith(t term.Term, bindings *evaluator.Env) (evaluator.Value, error) {
	sc, fr := split(bindings)
	root, err := c.compile(t, sc)
	if err != nil {
		return nil, err
	}
	return root(fr)
}

// compile translates one node into its staged closure. Every branch of
// the term is staged, reached at run time or not, so malformed names,
// builtins and constants fail here and never later.
func (c *Compiler) compile(t term.Term, sc *scope) (code, error) {
	switch node := t.(type) {
	case *term.Var:
		depth, ok := sc.index(node.Name)
		if !ok {
			return nil, &evaluator.CompileError{Kind: evaluator.UnboundVariable, Name: node.Name}
		}
		return func(env *frame) (evaluator.Value, error) {
			return env.at(depth), nil
		}, nil

	case *term.LamAbs:
		body, err := c.compile(node.Body, &scope{name: node.Name, next: sc})
		if err != nil {
			return nil, err
		}
		return func(env *frame) (evaluator.Value, error) {
			return &evaluator.Function{Fn: func(arg evaluator.Value) (evaluator.Value, error) {
				return body(&frame{value: arg, next: env})
			}}, nil
		}, nil

	case *term.Apply:
		fn, err := c.compile(node.Fn, sc)
		if err != nil {
			return nil, err
		}
		arg, err := c.compile(node.Arg, sc)
		if err != nil {
			return nil, err
		}
		return func(env *frame) (evaluator.Value, error) {
			f, err := fn(env)
			if err != nil {
				return nil, err
			}
			a, err := arg(env)
			if err != nil {
				return nil, err
			}
			return evaluator.Apply(f, a)
		}, nil

	case *term.Delay:
		body, err := c.compile(node.Body, sc)
		if err != nil {
			return nil, err
		}
		return func(env *frame) (evaluator.Value, error) {
			return &evaluator.Thunk{Run: func() (evaluator.Value, error) {
				return body(env)
			}}, nil
		}, nil

	case *term.Force:
		body, err := c.compile(node.Body, sc)
		if err != nil {
			return nil, err
		}
		return func(env *frame) (evaluator.Value, error) {
			v, err := body(env)
			if err != nil {
				return nil, err
			}
			return evaluator.Force(v)
		}, nil

	case *term.Const:
		v, err := evaluator.DecodeConstant(node.Value)
		if err != nil {
			return nil, err
		}
		return func(*frame) (evaluator.Value, error) {
			return v, nil
		}, nil

	case *term.Builtin:
		b, ok := c.machine.Catalog().Lookup(node.Name)
		if !ok {
			return nil, &evaluator.CompileError{Kind: evaluator.UnknownBuiltin, Name: node.Name}
		}
		m := c.machine
		return func(*frame) (evaluator.Value, error) {
			return m.BuiltinValue(b), nil
		}, nil

	case *term.Error:
		return func(*frame) (evaluator.Value, error) {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ExplicitError}
		}, nil

	case *term.Constr:
		fields := make([]code, 0, len(node.Fields))
		for _, f := range node.Fields {
			fc, err := c.compile(f, sc)
			if err != nil {
				return nil, err
			}
			fields = append(fields, fc)
		}
		tag := node.Tag
		return func(env *frame) (evaluator.Value, error) {
			vals := make([]evaluator.Value, 0, len(fields))
			for _, fc := range fields {
				v, err := fc(env)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			return &evaluator.Tagged{Tag: tag, Fields: vals}, nil
		}, nil

	case *term.Case:
		scrut, err := c.compile(node.Scrut, sc)
		if err != nil {
			return nil, err
		}
		branches := make([]code, 0, len(node.Branches))
		for _, b := range node.Branches {
			bc, err := c.compile(b, sc)
			if err != nil {
				return nil, err
			}
			branches = append(branches, bc)
		}
		return func(env *frame) (evaluator.Value, error) {
			v, err := scrut(env)
			if err != nil {
				return nil, err
			}
			tagged, ok := v.(*evaluator.Tagged)
			if !ok {
				return nil, &evaluator.RuntimeError{Kind: evaluator.NotATaggedValue, Detail: fmt.Sprintf("got %s", v.Kind())}
			}
			if tagged.Tag >= uint64(len(branches)) {
				return nil, &evaluator.RuntimeError{
					Kind:   evaluator.BranchIndexOutOfRange,
					Detail: fmt.Sprintf("tag %d with %d branches", tagged.Tag, len(branches)),
				}
			}
			branch, err := branches[tagged.Tag](env)
			if err != nil {
				return nil, err
			}
			for _, f := range tagged.Fields {
				branch, err = evaluator.Apply(branch, f)
				if err != nil {
					return nil, err
				}
			}
			return branch, nil
		}, nil
	}

	return nil, fmt.Errorf("compile: unhandled term %T", t)
}

// Run compiles t on m and settles the result: a root thunk is forced
// exactly once, anything else passes through untouched.
func Run(m *evaluator.Machine, t term.Term) (evaluator.Value, error) {
	v, err := New(m).Compile(t)
	if err != nil {
		return nil, err
	}
	return evaluator.ForceRoot(v)
}
