package evaluator

import (
	"fmt"

	"github.com/funvibe/uplc/internal/term"
)

// Eval walks t directly, resolving names against env on every step. This is
// the non-optimizing reference semantics the compiling backend is measured
// against; the two must be indistinguishable from the outside.
func (m *Machine) Eval(t term.Term, env *Env) (Value, error) {
	switch node := t.(type) {
	case *term.Var:
		v, ok := env.Lookup(node.Name)
		if !ok {
			return nil, &CompileError{Kind: UnboundVariable, Name: node.Name}
		}
		return v, nil

	case *term.LamAbs:
		captured := env
		return &Function{Fn: func(arg Value) (Value, error) {
			return m.Eval(node.Body, captured.Bind(node.Name, arg))
		}}, nil

	case *term.Apply:
		fn, err := m.Eval(node.Fn, env)
		if err != nil {
			return nil, err
		}
		arg, err := m.Eval(node.Arg, env)
		if err != nil {
			return nil, err
		}
		return Apply(fn, arg)

	case *term.Delay:
		captured := env
		return &Thunk{Run: func() (Value, error) {
			return m.Eval(node.Body, captured)
		}}, nil

	case *term.Force:
		v, err := m.Eval(node.Body, env)
		if err != nil {
			return nil, err
		}
		return Force(v)

	case *term.Const:
		return DecodeConstant(node.Value)

	case *term.Builtin:
		b, ok := m.catalog.Lookup(node.Name)
		if !ok {
			return nil, &CompileError{Kind: UnknownBuiltin, Name: node.Name}
		}
		return m.BuiltinValue(b), nil

	case *term.Error:
		return nil, &RuntimeError{Kind: ExplicitError}

	case *term.Constr:
		fields := make([]Value, 0, len(node.Fields))
		for _, f := range node.Fields {
			v, err := m.Eval(f, env)
			if err != nil {
				return nil, err
			}
			fields = append(fields, v)
		}
		return &Tagged{Tag: node.Tag, Fields: fields}, nil

	case *term.Case:
		scrut, err := m.Eval(node.Scrut, env)
		if err != nil {
			return nil, err
		}
		tagged, ok := scrut.(*Tagged)
		if !ok {
			return nil, &RuntimeError{Kind: NotATaggedValue, Detail: fmt.Sprintf("got %s", scrut.Kind())}
		}
		if tagged.Tag >= uint64(len(node.Branches)) {
			return nil, &RuntimeError{
				Kind:   BranchIndexOutOfRange,
				Detail: fmt.Sprintf("tag %d with %d branches", tagged.Tag, len(node.Branches)),
			}
		}
		v, err := m.Eval(node.Branches[tagged.Tag], env)
		if err != nil {
			return nil, err
		}
		for _, f := range tagged.Fields {
			v, err = Apply(v, f)
			if err != nil {
				return nil, err
			}
		}
		return v, nil
	}

	return nil, fmt.Errorf("evaluate: unhandled term %T", t)
}
