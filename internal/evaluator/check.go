package evaluator

import (
	"slices"

	"github.com/funvibe/uplc/internal/term"
)

// Check validates every name, builtin reference and constant in t without
// running it, so translation failures surface deterministically even in
// code paths evaluation would never reach. The compiling backend gets this
// behavior from staging; the tree walker runs Check first to report the
// same failures on the same inputs.
func Check(t term.Term, scope []string, catalog Catalog) error {
	switch node := t.(type) {
	case *term.Var:
		if !slices.Contains(scope, node.Name) {
			return &CompileError{Kind: UnboundVariable, Name: node.Name}
		}
	case *term.LamAbs:
		return Check(node.Body, append(scope, node.Name), catalog)
	case *term.Apply:
		if err := Check(node.Fn, scope, catalog); err != nil {
			return err
		}
		return Check(node.Arg, scope, catalog)
	case *term.Delay:
		return Check(node.Body, scope, catalog)
	case *term.Force:
		return Check(node.Body, scope, catalog)
	case *term.Const:
		_, err := DecodeConstant(node.Value)
		return err
	case *term.Builtin:
		if _, ok := catalog.Lookup(node.Name); !ok {
			return &CompileError{Kind: UnknownBuiltin, Name: node.Name}
		}
	case *term.Constr:
		for _, f := range node.Fields {
			if err := Check(f, scope, catalog); err != nil {
				return err
			}
		}
	case *term.Case:
		if err := Check(node.Scrut, scope, catalog); err != nil {
			return err
		}
		for _, b := range node.Branches {
			if err := Check(b, scope, catalog); err != nil {
				return err
			}
		}
	}
	return nil
}
