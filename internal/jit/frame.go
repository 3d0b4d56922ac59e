package jit

import "github.com/funvibe/uplc/internal/evaluator"

// frame is the runtime binding stack: one slot per enclosing binder,
// innermost first. Staged code reaches a slot by depth; no name survives
// into run time.
type frame struct {
	value evaluator.Value
	next  *frame
}

func (f *frame) at(depth int) evaluator.Value {
	cur := f
	for i := 0; i < depth; i++ {
		cur = cur.next
	}
	return cur.value
}

// scope is the compile-time mirror of frame: the same stack with names
// instead of values. index resolves a name to the depth its value will
// occupy at run time.
type scope struct {
	name string
	next *scope
}

func (s *scope) index(name string) (int, bool) {
	depth := 0
	for cur := s; cur != nil; cur = cur.next {
		if cur.name == name {
			return depth, true
		}
		depth++
	}
	return 0, false
}

// split turns initial bindings into the matching scope and frame pair,
// preserving innermost-first order.
func split(bindings *evaluator.Env) (*scope, *frame) {
	names, values := bindings.Names(), bindings.Values()
	var sc *scope
	var fr *frame
	for i := len(names) - 1; i >= 0; i-- {
		sc = &scope{name: names[i], next: sc}
		fr = &frame{value: values[i], next: fr}
	}
	return sc, fr
}
