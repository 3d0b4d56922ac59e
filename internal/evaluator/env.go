package evaluator

// Env is an immutable association stack from name to value. Bind prepends,
// so an inner binding shadows an outer one with the same name; Lookup scans
// front to back. The zero value (nil) is the empty environment. The
// compiler consumes this shape at translation time only; compiled code
// never resolves names at run time.
type Env struct {
	name  string
	value Value
	next  *Env
}

// Bind returns a new environment with (name, value) at the front. The
// receiver is unchanged and may keep serving other scopes.
func (e *Env) Bind(name string, value Value) *Env {
	return &Env{name: name, value: value, next: e}
}

// Lookup returns the innermost value bound to name.
func (e *Env) Lookup(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.next {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// Names lists the bound names from innermost to outermost, shadowed entries
// included.
func (e *Env) Names() []string {
	var names []string
	for cur := e; cur != nil; cur = cur.next {
		names = append(names, cur.name)
	}
	return names
}

// Values lists the bound values from innermost to outermost.
func (e *Env) Values() []Value {
	var values []Value
	for cur := e; cur != nil; cur = cur.next {
		values = append(values, cur.value)
	}
	return values
}
