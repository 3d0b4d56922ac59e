// Package builtin carries the full primitive-operation catalog: arithmetic,
// byte strings, text, control, pairs, lists, structured data, hashing and
// signature checks, the BLS12-381 group operations and the bitwise batch.
// Entries register themselves per concern at init time; the compiler only
// ever sees the name→implementation table.
package builtin

import (
	"fmt"
	"sort"

	"github.com/funvibe/uplc/internal/evaluator"
)

const maxArity = 6

type builtinFn = func(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error)

var registry = map[string]*evaluator.Builtin{}

func register(name string, arity int, fn builtinFn) {
	if name == "" || fn == nil {
		panic(fmt.Sprintf("builtin: invalid registration %q", name))
	}
	if arity < 1 || arity > maxArity {
		panic(fmt.Sprintf("builtin %s: arity %d out of range", name, arity))
	}
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("builtin %s: duplicate registration", name))
	}
	registry[name] = &evaluator.Builtin{Name: name, Arity: arity, Fn: fn}
}

type table struct{}

func (table) Lookup(name string) (*evaluator.Builtin, bool) {
	b, ok := registry[name]
	return b, ok
}

// Catalog returns the complete builtin table.
func Catalog() evaluator.Catalog { return table{} }

// Names lists every registered builtin, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
