package evaluator_test

import (
	"testing"

	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

func scalar(v int64) evaluator.Value {
	return &evaluator.Scalar{Constant: constant.Int(v)}
}

func TestEnvLookup(t *testing.T) {
	var env *evaluator.Env

	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("empty environment resolved a name")
	}

	env = env.Bind("x", scalar(1)).Bind("y", scalar(2))

	v, ok := env.Lookup("x")
	if !ok {
		t.Fatalf("x not found")
	}
	testScalarInteger(t, v, 1)

	v, ok = env.Lookup("y")
	if !ok {
		t.Fatalf("y not found")
	}
	testScalarInteger(t, v, 2)
}

func TestEnvShadowing(t *testing.T) {
	var env *evaluator.Env
	outer := env.Bind("x", scalar(1))
	inner := outer.Bind("x", scalar(2))

	v, _ := inner.Lookup("x")
	testScalarInteger(t, v, 2)

	// The outer scope is untouched by the inner binding.
	v, _ = outer.Lookup("x")
	testScalarInteger(t, v, 1)
}

func TestEnvNames(t *testing.T) {
	var env *evaluator.Env
	env = env.Bind("a", scalar(1)).Bind("b", scalar(2)).Bind("a", scalar(3))

	got := env.Names()
	want := []string{"a", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("wrong length. got=%v, want=%v", got, want)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("names[%d] = %q, want %q", idx, got[idx], want[idx])
		}
	}

	values := env.Values()
	if len(values) != 3 {
		t.Fatalf("wrong values length. got=%d", len(values))
	}
	testScalarInteger(t, values[0], 3)
}
