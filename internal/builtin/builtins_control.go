package builtin

import "github.com/funvibe/uplc/internal/evaluator"

func init() {
	register("ifThenElse", 3, ifThenElse)
	register("chooseUnit", 2, chooseUnit)
	register("trace", 2, trace)
}

// ifThenElse picks one of two already-passed values without invoking it;
// callers keep branches lazy by delaying them and forcing the selection.
func ifThenElse(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	cond, err := boolArg("ifThenElse", args, 0)
	if err != nil {
		return nil, err
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func chooseUnit(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	if err := unitArg("chooseUnit", args, 0); err != nil {
		return nil, err
	}
	return args[1], nil
}

// trace emits its message on the machine's side channel and passes the
// second argument through untouched.
func trace(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	msg, err := strArg("trace", args, 0)
	if err != nil {
		return nil, err
	}
	m.Trace(msg)
	return args[1], nil
}
