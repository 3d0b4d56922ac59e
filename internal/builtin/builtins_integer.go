package builtin

import (
	"math/big"

	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("addInteger", 2, addInteger)
	register("subtractInteger", 2, subtractInteger)
	register("multiplyInteger", 2, multiplyInteger)
	register("divideInteger", 2, divideInteger)
	register("quotientInteger", 2, quotientInteger)
	register("remainderInteger", 2, remainderInteger)
	register("modInteger", 2, modInteger)
	register("equalsInteger", 2, equalsInteger)
	register("lessThanInteger", 2, lessThanInteger)
	register("lessThanEqualsInteger", 2, lessThanEqualsInteger)
	register("expModInteger", 3, expModInteger)
}

func addInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("addInteger", args)
	if err != nil {
		return nil, err
	}
	return integer(new(big.Int).Add(x, y)), nil
}

func subtractInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("subtractInteger", args)
	if err != nil {
		return nil, err
	}
	return integer(new(big.Int).Sub(x, y)), nil
}

func multiplyInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("multiplyInteger", args)
	if err != nil {
		return nil, err
	}
	return integer(new(big.Int).Mul(x, y)), nil
}

// divideInteger rounds toward negative infinity, quotientInteger toward
// zero; modInteger takes the divisor's sign, remainderInteger the
// dividend's. All four reject a zero divisor.

func divideInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("divideInteger", args)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, evaluator.BuiltinErrorf("divideInteger", "division by zero")
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, bigOne)
	}
	return integer(q), nil
}

func quotientInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("quotientInteger", args)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, evaluator.BuiltinErrorf("quotientInteger", "division by zero")
	}
	return integer(new(big.Int).Quo(x, y)), nil
}

func remainderInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("remainderInteger", args)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, evaluator.BuiltinErrorf("remainderInteger", "division by zero")
	}
	return integer(new(big.Int).Rem(x, y)), nil
}

func modInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("modInteger", args)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, evaluator.BuiltinErrorf("modInteger", "division by zero")
	}
	r := new(big.Int).Rem(x, y)
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		r.Add(r, y)
	}
	return integer(r), nil
}

func equalsInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("equalsInteger", args)
	if err != nil {
		return nil, err
	}
	return boolean(x.Cmp(y) == 0), nil
}

func lessThanInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("lessThanInteger", args)
	if err != nil {
		return nil, err
	}
	return boolean(x.Cmp(y) < 0), nil
}

func lessThanEqualsInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	x, y, err := twoInts("lessThanEqualsInteger", args)
	if err != nil {
		return nil, err
	}
	return boolean(x.Cmp(y) <= 0), nil
}

func expModInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	base, err := intArg("expModInteger", args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := intArg("expModInteger", args, 1)
	if err != nil {
		return nil, err
	}
	mod, err := intArg("expModInteger", args, 2)
	if err != nil {
		return nil, err
	}
	if mod.Sign() <= 0 {
		return nil, evaluator.BuiltinErrorf("expModInteger", "modulus must be positive, got %s", mod)
	}
	r := new(big.Int).Exp(base, exp, mod)
	if r == nil {
		return nil, evaluator.BuiltinErrorf("expModInteger", "%s has no inverse modulo %s", base, mod)
	}
	return integer(r), nil
}
