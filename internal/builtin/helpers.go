package builtin

import (
	"math/big"

	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

// Argument projections. Arity is enforced by the currying wrapper, so these
// only check shapes and report the mismatch as the builtin's failure.

func constArg(name string, args []evaluator.Value, idx int) (constant.Constant, error) {
	s, ok := args[idx].(*evaluator.Scalar)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected a constant, got %s", idx+1, args[idx].Kind())
	}
	return s.Constant, nil
}

func intArg(name string, args []evaluator.Value, idx int) (*big.Int, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	n, ok := c.(*constant.Integer)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected integer, got %s", idx+1, c.Type())
	}
	return n.Value, nil
}

func bytesArg(name string, args []evaluator.Value, idx int) ([]byte, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	b, ok := c.(*constant.ByteString)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected bytestring, got %s", idx+1, c.Type())
	}
	return b.Value, nil
}

func strArg(name string, args []evaluator.Value, idx int) (string, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return "", err
	}
	s, ok := c.(*constant.String)
	if !ok {
		return "", evaluator.BuiltinErrorf(name, "argument %d: expected string, got %s", idx+1, c.Type())
	}
	return s.Value, nil
}

func boolArg(name string, args []evaluator.Value, idx int) (bool, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return false, err
	}
	b, ok := c.(*constant.Bool)
	if !ok {
		return false, evaluator.BuiltinErrorf(name, "argument %d: expected bool, got %s", idx+1, c.Type())
	}
	return b.Value, nil
}

func unitArg(name string, args []evaluator.Value, idx int) error {
	c, err := constArg(name, args, idx)
	if err != nil {
		return err
	}
	if _, ok := c.(*constant.Unit); !ok {
		return evaluator.BuiltinErrorf(name, "argument %d: expected unit, got %s", idx+1, c.Type())
	}
	return nil
}

func dataArg(name string, args []evaluator.Value, idx int) (constant.Data, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	d, ok := c.(*constant.DataConstant)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected data, got %s", idx+1, c.Type())
	}
	return d.Value, nil
}

func listArg(name string, args []evaluator.Value, idx int) (*constant.List, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	l, ok := c.(*constant.List)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected list, got %s", idx+1, c.Type())
	}
	return l, nil
}

func pairArg(name string, args []evaluator.Value, idx int) (*constant.Pair, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	p, ok := c.(*constant.Pair)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected pair, got %s", idx+1, c.Type())
	}
	return p, nil
}

func g1Arg(name string, args []evaluator.Value, idx int) (*constant.G1Element, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	e, ok := c.(*constant.G1Element)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected G1 element, got %s", idx+1, c.Type())
	}
	return e, nil
}

func g2Arg(name string, args []evaluator.Value, idx int) (*constant.G2Element, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	e, ok := c.(*constant.G2Element)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected G2 element, got %s", idx+1, c.Type())
	}
	return e, nil
}

func mlArg(name string, args []evaluator.Value, idx int) (*constant.MlResult, error) {
	c, err := constArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	e, ok := c.(*constant.MlResult)
	if !ok {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected pairing result, got %s", idx+1, c.Type())
	}
	return e, nil
}

func twoInts(name string, args []evaluator.Value) (*big.Int, *big.Int, error) {
	x, err := intArg(name, args, 0)
	if err != nil {
		return nil, nil, err
	}
	y, err := intArg(name, args, 1)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func twoBytes(name string, args []evaluator.Value, first, second int) ([]byte, []byte, error) {
	a, err := bytesArg(name, args, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := bytesArg(name, args, second)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Result constructors.

func integer(v *big.Int) evaluator.Value {
	return &evaluator.Scalar{Constant: &constant.Integer{Value: v}}
}

func bytestring(v []byte) evaluator.Value {
	return &evaluator.Scalar{Constant: &constant.ByteString{Value: v}}
}

func text(v string) evaluator.Value {
	return &evaluator.Scalar{Constant: &constant.String{Value: v}}
}

func boolean(v bool) evaluator.Value {
	return &evaluator.Scalar{Constant: constant.Boolean(v)}
}

func dataValue(d constant.Data) evaluator.Value {
	return &evaluator.Scalar{Constant: &constant.DataConstant{Value: d}}
}

func scalar(c constant.Constant) evaluator.Value {
	return &evaluator.Scalar{Constant: c}
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)
