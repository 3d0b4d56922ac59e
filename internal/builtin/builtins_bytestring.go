package builtin

import (
	"bytes"
	"math/big"

	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("appendByteString", 2, appendByteString)
	register("consByteString", 2, consByteString)
	register("sliceByteString", 3, sliceByteString)
	register("lengthOfByteString", 1, lengthOfByteString)
	register("indexByteString", 2, indexByteString)
	register("equalsByteString", 2, equalsByteString)
	register("lessThanByteString", 2, lessThanByteString)
	register("lessThanEqualsByteString", 2, lessThanEqualsByteString)
}

func appendByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, b, err := twoBytes("appendByteString", args, 0, 1)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return bytestring(out), nil
}

func consByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	n, err := intArg("consByteString", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := bytesArg("consByteString", args, 1)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 || n.Cmp(big.NewInt(255)) > 0 {
		return nil, evaluator.BuiltinErrorf("consByteString", "%s does not fit a byte", n)
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, byte(n.Uint64()))
	out = append(out, b...)
	return bytestring(out), nil
}

// sliceByteString drops from, then takes size, clamping both to the
// available range instead of failing.
func sliceByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	from, size, err := twoInts("sliceByteString", args)
	if err != nil {
		return nil, err
	}
	b, err := bytesArg("sliceByteString", args, 2)
	if err != nil {
		return nil, err
	}
	n := int64(len(b))
	lo := clampInt(from, 0, n)
	hi := lo + clampInt(size, 0, n)
	if hi > n {
		hi = n
	}
	return bytestring(append([]byte(nil), b[lo:hi]...)), nil
}

func lengthOfByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("lengthOfByteString", args, 0)
	if err != nil {
		return nil, err
	}
	return integer(big.NewInt(int64(len(b)))), nil
}

func indexByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("indexByteString", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := intArg("indexByteString", args, 1)
	if err != nil {
		return nil, err
	}
	if i.Sign() < 0 || i.Cmp(big.NewInt(int64(len(b)))) >= 0 {
		return nil, evaluator.BuiltinErrorf("indexByteString", "index %s out of bounds for %d bytes", i, len(b))
	}
	return integer(big.NewInt(int64(b[i.Int64()]))), nil
}

func equalsByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, b, err := twoBytes("equalsByteString", args, 0, 1)
	if err != nil {
		return nil, err
	}
	return boolean(bytes.Equal(a, b)), nil
}

func lessThanByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, b, err := twoBytes("lessThanByteString", args, 0, 1)
	if err != nil {
		return nil, err
	}
	return boolean(bytes.Compare(a, b) < 0), nil
}

func lessThanEqualsByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, b, err := twoBytes("lessThanEqualsByteString", args, 0, 1)
	if err != nil {
		return nil, err
	}
	return boolean(bytes.Compare(a, b) <= 0), nil
}

// clampInt forces v into [lo, hi] and hands back a machine word.
func clampInt(v *big.Int, lo, hi int64) int64 {
	if v.Cmp(big.NewInt(lo)) < 0 {
		return lo
	}
	if v.Cmp(big.NewInt(hi)) > 0 {
		return hi
	}
	return v.Int64()
}
