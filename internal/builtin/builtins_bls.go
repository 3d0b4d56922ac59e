package builtin

import (
	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("bls12_381_G1_add", 2, g1Add)
	register("bls12_381_G1_neg", 1, g1Neg)
	register("bls12_381_G1_scalarMul", 2, g1ScalarMul)
	register("bls12_381_G1_equal", 2, g1Equal)
	register("bls12_381_G1_hashToGroup", 2, g1HashToGroup)
	register("bls12_381_G1_compress", 1, g1Compress)
	register("bls12_381_G1_uncompress", 1, g1Uncompress)
	register("bls12_381_G2_add", 2, g2Add)
	register("bls12_381_G2_neg", 1, g2Neg)
	register("bls12_381_G2_scalarMul", 2, g2ScalarMul)
	register("bls12_381_G2_equal", 2, g2Equal)
	register("bls12_381_G2_hashToGroup", 2, g2HashToGroup)
	register("bls12_381_G2_compress", 1, g2Compress)
	register("bls12_381_G2_uncompress", 1, g2Uncompress)
	register("bls12_381_millerLoop", 2, millerLoop)
	register("bls12_381_mulMlResult", 2, mulMlResult)
	register("bls12_381_finalVerify", 2, finalVerify)
}

func g1Add(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g1Arg("bls12_381_G1_add", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := g1Arg("bls12_381_G1_add", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(a.Add(b)), nil
}

func g1Neg(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g1Arg("bls12_381_G1_neg", args, 0)
	if err != nil {
		return nil, err
	}
	return scalar(a.Neg()), nil
}

func g1ScalarMul(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	k, err := intArg("bls12_381_G1_scalarMul", args, 0)
	if err != nil {
		return nil, err
	}
	p, err := g1Arg("bls12_381_G1_scalarMul", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(p.ScalarMul(k)), nil
}

func g1Equal(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g1Arg("bls12_381_G1_equal", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := g1Arg("bls12_381_G1_equal", args, 1)
	if err != nil {
		return nil, err
	}
	return boolean(a.Equal(b)), nil
}

func g1HashToGroup(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	msg, dst, err := twoBytes("bls12_381_G1_hashToGroup", args, 0, 1)
	if err != nil {
		return nil, err
	}
	p, err := constant.G1HashTo(msg, dst)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("bls12_381_G1_hashToGroup", "%v", err)
	}
	return scalar(p), nil
}

func g1Compress(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	p, err := g1Arg("bls12_381_G1_compress", args, 0)
	if err != nil {
		return nil, err
	}
	return bytestring(p.Compress()), nil
}

func g1Uncompress(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	raw, err := bytesArg("bls12_381_G1_uncompress", args, 0)
	if err != nil {
		return nil, err
	}
	p, err := constant.G1FromCompressed(raw)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("bls12_381_G1_uncompress", "%v", err)
	}
	return scalar(p), nil
}

func g2Add(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g2Arg("bls12_381_G2_add", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := g2Arg("bls12_381_G2_add", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(a.Add(b)), nil
}

func g2Neg(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g2Arg("bls12_381_G2_neg", args, 0)
	if err != nil {
		return nil, err
	}
	return scalar(a.Neg()), nil
}

func g2ScalarMul(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	k, err := intArg("bls12_381_G2_scalarMul", args, 0)
	if err != nil {
		return nil, err
	}
	p, err := g2Arg("bls12_381_G2_scalarMul", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(p.ScalarMul(k)), nil
}

func g2Equal(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g2Arg("bls12_381_G2_equal", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := g2Arg("bls12_381_G2_equal", args, 1)
	if err != nil {
		return nil, err
	}
	return boolean(a.Equal(b)), nil
}

func g2HashToGroup(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	msg, dst, err := twoBytes("bls12_381_G2_hashToGroup", args, 0, 1)
	if err != nil {
		return nil, err
	}
	p, err := constant.G2HashTo(msg, dst)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("bls12_381_G2_hashToGroup", "%v", err)
	}
	return scalar(p), nil
}

func g2Compress(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	p, err := g2Arg("bls12_381_G2_compress", args, 0)
	if err != nil {
		return nil, err
	}
	return bytestring(p.Compress()), nil
}

func g2Uncompress(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	raw, err := bytesArg("bls12_381_G2_uncompress", args, 0)
	if err != nil {
		return nil, err
	}
	p, err := constant.G2FromCompressed(raw)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("bls12_381_G2_uncompress", "%v", err)
	}
	return scalar(p), nil
}

func millerLoop(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := g1Arg("bls12_381_millerLoop", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := g2Arg("bls12_381_millerLoop", args, 1)
	if err != nil {
		return nil, err
	}
	r, err := constant.MillerLoop(a, b)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("bls12_381_millerLoop", "%v", err)
	}
	return scalar(r), nil
}

func mulMlResult(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := mlArg("bls12_381_mulMlResult", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := mlArg("bls12_381_mulMlResult", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(constant.MulMlResult(a, b)), nil
}

func finalVerify(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := mlArg("bls12_381_finalVerify", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := mlArg("bls12_381_finalVerify", args, 1)
	if err != nil {
		return nil, err
	}
	return boolean(constant.FinalVerify(a, b)), nil
}
