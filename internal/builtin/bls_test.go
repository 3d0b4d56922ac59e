package builtin_test

import (
	"strings"
	"testing"

	"github.com/funvibe/uplc/internal/constant"
)

const (
	g1Hex = "97f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"
	g2Hex = "93e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e" +
		"024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8"
)

func g1Const(t *testing.T, hexStr string) constant.Constant {
	t.Helper()
	return mustRun(t, "bls12_381_G1_uncompress", constant.Bytes(unhex(t, hexStr)))
}

func g2Const(t *testing.T, hexStr string) constant.Constant {
	t.Helper()
	return mustRun(t, "bls12_381_G2_uncompress", constant.Bytes(unhex(t, hexStr)))
}

func TestBlsCompressRoundTrips(t *testing.T) {
	g1 := g1Const(t, g1Hex)
	testBytes(t, mustRun(t, "bls12_381_G1_compress", g1), g1Hex)

	g2 := g2Const(t, g2Hex)
	testBytes(t, mustRun(t, "bls12_381_G2_compress", g2), g2Hex)
}

func TestBlsUncompressRejectsBadLength(t *testing.T) {
	wantFailure(t, "bls12_381_G1_uncompress", constant.Bytes(make([]byte, 47)))
	wantFailure(t, "bls12_381_G2_uncompress", constant.Bytes(make([]byte, 95)))
}

func TestBlsGroupOperations(t *testing.T) {
	g := g1Const(t, g1Hex)

	double := mustRun(t, "bls12_381_G1_add", g, g)
	byScalar := mustRun(t, "bls12_381_G1_scalarMul", constant.Int(2), g)
	testBool(t, mustRun(t, "bls12_381_G1_equal", double, byScalar), true)
	testBool(t, mustRun(t, "bls12_381_G1_equal", double, g), false)

	neg := mustRun(t, "bls12_381_G1_neg", g)
	zero := mustRun(t, "bls12_381_G1_add", g, neg)
	zeroByScalar := mustRun(t, "bls12_381_G1_scalarMul", constant.Int(0), g)
	testBool(t, mustRun(t, "bls12_381_G1_equal", zero, zeroByScalar), true)

	h := g2Const(t, g2Hex)
	doubled := mustRun(t, "bls12_381_G2_add", h, h)
	testBool(t, mustRun(t, "bls12_381_G2_equal", doubled,
		mustRun(t, "bls12_381_G2_scalarMul", constant.Int(2), h)), true)
	testBool(t, mustRun(t, "bls12_381_G2_equal", h,
		mustRun(t, "bls12_381_G2_neg", mustRun(t, "bls12_381_G2_neg", h))), true)
}

// e(aP, Q) == e(P, aQ) after final exponentiation.
func TestBlsPairingBuiltins(t *testing.T) {
	g := g1Const(t, g1Hex)
	h := g2Const(t, g2Hex)

	left := mustRun(t, "bls12_381_millerLoop",
		mustRun(t, "bls12_381_G1_scalarMul", constant.Int(5), g), h)
	right := mustRun(t, "bls12_381_millerLoop", g,
		mustRun(t, "bls12_381_G2_scalarMul", constant.Int(5), h))
	testBool(t, mustRun(t, "bls12_381_finalVerify", left, right), true)

	plain := mustRun(t, "bls12_381_millerLoop", g, h)
	testBool(t, mustRun(t, "bls12_381_finalVerify", left, plain), false)

	// e(2P, Q)·e(3P, Q) == e(5P, Q)
	two := mustRun(t, "bls12_381_millerLoop",
		mustRun(t, "bls12_381_G1_scalarMul", constant.Int(2), g), h)
	three := mustRun(t, "bls12_381_millerLoop",
		mustRun(t, "bls12_381_G1_scalarMul", constant.Int(3), g), h)
	product := mustRun(t, "bls12_381_mulMlResult", two, three)
	testBool(t, mustRun(t, "bls12_381_finalVerify", product, left), true)
}

func TestBlsHashToGroup(t *testing.T) {
	msg := constant.Bytes([]byte("transcript"))
	dst := constant.Bytes([]byte("UPLC-TEST-V01"))

	a := mustRun(t, "bls12_381_G1_hashToGroup", msg, dst)
	b := mustRun(t, "bls12_381_G1_hashToGroup", msg, dst)
	testBool(t, mustRun(t, "bls12_381_G1_equal", a, b), true)

	other := mustRun(t, "bls12_381_G1_hashToGroup", constant.Bytes([]byte("different")), dst)
	testBool(t, mustRun(t, "bls12_381_G1_equal", a, other), false)

	c := mustRun(t, "bls12_381_G2_hashToGroup", msg, dst)
	d := mustRun(t, "bls12_381_G2_hashToGroup", msg, dst)
	testBool(t, mustRun(t, "bls12_381_G2_equal", c, d), true)

	longDst := constant.Bytes([]byte(strings.Repeat("x", 256)))
	wantFailure(t, "bls12_381_G1_hashToGroup", msg, longDst)
	wantFailure(t, "bls12_381_G2_hashToGroup", msg, longDst)
}
