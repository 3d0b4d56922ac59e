package constant

import (
	"encoding/hex"
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// The three opaque curve kinds. G1/G2 elements round-trip through the
// 48/96-byte compressed form; pairing results have no serialized form.

type G1Element struct {
	Point bls12381.G1Affine
}

func (e *G1Element) Type() Type     { return TG1Element }
func (e *G1Element) String() string { return "0x" + hex.EncodeToString(e.Compress()) }
func (e *G1Element) constantNode()  {}

func (e *G1Element) Compress() []byte {
	raw := e.Point.Bytes()
	return raw[:]
}

func (e *G1Element) Add(o *G1Element) *G1Element {
	var p, q bls12381.G1Jac
	p.FromAffine(&e.Point)
	q.FromAffine(&o.Point)
	p.AddAssign(&q)
	var r G1Element
	r.Point.FromJacobian(&p)
	return &r
}

func (e *G1Element) Neg() *G1Element {
	var r G1Element
	r.Point.Neg(&e.Point)
	return &r
}

func (e *G1Element) ScalarMul(k *big.Int) *G1Element {
	var r G1Element
	r.Point.ScalarMultiplication(&e.Point, reduceScalar(k))
	return &r
}

func (e *G1Element) Equal(o *G1Element) bool {
	return e.Point.Equal(&o.Point)
}

// G1FromCompressed rejects anything but a 48-byte compressed point on the
// curve and inside the prime-order subgroup.
func G1FromCompressed(raw []byte) (*G1Element, error) {
	if len(raw) != bls12381.SizeOfG1AffineCompressed {
		return nil, fmt.Errorf("G1 element: expected %d bytes, got %d", bls12381.SizeOfG1AffineCompressed, len(raw))
	}
	var e G1Element
	if _, err := e.Point.SetBytes(raw); err != nil {
		return nil, fmt.Errorf("G1 element: %v", err)
	}
	if !e.Point.IsInSubGroup() {
		return nil, fmt.Errorf("G1 element: point not in subgroup")
	}
	return &e, nil
}

func G1HashTo(msg, dst []byte) (*G1Element, error) {
	if len(dst) > 255 {
		return nil, fmt.Errorf("hash to G1: domain separation tag longer than 255 bytes")
	}
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, fmt.Errorf("hash to G1: %v", err)
	}
	return &G1Element{Point: p}, nil
}

type G2Element struct {
	Point bls12381.G2Affine
}

func (e *G2Element) Type() Type     { return TG2Element }
func (e *G2Element) String() string { return "0x" + hex.EncodeToString(e.Compress()) }
func (e *G2Element) constantNode()  {}

func (e *G2Element) Compress() []byte {
	raw := e.Point.Bytes()
	return raw[:]
}

func (e *G2Element) Add(o *G2Element) *G2Element {
	var p, q bls12381.G2Jac
	p.FromAffine(&e.Point)
	q.FromAffine(&o.Point)
	p.AddAssign(&q)
	var r G2Element
	r.Point.FromJacobian(&p)
	return &r
}

func (e *G2Element) Neg() *G2Element {
	var r G2Element
	r.Point.Neg(&e.Point)
	return &r
}

func (e *G2Element) ScalarMul(k *big.Int) *G2Element {
	var r G2Element
	r.Point.ScalarMultiplication(&e.Point, reduceScalar(k))
	return &r
}

func (e *G2Element) Equal(o *G2Element) bool {
	return e.Point.Equal(&o.Point)
}

func G2FromCompressed(raw []byte) (*G2Element, error) {
	if len(raw) != bls12381.SizeOfG2AffineCompressed {
		return nil, fmt.Errorf("G2 element: expected %d bytes, got %d", bls12381.SizeOfG2AffineCompressed, len(raw))
	}
	var e G2Element
	if _, err := e.Point.SetBytes(raw); err != nil {
		return nil, fmt.Errorf("G2 element: %v", err)
	}
	if !e.Point.IsInSubGroup() {
		return nil, fmt.Errorf("G2 element: point not in subgroup")
	}
	return &e, nil
}

func G2HashTo(msg, dst []byte) (*G2Element, error) {
	if len(dst) > 255 {
		return nil, fmt.Errorf("hash to G2: domain separation tag longer than 255 bytes")
	}
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return nil, fmt.Errorf("hash to G2: %v", err)
	}
	return &G2Element{Point: p}, nil
}

// G1Generator and G2Generator return the standard generators.
func G1Generator() *G1Element {
	_, _, g1, _ := bls12381.Generators()
	return &G1Element{Point: g1}
}

func G2Generator() *G2Element {
	_, _, _, g2 := bls12381.Generators()
	return &G2Element{Point: g2}
}

type MlResult struct {
	Result bls12381.GT
}

func (e *MlResult) Type() Type     { return TMlResult }
func (e *MlResult) String() string { return "<ml-result>" }
func (e *MlResult) constantNode()  {}

func MillerLoop(g1 *G1Element, g2 *G2Element) (*MlResult, error) {
	gt, err := bls12381.MillerLoop([]bls12381.G1Affine{g1.Point}, []bls12381.G2Affine{g2.Point})
	if err != nil {
		return nil, fmt.Errorf("miller loop: %v", err)
	}
	return &MlResult{Result: gt}, nil
}

func MulMlResult(a, b *MlResult) *MlResult {
	var r MlResult
	r.Result.Mul(&a.Result, &b.Result)
	return &r
}

// FinalVerify runs the final exponentiation on both sides and compares.
func FinalVerify(a, b *MlResult) bool {
	left := bls12381.FinalExponentiation(&a.Result)
	right := bls12381.FinalExponentiation(&b.Result)
	return left.Equal(&right)
}

// reduceScalar maps an unbounded integer onto the scalar field so negative
// and oversized multipliers behave like their canonical representatives.
func reduceScalar(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, fr.Modulus())
}
