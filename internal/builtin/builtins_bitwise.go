package builtin

import (
	"bytes"
	"math/big"
	"math/bits"

	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

// Bit index 0 is the least significant bit of the LAST byte, so a
// bytestring reads as one big-endian number and bit k of the string is
// bit k of that number.

const maxByteStringWidth = 8192

func init() {
	register("integerToByteString", 3, integerToByteString)
	register("byteStringToInteger", 2, byteStringToInteger)
	register("andByteString", 3, andByteString)
	register("orByteString", 3, orByteString)
	register("xorByteString", 3, xorByteString)
	register("complementByteString", 1, complementByteString)
	register("readBit", 2, readBit)
	register("writeBits", 3, writeBits)
	register("replicateByte", 2, replicateByte)
	register("shiftByteString", 2, shiftByteString)
	register("rotateByteString", 2, rotateByteString)
	register("countSetBits", 1, countSetBits)
	register("findFirstSetBit", 1, findFirstSetBit)
}

func integerToByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	bigEndian, err := boolArg("integerToByteString", args, 0)
	if err != nil {
		return nil, err
	}
	w, err := intArg("integerToByteString", args, 1)
	if err != nil {
		return nil, err
	}
	n, err := intArg("integerToByteString", args, 2)
	if err != nil {
		return nil, err
	}
	if w.Sign() < 0 || w.Cmp(big.NewInt(maxByteStringWidth)) > 0 {
		return nil, evaluator.BuiltinErrorf("integerToByteString", "width %s outside 0..%d", w, maxByteStringWidth)
	}
	if n.Sign() < 0 {
		return nil, evaluator.BuiltinErrorf("integerToByteString", "cannot encode negative %s", n)
	}
	width := int(w.Int64())
	raw := n.Bytes()
	if width == 0 && len(raw) > maxByteStringWidth {
		return nil, evaluator.BuiltinErrorf("integerToByteString", "%s needs %d bytes, limit is %d", n, len(raw), maxByteStringWidth)
	}
	if width > 0 && len(raw) > width {
		return nil, evaluator.BuiltinErrorf("integerToByteString", "%s does not fit in %d bytes", n, width)
	}
	size := len(raw)
	if width > 0 {
		size = width
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	if !bigEndian {
		reverseBytes(out)
	}
	return bytestring(out), nil
}

func byteStringToInteger(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	bigEndian, err := boolArg("byteStringToInteger", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := bytesArg("byteStringToInteger", args, 1)
	if err != nil {
		return nil, err
	}
	raw := append([]byte(nil), b...)
	if !bigEndian {
		reverseBytes(raw)
	}
	return integer(new(big.Int).SetBytes(raw)), nil
}

func andByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	return combineByteStrings("andByteString", args, func(x, y byte) byte { return x & y })
}

func orByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	return combineByteStrings("orByteString", args, func(x, y byte) byte { return x | y })
}

func xorByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	return combineByteStrings("xorByteString", args, func(x, y byte) byte { return x ^ y })
}

// combineByteStrings applies op position by position from the front.
// With padding the result takes the longer length and the longer
// operand's tail passes through unchanged (the shorter one is read as
// extended with the operation's identity byte); without it the result
// stops at the shorter length.
func combineByteStrings(name string, args []evaluator.Value, op func(x, y byte) byte) (evaluator.Value, error) {
	pad, err := boolArg(name, args, 0)
	if err != nil {
		return nil, err
	}
	a, b, err := twoBytes(name, args, 1, 2)
	if err != nil {
		return nil, err
	}
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	size := len(shorter)
	if pad {
		size = len(longer)
	}
	out := make([]byte, size)
	for i := 0; i < len(shorter); i++ {
		out[i] = op(a[i], b[i])
	}
	copy(out[len(shorter):], longer[len(shorter):])
	return bytestring(out), nil
}

func complementByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("complementByteString", args, 0)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = ^v
	}
	return bytestring(out), nil
}

func readBit(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("readBit", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := intArg("readBit", args, 1)
	if err != nil {
		return nil, err
	}
	if i.Sign() < 0 || i.Cmp(big.NewInt(int64(len(b))*8)) >= 0 {
		return nil, evaluator.BuiltinErrorf("readBit", "bit %s out of range for %d bytes", i, len(b))
	}
	k := i.Int64()
	v := b[int64(len(b))-1-k/8]
	return boolean(v>>uint(k%8)&1 == 1), nil
}

func writeBits(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("writeBits", args, 0)
	if err != nil {
		return nil, err
	}
	l, err := listArg("writeBits", args, 1)
	if err != nil {
		return nil, err
	}
	set, err := boolArg("writeBits", args, 2)
	if err != nil {
		return nil, err
	}
	if !l.Elem.Equal(constant.TInteger) {
		return nil, evaluator.BuiltinErrorf("writeBits", "argument 2: expected (list integer), got %s", l.Type())
	}
	out := append([]byte(nil), b...)
	limit := big.NewInt(int64(len(b)) * 8)
	for _, item := range l.Items {
		i := item.(*constant.Integer).Value
		if i.Sign() < 0 || i.Cmp(limit) >= 0 {
			return nil, evaluator.BuiltinErrorf("writeBits", "bit %s out of range for %d bytes", i, len(b))
		}
		k := i.Int64()
		pos := int64(len(b)) - 1 - k/8
		mask := byte(1) << uint(k%8)
		if set {
			out[pos] |= mask
		} else {
			out[pos] &^= mask
		}
	}
	return bytestring(out), nil
}

func replicateByte(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	n, w, err := twoInts("replicateByte", args)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 || n.Cmp(big.NewInt(maxByteStringWidth)) > 0 {
		return nil, evaluator.BuiltinErrorf("replicateByte", "length %s outside 0..%d", n, maxByteStringWidth)
	}
	if w.Sign() < 0 || w.Cmp(big.NewInt(255)) > 0 {
		return nil, evaluator.BuiltinErrorf("replicateByte", "%s does not fit a byte", w)
	}
	return bytestring(bytes.Repeat([]byte{byte(w.Uint64())}, int(n.Int64()))), nil
}

// shiftByteString keeps the length: positive shifts move bits toward the
// front (the high end), negative toward the back, and bits shifted past
// either end vanish.
func shiftByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("shiftByteString", args, 0)
	if err != nil {
		return nil, err
	}
	k, err := intArg("shiftByteString", args, 1)
	if err != nil {
		return nil, err
	}
	width := int64(len(b)) * 8
	if k.CmpAbs(big.NewInt(width)) >= 0 {
		return bytestring(make([]byte, len(b))), nil
	}
	x := new(big.Int).SetBytes(b)
	if k.Sign() >= 0 {
		x.Lsh(x, uint(k.Int64()))
		x.And(x, bitMask(width))
	} else {
		x.Rsh(x, uint(-k.Int64()))
	}
	out := make([]byte, len(b))
	x.FillBytes(out)
	return bytestring(out), nil
}

// rotateByteString is the wrapping variant: the shift distance is taken
// modulo the bit width, so any integer distance is in range.
func rotateByteString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("rotateByteString", args, 0)
	if err != nil {
		return nil, err
	}
	k, err := intArg("rotateByteString", args, 1)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return bytestring([]byte{}), nil
	}
	width := int64(len(b)) * 8
	s := uint(new(big.Int).Mod(k, big.NewInt(width)).Int64())
	if s == 0 {
		return bytestring(append([]byte(nil), b...)), nil
	}
	x := new(big.Int).SetBytes(b)
	hi := new(big.Int).Lsh(x, s)
	lo := new(big.Int).Rsh(x, uint(width)-s)
	hi.Or(hi, lo)
	hi.And(hi, bitMask(width))
	out := make([]byte, len(b))
	hi.FillBytes(out)
	return bytestring(out), nil
}

func countSetBits(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("countSetBits", args, 0)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, v := range b {
		total += bits.OnesCount8(v)
	}
	return integer(big.NewInt(int64(total))), nil
}

func findFirstSetBit(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("findFirstSetBit", args, 0)
	if err != nil {
		return nil, err
	}
	for j := len(b) - 1; j >= 0; j-- {
		if b[j] != 0 {
			idx := int64(len(b)-1-j)*8 + int64(bits.TrailingZeros8(b[j]))
			return integer(big.NewInt(idx)), nil
		}
	}
	return integer(big.NewInt(-1)), nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func bitMask(width int64) *big.Int {
	mask := new(big.Int).Lsh(bigOne, uint(width))
	return mask.Sub(mask, bigOne)
}
