package builtin_test

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/funvibe/uplc/internal/builtin"
	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

// callBuiltin drives a catalog entry through the machine's curried chain,
// the same path compiled programs take.
func callBuiltin(t *testing.T, m *evaluator.Machine, name string, args ...evaluator.Value) (evaluator.Value, error) {
	t.Helper()
	b, ok := builtin.Catalog().Lookup(name)
	if !ok {
		t.Fatalf("builtin %s not registered", name)
	}
	if b.Arity != len(args) {
		t.Fatalf("builtin %s has arity %d, test passes %d args", name, b.Arity, len(args))
	}
	v := m.BuiltinValue(b)
	var err error
	for _, arg := range args {
		v, err = evaluator.Apply(v, arg)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// run applies a builtin to constant arguments and projects the constant
// result.
func run(t *testing.T, name string, args ...constant.Constant) (constant.Constant, error) {
	t.Helper()
	vals := make([]evaluator.Value, len(args))
	for i, c := range args {
		vals[i] = scalarOf(c)
	}
	v, err := callBuiltin(t, evaluator.NewMachine(builtin.Catalog()), name, vals...)
	if err != nil {
		return nil, err
	}
	return constantOf(t, v), nil
}

func mustRun(t *testing.T, name string, args ...constant.Constant) constant.Constant {
	t.Helper()
	c, err := run(t, name, args...)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	return c
}

// wantFailure asserts that the builtin fails and that the failure carries
// the builtin's own name.
func wantFailure(t *testing.T, name string, args ...constant.Constant) *evaluator.RuntimeError {
	t.Helper()
	_, err := run(t, name, args...)
	if err == nil {
		t.Fatalf("%s did not fail", name)
	}
	var rerr *evaluator.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("%s returned %T, want RuntimeError. got=%v", name, err, err)
	}
	if rerr.Kind != evaluator.BuiltinFailure {
		t.Errorf("%s failed with kind %q, want %q", name, rerr.Kind, evaluator.BuiltinFailure)
	}
	if rerr.Builtin != name {
		t.Errorf("failure names builtin %q, want %q", rerr.Builtin, name)
	}
	return rerr
}

func scalarOf(c constant.Constant) evaluator.Value {
	return &evaluator.Scalar{Constant: c}
}

func constantOf(t *testing.T, v evaluator.Value) constant.Constant {
	t.Helper()
	s, ok := v.(*evaluator.Scalar)
	if !ok {
		t.Fatalf("value is not Scalar. got=%T (%+v)", v, v)
	}
	return s.Constant
}

func testInteger(t *testing.T, c constant.Constant, want int64) bool {
	t.Helper()
	n, ok := c.(*constant.Integer)
	if !ok {
		t.Errorf("constant is not Integer. got=%T (%+v)", c, c)
		return false
	}
	if n.Value.Cmp(big.NewInt(want)) != 0 {
		t.Errorf("wrong integer. got=%s, want=%d", n.Value, want)
		return false
	}
	return true
}

func testBytes(t *testing.T, c constant.Constant, wantHex string) bool {
	t.Helper()
	b, ok := c.(*constant.ByteString)
	if !ok {
		t.Errorf("constant is not ByteString. got=%T (%+v)", c, c)
		return false
	}
	if got := hex.EncodeToString(b.Value); got != wantHex {
		t.Errorf("wrong bytes. got=%s, want=%s", got, wantHex)
		return false
	}
	return true
}

func testBool(t *testing.T, c constant.Constant, want bool) bool {
	t.Helper()
	b, ok := c.(*constant.Bool)
	if !ok {
		t.Errorf("constant is not Bool. got=%T (%+v)", c, c)
		return false
	}
	if b.Value != want {
		t.Errorf("wrong bool. got=%t, want=%t", b.Value, want)
		return false
	}
	return true
}

func testText(t *testing.T, c constant.Constant, want string) bool {
	t.Helper()
	s, ok := c.(*constant.String)
	if !ok {
		t.Errorf("constant is not String. got=%T (%+v)", c, c)
		return false
	}
	if s.Value != want {
		t.Errorf("wrong string. got=%q, want=%q", s.Value, want)
		return false
	}
	return true
}

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func intList(vs ...int64) *constant.List {
	items := make([]constant.Constant, 0, len(vs))
	for _, v := range vs {
		items = append(items, constant.Int(v))
	}
	return &constant.List{Elem: constant.TInteger, Items: items}
}

func TestArithmeticBuiltins(t *testing.T) {
	tests := []struct {
		name string
		x, y int64
		want int64
	}{
		{"addInteger", 2, 3, 5},
		{"addInteger", -2, 2, 0},
		{"subtractInteger", 2, 3, -1},
		{"multiplyInteger", -4, 3, -12},
		{"multiplyInteger", 0, 9, 0},
	}
	for _, tt := range tests {
		testInteger(t, mustRun(t, tt.name, constant.Int(tt.x), constant.Int(tt.y)), tt.want)
	}
}

// The division family differs only in rounding: divideInteger rounds
// toward negative infinity and quotientInteger toward zero, modInteger
// follows the divisor's sign and remainderInteger the dividend's.
func TestDivisionFamily(t *testing.T) {
	tests := []struct {
		name string
		x, y int64
		want int64
	}{
		{"divideInteger", 7, 2, 3},
		{"divideInteger", -7, 2, -4},
		{"divideInteger", 7, -2, -4},
		{"divideInteger", -7, -2, 3},
		{"divideInteger", 6, 3, 2},
		{"divideInteger", -6, 3, -2},
		{"quotientInteger", 7, 2, 3},
		{"quotientInteger", -7, 2, -3},
		{"quotientInteger", 7, -2, -3},
		{"quotientInteger", -7, -2, 3},
		{"remainderInteger", 7, 2, 1},
		{"remainderInteger", -7, 2, -1},
		{"remainderInteger", 7, -2, 1},
		{"remainderInteger", -7, -2, -1},
		{"modInteger", 7, 2, 1},
		{"modInteger", -7, 2, 1},
		{"modInteger", 7, -2, -1},
		{"modInteger", -7, -2, -1},
	}
	for _, tt := range tests {
		testInteger(t, mustRun(t, tt.name, constant.Int(tt.x), constant.Int(tt.y)), tt.want)
	}
}

func TestDivisionByZeroFails(t *testing.T) {
	for _, name := range []string{"divideInteger", "quotientInteger", "remainderInteger", "modInteger"} {
		wantFailure(t, name, constant.Int(1), constant.Int(0))
	}
}

func TestExpModInteger(t *testing.T) {
	testInteger(t, mustRun(t, "expModInteger", constant.Int(2), constant.Int(10), constant.Int(1000)), 24)
	testInteger(t, mustRun(t, "expModInteger", constant.Int(2), constant.Int(-1), constant.Int(5)), 3)
	testInteger(t, mustRun(t, "expModInteger", constant.Int(0), constant.Int(0), constant.Int(7)), 1)
	testInteger(t, mustRun(t, "expModInteger", constant.Int(5), constant.Int(0), constant.Int(1)), 0)

	// 2 has no inverse modulo 4, and the modulus must be positive.
	wantFailure(t, "expModInteger", constant.Int(2), constant.Int(-1), constant.Int(4))
	wantFailure(t, "expModInteger", constant.Int(2), constant.Int(3), constant.Int(0))
	wantFailure(t, "expModInteger", constant.Int(2), constant.Int(3), constant.Int(-7))
}

func TestIntegerComparisons(t *testing.T) {
	tests := []struct {
		name string
		x, y int64
		want bool
	}{
		{"equalsInteger", 4, 4, true},
		{"equalsInteger", 4, 5, false},
		{"lessThanInteger", 4, 5, true},
		{"lessThanInteger", 5, 4, false},
		{"lessThanInteger", 4, 4, false},
		{"lessThanEqualsInteger", 4, 4, true},
		{"lessThanEqualsInteger", 5, 4, false},
	}
	for _, tt := range tests {
		testBool(t, mustRun(t, tt.name, constant.Int(tt.x), constant.Int(tt.y)), tt.want)
	}
}

func TestAppendAndLengthOfByteString(t *testing.T) {
	got := mustRun(t, "appendByteString", constant.Bytes(unhex(t, "aa")), constant.Bytes(unhex(t, "bbcc")))
	testBytes(t, got, "aabbcc")
	testBytes(t, mustRun(t, "appendByteString", constant.Bytes(nil), constant.Bytes(nil)), "")
	testInteger(t, mustRun(t, "lengthOfByteString", constant.Bytes(unhex(t, "aabbcc"))), 3)
	testInteger(t, mustRun(t, "lengthOfByteString", constant.Bytes(nil)), 0)
}

func TestConsByteString(t *testing.T) {
	testBytes(t, mustRun(t, "consByteString", constant.Int(0x41), constant.Bytes(unhex(t, "42"))), "4142")
	wantFailure(t, "consByteString", constant.Int(256), constant.Bytes(nil))
	wantFailure(t, "consByteString", constant.Int(-1), constant.Bytes(nil))
}

func TestSliceByteStringClamps(t *testing.T) {
	tests := []struct {
		from, size int64
		in, want   string
	}{
		{0, 2, "001122", "0011"},
		{1, 1, "001122", "11"},
		{1, 5, "001122", "1122"},
		{-5, 3, "001122", "001122"},
		{-5, 2, "001122", "0011"},
		{10, 2, "0011", ""},
		{0, -1, "0011", ""},
		{0, 0, "0011", ""},
	}
	for _, tt := range tests {
		got := mustRun(t, "sliceByteString", constant.Int(tt.from), constant.Int(tt.size), constant.Bytes(unhex(t, tt.in)))
		testBytes(t, got, tt.want)
	}
}

func TestIndexByteString(t *testing.T) {
	testInteger(t, mustRun(t, "indexByteString", constant.Bytes(unhex(t, "0a0b")), constant.Int(1)), 11)
	wantFailure(t, "indexByteString", constant.Bytes(unhex(t, "0a0b")), constant.Int(2))
	wantFailure(t, "indexByteString", constant.Bytes(unhex(t, "0a0b")), constant.Int(-1))
	wantFailure(t, "indexByteString", constant.Bytes(nil), constant.Int(0))
}

func TestByteStringComparisons(t *testing.T) {
	tests := []struct {
		name   string
		ah, bh string
		want   bool
	}{
		{"equalsByteString", "00ff", "00ff", true},
		{"equalsByteString", "00ff", "00fe", false},
		{"lessThanByteString", "", "00", true},
		{"lessThanByteString", "00", "0000", true},
		{"lessThanByteString", "0a", "0b", true},
		{"lessThanByteString", "0b", "0a", false},
		{"lessThanByteString", "00", "00", false},
		{"lessThanEqualsByteString", "00", "00", true},
		{"lessThanEqualsByteString", "0b", "0a", false},
	}
	for _, tt := range tests {
		got := mustRun(t, tt.name, constant.Bytes(unhex(t, tt.ah)), constant.Bytes(unhex(t, tt.bh)))
		testBool(t, got, tt.want)
	}
}

func TestStringBuiltins(t *testing.T) {
	testText(t, mustRun(t, "appendString", constant.Str("foo"), constant.Str("bar")), "foobar")
	testBool(t, mustRun(t, "equalsString", constant.Str("foo"), constant.Str("foo")), true)
	testBool(t, mustRun(t, "equalsString", constant.Str("foo"), constant.Str("Foo")), false)
	testBytes(t, mustRun(t, "encodeUtf8", constant.Str("abc")), "616263")
	testBytes(t, mustRun(t, "encodeUtf8", constant.Str("λ")), "cebb")
	testText(t, mustRun(t, "decodeUtf8", constant.Bytes(unhex(t, "cebb"))), "λ")
	wantFailure(t, "decodeUtf8", constant.Bytes(unhex(t, "ff")))
}

func TestIfThenElseSelects(t *testing.T) {
	testInteger(t, mustRun(t, "ifThenElse", constant.True, constant.Int(1), constant.Int(2)), 1)
	testInteger(t, mustRun(t, "ifThenElse", constant.False, constant.Int(1), constant.Int(2)), 2)
	wantFailure(t, "ifThenElse", constant.Int(0), constant.Int(1), constant.Int(2))
}

func TestChooseUnit(t *testing.T) {
	testInteger(t, mustRun(t, "chooseUnit", constant.UnitVal, constant.Int(9)), 9)
	wantFailure(t, "chooseUnit", constant.Int(0), constant.Int(9))
}

func TestTraceAppendsToMachineLog(t *testing.T) {
	m := evaluator.NewMachine(builtin.Catalog())
	v, err := callBuiltin(t, m, "trace", scalarOf(constant.Str("checkpoint")), scalarOf(constant.Int(7)))
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	testInteger(t, constantOf(t, v), 7)
	if len(m.Logs) != 1 || m.Logs[0] != "checkpoint" {
		t.Errorf("wrong trace log. got=%q", m.Logs)
	}

	if _, err := callBuiltin(t, m, "trace", scalarOf(constant.Str("again")), scalarOf(constant.UnitVal)); err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	if len(m.Logs) != 2 || m.Logs[1] != "again" {
		t.Errorf("trace log did not accumulate. got=%q", m.Logs)
	}
}

func TestPairBuiltins(t *testing.T) {
	pair := mustRun(t, "mkPairData",
		&constant.DataConstant{Value: &constant.IData{Value: big.NewInt(1)}},
		&constant.DataConstant{Value: &constant.BData{Value: unhex(t, "aa")}})

	fst := mustRun(t, "fstPair", pair)
	if !constant.Equal(fst, &constant.DataConstant{Value: &constant.IData{Value: big.NewInt(1)}}) {
		t.Errorf("wrong first component. got=%s", fst)
	}
	snd := mustRun(t, "sndPair", pair)
	if !constant.Equal(snd, &constant.DataConstant{Value: &constant.BData{Value: unhex(t, "aa")}}) {
		t.Errorf("wrong second component. got=%s", snd)
	}

	wantFailure(t, "fstPair", constant.Int(1))
	wantFailure(t, "sndPair", constant.Int(1))
}

func TestChooseList(t *testing.T) {
	testInteger(t, mustRun(t, "chooseList", intList(), constant.Int(1), constant.Int(2)), 1)
	testInteger(t, mustRun(t, "chooseList", intList(7), constant.Int(1), constant.Int(2)), 2)
	wantFailure(t, "chooseList", constant.Int(0), constant.Int(1), constant.Int(2))
}

func TestMkCons(t *testing.T) {
	got := mustRun(t, "mkCons", constant.Int(1), intList(2, 3))
	if !constant.Equal(got, intList(1, 2, 3)) {
		t.Errorf("wrong list. got=%s", got)
	}
	got = mustRun(t, "mkCons", constant.Int(1), intList())
	if !constant.Equal(got, intList(1)) {
		t.Errorf("wrong list. got=%s", got)
	}
	wantFailure(t, "mkCons", constant.Bytes(unhex(t, "aa")), intList(1))
}

func TestHeadAndTailList(t *testing.T) {
	testInteger(t, mustRun(t, "headList", intList(1, 2)), 1)
	tail := mustRun(t, "tailList", intList(1, 2))
	if !constant.Equal(tail, intList(2)) {
		t.Errorf("wrong tail. got=%s", tail)
	}
	wantFailure(t, "headList", intList())
	wantFailure(t, "tailList", intList())
}

func TestNullList(t *testing.T) {
	testBool(t, mustRun(t, "nullList", intList()), true)
	testBool(t, mustRun(t, "nullList", intList(1)), false)
}

func TestMkNilBuiltins(t *testing.T) {
	nilData := mustRun(t, "mkNilData", constant.UnitVal)
	l, ok := nilData.(*constant.List)
	if !ok || len(l.Items) != 0 || !l.Elem.Equal(constant.TData) {
		t.Errorf("wrong empty list. got=%s", nilData)
	}

	nilPairs := mustRun(t, "mkNilPairData", constant.UnitVal)
	l, ok = nilPairs.(*constant.List)
	if !ok || len(l.Items) != 0 || !l.Elem.Equal(constant.TPair(constant.TData, constant.TData)) {
		t.Errorf("wrong empty pair list. got=%s", nilPairs)
	}

	wantFailure(t, "mkNilData", constant.Int(0))
}

func TestDataConstructionRoundTrips(t *testing.T) {
	i := mustRun(t, "iData", constant.Int(42))
	testInteger(t, mustRun(t, "unIData", i), 42)

	b := mustRun(t, "bData", constant.Bytes(unhex(t, "0102")))
	testBytes(t, mustRun(t, "unBData", b), "0102")

	fields := &constant.List{Elem: constant.TData, Items: []constant.Constant{i, b}}
	c := mustRun(t, "constrData", constant.Int(3), fields)
	unpacked := mustRun(t, "unConstrData", c)
	p, ok := unpacked.(*constant.Pair)
	if !ok {
		t.Fatalf("unConstrData did not return a pair. got=%T (%+v)", unpacked, unpacked)
	}
	testInteger(t, p.First, 3)
	if !constant.Equal(p.Second, fields) {
		t.Errorf("wrong fields. got=%s, want=%s", p.Second, fields)
	}

	items := mustRun(t, "listData", fields)
	back := mustRun(t, "unListData", items)
	if !constant.Equal(back, fields) {
		t.Errorf("wrong items. got=%s, want=%s", back, fields)
	}

	pairs := &constant.List{
		Elem:  constant.TPair(constant.TData, constant.TData),
		Items: []constant.Constant{mustRun(t, "mkPairData", i, b)},
	}
	m := mustRun(t, "mapData", pairs)
	backPairs := mustRun(t, "unMapData", m)
	if !constant.Equal(backPairs, pairs) {
		t.Errorf("wrong pairs. got=%s, want=%s", backPairs, pairs)
	}
}

func TestDataProjectionMismatches(t *testing.T) {
	i := &constant.DataConstant{Value: &constant.IData{Value: big.NewInt(1)}}
	b := &constant.DataConstant{Value: &constant.BData{Value: unhex(t, "aa")}}

	wantFailure(t, "unIData", b)
	wantFailure(t, "unBData", i)
	wantFailure(t, "unConstrData", i)
	wantFailure(t, "unMapData", i)
	wantFailure(t, "unListData", i)
	wantFailure(t, "unIData", constant.Int(1))
}

func TestConstrDataTagRange(t *testing.T) {
	empty := &constant.List{Elem: constant.TData}
	wantFailure(t, "constrData", constant.Int(-1), empty)

	big64 := new(big.Int).Lsh(big.NewInt(1), 64)
	wantFailure(t, "constrData", &constant.Integer{Value: big64}, empty)
}

func TestChooseData(t *testing.T) {
	tests := []struct {
		d    constant.Data
		want int64
	}{
		{&constant.ConstrData{Tag: 0}, 1},
		{&constant.MapData{}, 2},
		{&constant.ListData{}, 3},
		{&constant.IData{Value: big.NewInt(0)}, 4},
		{&constant.BData{}, 5},
	}
	for _, tt := range tests {
		got := mustRun(t, "chooseData",
			&constant.DataConstant{Value: tt.d},
			constant.Int(1), constant.Int(2), constant.Int(3), constant.Int(4), constant.Int(5))
		testInteger(t, got, tt.want)
	}
}

func TestEqualsData(t *testing.T) {
	a := &constant.DataConstant{Value: &constant.ConstrData{Tag: 0, Fields: []constant.Data{
		&constant.IData{Value: big.NewInt(1)},
		&constant.BData{Value: unhex(t, "aa")},
	}}}
	b := &constant.DataConstant{Value: &constant.ConstrData{Tag: 0, Fields: []constant.Data{
		&constant.IData{Value: big.NewInt(1)},
		&constant.BData{Value: unhex(t, "aa")},
	}}}
	c := &constant.DataConstant{Value: &constant.ConstrData{Tag: 1, Fields: []constant.Data{
		&constant.IData{Value: big.NewInt(1)},
		&constant.BData{Value: unhex(t, "aa")},
	}}}

	testBool(t, mustRun(t, "equalsData", a, b), true)
	testBool(t, mustRun(t, "equalsData", a, c), false)
}

func TestSerialiseDataBuiltin(t *testing.T) {
	empty := &constant.DataConstant{Value: &constant.ConstrData{Tag: 0}}
	testBytes(t, mustRun(t, "serialiseData", empty), "d87980")

	million := &constant.DataConstant{Value: &constant.IData{Value: big.NewInt(1000000)}}
	testBytes(t, mustRun(t, "serialiseData", million), "1a000f4240")

	m := &constant.DataConstant{Value: &constant.MapData{Pairs: []constant.DataPair{{
		Key:   &constant.IData{Value: big.NewInt(1)},
		Value: &constant.BData{Value: unhex(t, "00")},
	}}}}
	testBytes(t, mustRun(t, "serialiseData", m), "a1014100")
}

func TestArgumentShapeMismatch(t *testing.T) {
	rerr := wantFailure(t, "addInteger", constant.Int(1), constant.Str("two"))
	if rerr.Detail == "" {
		t.Errorf("shape mismatch carries no detail")
	}
}
