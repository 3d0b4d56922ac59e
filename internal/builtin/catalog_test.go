package builtin_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/uplc/internal/builtin"
)

// The full catalog, grouped the way the implementation files group it.
// The test pins exact membership so a lost init() registration shows up
// as a diff, not as a mystery at evaluation time.
var wantBuiltins = []string{
	// integers
	"addInteger", "subtractInteger", "multiplyInteger",
	"divideInteger", "quotientInteger", "remainderInteger", "modInteger",
	"equalsInteger", "lessThanInteger", "lessThanEqualsInteger",
	"expModInteger",
	// byte strings
	"appendByteString", "consByteString", "sliceByteString",
	"lengthOfByteString", "indexByteString",
	"equalsByteString", "lessThanByteString", "lessThanEqualsByteString",
	// text
	"appendString", "equalsString", "encodeUtf8", "decodeUtf8",
	// control
	"ifThenElse", "chooseUnit", "trace",
	// pairs
	"fstPair", "sndPair", "mkPairData",
	// lists
	"chooseList", "mkCons", "headList", "tailList", "nullList",
	"mkNilData", "mkNilPairData",
	// structured data
	"chooseData", "constrData", "mapData", "listData", "iData", "bData",
	"unConstrData", "unMapData", "unListData", "unIData", "unBData",
	"equalsData", "serialiseData",
	// hashing and signatures
	"sha2_256", "sha3_256", "blake2b_224", "blake2b_256", "keccak_256",
	"ripemd_160",
	"verifyEd25519Signature", "verifyEcdsaSecp256k1Signature",
	"verifySchnorrSecp256k1Signature",
	// BLS12-381
	"bls12_381_G1_add", "bls12_381_G1_neg", "bls12_381_G1_scalarMul",
	"bls12_381_G1_equal", "bls12_381_G1_hashToGroup",
	"bls12_381_G1_compress", "bls12_381_G1_uncompress",
	"bls12_381_G2_add", "bls12_381_G2_neg", "bls12_381_G2_scalarMul",
	"bls12_381_G2_equal", "bls12_381_G2_hashToGroup",
	"bls12_381_G2_compress", "bls12_381_G2_uncompress",
	"bls12_381_millerLoop", "bls12_381_mulMlResult", "bls12_381_finalVerify",
	// bitwise and conversions
	"integerToByteString", "byteStringToInteger",
	"andByteString", "orByteString", "xorByteString", "complementByteString",
	"readBit", "writeBits", "replicateByte",
	"shiftByteString", "rotateByteString",
	"countSetBits", "findFirstSetBit",
}

func TestCatalogMembership(t *testing.T) {
	want := append([]string(nil), wantBuiltins...)
	sort.Strings(want)
	if diff := cmp.Diff(want, builtin.Names()); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogEntriesAreWellFormed(t *testing.T) {
	catalog := builtin.Catalog()
	for _, name := range builtin.Names() {
		b, ok := catalog.Lookup(name)
		if !ok {
			t.Fatalf("%s listed but not resolvable", name)
		}
		if b.Name != name {
			t.Errorf("%s resolves to entry named %q", name, b.Name)
		}
		if b.Arity < 1 || b.Arity > 6 {
			t.Errorf("%s has arity %d, want 1..6", name, b.Arity)
		}
		if b.Fn == nil {
			t.Errorf("%s has no implementation", name)
		}
	}
}

func TestArities(t *testing.T) {
	tests := []struct {
		name  string
		arity int
	}{
		{"sha2_256", 1},
		{"addInteger", 2},
		{"trace", 2},
		{"bls12_381_finalVerify", 2},
		{"ifThenElse", 3},
		{"sliceByteString", 3},
		{"expModInteger", 3},
		{"verifyEd25519Signature", 3},
		{"integerToByteString", 3},
		{"writeBits", 3},
		{"chooseData", 6},
	}
	catalog := builtin.Catalog()
	for _, tt := range tests {
		b, ok := catalog.Lookup(tt.name)
		if !ok {
			t.Fatalf("builtin %s not registered", tt.name)
		}
		if b.Arity != tt.arity {
			t.Errorf("%s arity=%d, want %d", tt.name, b.Arity, tt.arity)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := builtin.Catalog().Lookup("frobnicate"); ok {
		t.Error("unknown name resolved")
	}
}
