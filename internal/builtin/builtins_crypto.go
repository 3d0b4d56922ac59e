package builtin

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("sha2_256", 1, sha2Hash)
	register("sha3_256", 1, sha3Hash)
	register("blake2b_224", 1, blake2b224Hash)
	register("blake2b_256", 1, blake2b256Hash)
	register("keccak_256", 1, keccakHash)
	register("ripemd_160", 1, ripemdHash)
	register("verifyEd25519Signature", 3, verifyEd25519Signature)
	register("verifyEcdsaSecp256k1Signature", 3, verifyEcdsaSecp256k1Signature)
	register("verifySchnorrSecp256k1Signature", 3, verifySchnorrSecp256k1Signature)
}

func sha2Hash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("sha2_256", args, 0)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(b)
	return bytestring(sum[:]), nil
}

func sha3Hash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("sha3_256", args, 0)
	if err != nil {
		return nil, err
	}
	sum := sha3.Sum256(b)
	return bytestring(sum[:]), nil
}

func blake2b224Hash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("blake2b_224", args, 0)
	if err != nil {
		return nil, err
	}
	h, err := blake2b.New(28, nil)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("blake2b_224", "%v", err)
	}
	h.Write(b)
	return bytestring(h.Sum(nil)), nil
}

func blake2b256Hash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("blake2b_256", args, 0)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(b)
	return bytestring(sum[:]), nil
}

func keccakHash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("keccak_256", args, 0)
	if err != nil {
		return nil, err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return bytestring(h.Sum(nil)), nil
}

func ripemdHash(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("ripemd_160", args, 0)
	if err != nil {
		return nil, err
	}
	h := ripemd160.New()
	h.Write(b)
	return bytestring(h.Sum(nil)), nil
}

// Signature checks take (key, message, signature). Malformed keys and
// signatures fail; a well-formed signature that does not match returns
// False.

func verifyEd25519Signature(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	key, err := bytesArg("verifyEd25519Signature", args, 0)
	if err != nil {
		return nil, err
	}
	msg, err := bytesArg("verifyEd25519Signature", args, 1)
	if err != nil {
		return nil, err
	}
	sig, err := bytesArg("verifyEd25519Signature", args, 2)
	if err != nil {
		return nil, err
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, evaluator.BuiltinErrorf("verifyEd25519Signature", "verification key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, evaluator.BuiltinErrorf("verifyEd25519Signature", "signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	return boolean(ed25519.Verify(ed25519.PublicKey(key), msg, sig)), nil
}

func verifyEcdsaSecp256k1Signature(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	key, err := bytesArg("verifyEcdsaSecp256k1Signature", args, 0)
	if err != nil {
		return nil, err
	}
	msg, err := bytesArg("verifyEcdsaSecp256k1Signature", args, 1)
	if err != nil {
		return nil, err
	}
	sig, err := bytesArg("verifyEcdsaSecp256k1Signature", args, 2)
	if err != nil {
		return nil, err
	}
	if len(key) != 33 {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "verification key must be 33 bytes, got %d", len(key))
	}
	if len(msg) != 32 {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "message must be 32 bytes, got %d", len(msg))
	}
	if len(sig) != 64 {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "signature must be 64 bytes, got %d", len(sig))
	}
	pub, err := btcec.ParsePubKey(key)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "invalid verification key: %v", err)
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "invalid signature: r overflows the group order")
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return nil, evaluator.BuiltinErrorf("verifyEcdsaSecp256k1Signature", "invalid signature: s overflows the group order")
	}
	// Verification accepts canonical signatures only.
	if s.IsOverHalfOrder() {
		return boolean(false), nil
	}
	return boolean(btcecdsa.NewSignature(&r, &s).Verify(msg, pub)), nil
}

func verifySchnorrSecp256k1Signature(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	key, err := bytesArg("verifySchnorrSecp256k1Signature", args, 0)
	if err != nil {
		return nil, err
	}
	msg, err := bytesArg("verifySchnorrSecp256k1Signature", args, 1)
	if err != nil {
		return nil, err
	}
	sig, err := bytesArg("verifySchnorrSecp256k1Signature", args, 2)
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, evaluator.BuiltinErrorf("verifySchnorrSecp256k1Signature", "verification key must be 32 bytes, got %d", len(key))
	}
	if len(sig) != 64 {
		return nil, evaluator.BuiltinErrorf("verifySchnorrSecp256k1Signature", "signature must be 64 bytes, got %d", len(sig))
	}
	pub, err := schnorr.ParsePubKey(key)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("verifySchnorrSecp256k1Signature", "invalid verification key: %v", err)
	}
	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return nil, evaluator.BuiltinErrorf("verifySchnorrSecp256k1Signature", "invalid signature: %v", err)
	}
	return boolean(parsed.Verify(msg, pub)), nil
}
