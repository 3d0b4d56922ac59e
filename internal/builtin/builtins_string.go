package builtin

import (
	"unicode/utf8"

	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("appendString", 2, appendString)
	register("equalsString", 2, equalsString)
	register("encodeUtf8", 1, encodeUtf8)
	register("decodeUtf8", 1, decodeUtf8)
}

func appendString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := strArg("appendString", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := strArg("appendString", args, 1)
	if err != nil {
		return nil, err
	}
	return text(a + b), nil
}

func equalsString(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := strArg("equalsString", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := strArg("equalsString", args, 1)
	if err != nil {
		return nil, err
	}
	return boolean(a == b), nil
}

func encodeUtf8(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	s, err := strArg("encodeUtf8", args, 0)
	if err != nil {
		return nil, err
	}
	return bytestring([]byte(s)), nil
}

func decodeUtf8(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("decodeUtf8", args, 0)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, evaluator.BuiltinErrorf("decodeUtf8", "invalid UTF-8")
	}
	return text(string(b)), nil
}
