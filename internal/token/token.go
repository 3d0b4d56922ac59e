package token

// Type identifies the lexical class of a token.
type Type string

// Token is a single lexeme with its source position. Lexeme preserves the
// raw source text; Literal carries the decoded payload (escape-processed
// strings, hex digits without their prefix).
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT  Type = "IDENT"  // x, addInteger, True, Constr
	INT    Type = "INT"    // 42, -7
	BYTES  Type = "BYTES"  // #a1b2ff, #
	HEX    Type = "HEX"    // 0x97f1d3... (group element literals)
	STRING Type = "STRING" // "hello"

	LPAREN   Type = "("
	RPAREN   Type = ")"
	LBRACKET Type = "["
	RBRACKET Type = "]"
	COMMA    Type = ","
	DOT      Type = "."

	PROGRAM Type = "PROGRAM"
	LAM     Type = "LAM"
	DELAY   Type = "DELAY"
	FORCE   Type = "FORCE"
	BUILTIN Type = "BUILTIN"
	CON     Type = "CON"
	ERROR   Type = "ERROR"
	CONSTR  Type = "CONSTR"
	CASE    Type = "CASE"
)

var keywords = map[string]Type{
	"program": PROGRAM,
	"lam":     LAM,
	"delay":   DELAY,
	"force":   FORCE,
	"builtin": BUILTIN,
	"con":     CON,
	"error":   ERROR,
	"constr":  CONSTR,
	"case":    CASE,
}

// LookupIdent distinguishes the term-language keywords from plain names.
// Constant type names (integer, list, ...) and data heads (Constr, I, B, ...)
// are contextual and stay IDENT.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
