// Package constant models the literal values a term can embed: the scalar
// kinds, structured Data, homogeneous lists, pairs and the BLS12-381
// group/pairing element kinds. Values are immutable after construction.
package constant

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

type Kind uint8

const (
	KindInteger Kind = iota
	KindByteString
	KindString
	KindUnit
	KindBool
	KindData
	KindList
	KindPair
	KindG1Element
	KindG2Element
	KindMlResult
)

var kindNames = map[Kind]string{
	KindInteger:    "integer",
	KindByteString: "bytestring",
	KindString:     "string",
	KindUnit:       "unit",
	KindBool:       "bool",
	KindData:       "data",
	KindList:       "list",
	KindPair:       "pair",
	KindG1Element:  "bls12_381_G1_element",
	KindG2Element:  "bls12_381_G2_element",
	KindMlResult:   "bls12_381_mlresult",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Type is a structural type tag. List carries one argument, Pair two,
// every other kind none.
type Type struct {
	Kind Kind
	Args []Type
}

var (
	TInteger    = Type{Kind: KindInteger}
	TByteString = Type{Kind: KindByteString}
	TString     = Type{Kind: KindString}
	TUnit       = Type{Kind: KindUnit}
	TBool       = Type{Kind: KindBool}
	TData       = Type{Kind: KindData}
	TG1Element  = Type{Kind: KindG1Element}
	TG2Element  = Type{Kind: KindG2Element}
	TMlResult   = Type{Kind: KindMlResult}
)

func TList(elem Type) Type {
	return Type{Kind: KindList, Args: []Type{elem}}
}

func TPair(first, second Type) Type {
	return Type{Kind: KindPair, Args: []Type{first, second}}
}

func (t Type) Elem() Type   { return t.Args[0] }
func (t Type) First() Type  { return t.Args[0] }
func (t Type) Second() Type { return t.Args[1] }

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	switch t.Kind {
	case KindList:
		return fmt.Sprintf("(list %s)", t.Args[0])
	case KindPair:
		return fmt.Sprintf("(pair %s %s)", t.Args[0], t.Args[1])
	default:
		return t.Kind.String()
	}
}

// Constant is the closed union over the literal kinds. String renders the
// value in source syntax.
type Constant interface {
	Type() Type
	String() string
	constantNode()
}

type Integer struct {
	Value *big.Int
}

func (i *Integer) Type() Type     { return TInteger }
func (i *Integer) String() string { return i.Value.String() }
func (i *Integer) constantNode()  {}

// Int builds an Integer from a machine word. Handy in tests and builders.
func Int(v int64) *Integer {
	return &Integer{Value: big.NewInt(v)}
}

type ByteString struct {
	Value []byte
}

func (b *ByteString) Type() Type     { return TByteString }
func (b *ByteString) String() string { return "#" + hex.EncodeToString(b.Value) }
func (b *ByteString) constantNode()  {}

func Bytes(v []byte) *ByteString {
	return &ByteString{Value: v}
}

type String struct {
	Value string
}

func (s *String) Type() Type     { return TString }
func (s *String) String() string { return escapeString(s.Value) }
func (s *String) constantNode()  {}

func Str(v string) *String {
	return &String{Value: v}
}

type Unit struct{}

func (u *Unit) Type() Type     { return TUnit }
func (u *Unit) String() string { return "()" }
func (u *Unit) constantNode()  {}

type Bool struct {
	Value bool
}

func (b *Bool) Type() Type { return TBool }
func (b *Bool) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}
func (b *Bool) constantNode() {}

var (
	True    = &Bool{Value: true}
	False   = &Bool{Value: false}
	UnitVal = &Unit{}
)

func Boolean(v bool) *Bool {
	if v {
		return True
	}
	return False
}

// DataConstant wraps a Data tree as a constant of kind data.
type DataConstant struct {
	Value Data
}

func (d *DataConstant) Type() Type     { return TData }
func (d *DataConstant) String() string { return "(" + d.Value.String() + ")" }
func (d *DataConstant) constantNode()  {}

// List is a homogeneous sequence. Elem tags the element type so the empty
// list stays typed; every item must carry exactly that type.
type List struct {
	Elem  Type
	Items []Constant
}

func (l *List) Type() Type { return TList(l.Elem) }
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) constantNode() {}

// NewList checks the element invariant while building.
func NewList(elem Type, items ...Constant) (*List, error) {
	for i, item := range items {
		if !item.Type().Equal(elem) {
			return nil, fmt.Errorf("list element %d: expected %s, got %s", i, elem, item.Type())
		}
	}
	return &List{Elem: elem, Items: items}, nil
}

type Pair struct {
	First  Constant
	Second Constant
}

func (p *Pair) Type() Type     { return TPair(p.First.Type(), p.Second.Type()) }
func (p *Pair) String() string { return fmt.Sprintf("(%s, %s)", p.First, p.Second) }
func (p *Pair) constantNode()  {}

// Equal reports deep structural equality, including type tags.
func Equal(a, b Constant) bool {
	if !a.Type().Equal(b.Type()) {
		return false
	}
	switch x := a.(type) {
	case *Integer:
		return x.Value.Cmp(b.(*Integer).Value) == 0
	case *ByteString:
		return bytes.Equal(x.Value, b.(*ByteString).Value)
	case *String:
		return x.Value == b.(*String).Value
	case *Unit:
		return true
	case *Bool:
		return x.Value == b.(*Bool).Value
	case *DataConstant:
		return DataEqual(x.Value, b.(*DataConstant).Value)
	case *List:
		y := b.(*List)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Pair:
		y := b.(*Pair)
		return Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case *G1Element:
		return x.Point.Equal(&b.(*G1Element).Point)
	case *G2Element:
		return x.Point.Equal(&b.(*G2Element).Point)
	case *MlResult:
		return x.Result.Equal(&b.(*MlResult).Result)
	}
	return false
}

// escapeString quotes s the way the lexer reads it back: named escapes for
// the common control characters, decimal escapes for the rest.
func escapeString(s string) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		default:
			if r < 32 || r > 126 {
				fmt.Fprintf(&out, `\%d`, r)
			} else {
				out.WriteRune(r)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}
