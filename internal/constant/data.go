package constant

import (
	"encoding/hex"
	"math/big"
	"strings"
)

// Data is the recursive structured-value union shared with the ledger:
// constructor applications, maps, lists, integers and byte strings.
type Data interface {
	String() string
	dataNode()
}

type ConstrData struct {
	Tag    uint64
	Fields []Data
}

func (c *ConstrData) String() string {
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		parts[i] = f.String()
	}
	return "Constr " + new(big.Int).SetUint64(c.Tag).String() + " [" + strings.Join(parts, ", ") + "]"
}
func (c *ConstrData) dataNode() {}

type DataPair struct {
	Key   Data
	Value Data
}

type MapData struct {
	Pairs []DataPair
}

func (m *MapData) String() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = "(" + p.Key.String() + ", " + p.Value.String() + ")"
	}
	return "Map [" + strings.Join(parts, ", ") + "]"
}
func (m *MapData) dataNode() {}

type ListData struct {
	Items []Data
}

func (l *ListData) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "List [" + strings.Join(parts, ", ") + "]"
}
func (l *ListData) dataNode() {}

type IData struct {
	Value *big.Int
}

func (i *IData) String() string { return "I " + i.Value.String() }
func (i *IData) dataNode()      {}

type BData struct {
	Value []byte
}

func (b *BData) String() string { return "B #" + hex.EncodeToString(b.Value) }
func (b *BData) dataNode()      {}

// DataEqual reports deep structural equality of two Data trees.
func DataEqual(a, b Data) bool {
	switch x := a.(type) {
	case *ConstrData:
		y, ok := b.(*ConstrData)
		if !ok || x.Tag != y.Tag || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !DataEqual(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	case *MapData:
		y, ok := b.(*MapData)
		if !ok || len(x.Pairs) != len(y.Pairs) {
			return false
		}
		for i := range x.Pairs {
			if !DataEqual(x.Pairs[i].Key, y.Pairs[i].Key) || !DataEqual(x.Pairs[i].Value, y.Pairs[i].Value) {
				return false
			}
		}
		return true
	case *ListData:
		y, ok := b.(*ListData)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !DataEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *IData:
		y, ok := b.(*IData)
		return ok && x.Value.Cmp(y.Value) == 0
	case *BData:
		y, ok := b.(*BData)
		return ok && string(x.Value) == string(y.Value)
	}
	return false
}
