package constant

import (
	"bytes"
	"encoding/binary"
	"math/big"
)

// SerialiseData encodes a Data tree in the canonical ledger CBOR form:
// constructor tags 121..127 and 1280..1400 (tag 102 beyond), definite-length
// empty lists but indefinite-length non-empty ones, 64-byte chunking for
// long byte strings, and bignum tags 2/3 for integers outside the 64-bit
// range. Decoding is the wire loader's job and is not provided here.
func SerialiseData(d Data) []byte {
	var buf bytes.Buffer
	encodeData(&buf, d)
	return buf.Bytes()
}

const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorArray    = 4
	majorMap      = 5
	majorTag      = 6

	byteChunkSize = 64

	indefBytes = 0x5f
	indefArray = 0x9f
	breakByte  = 0xff
)

func encodeData(buf *bytes.Buffer, d Data) {
	switch node := d.(type) {
	case *IData:
		encodeInteger(buf, node.Value)
	case *BData:
		encodeBytes(buf, node.Value)
	case *ListData:
		encodeListData(buf, node.Items)
	case *MapData:
		writeHead(buf, majorMap, uint64(len(node.Pairs)))
		for _, p := range node.Pairs {
			encodeData(buf, p.Key)
			encodeData(buf, p.Value)
		}
	case *ConstrData:
		switch {
		case node.Tag <= 6:
			writeHead(buf, majorTag, 121+node.Tag)
		case node.Tag <= 127:
			writeHead(buf, majorTag, 1280+node.Tag-7)
		default:
			writeHead(buf, majorTag, 102)
			writeHead(buf, majorArray, 2)
			writeHead(buf, majorUnsigned, node.Tag)
		}
		encodeListData(buf, node.Fields)
	}
}

func encodeListData(buf *bytes.Buffer, items []Data) {
	if len(items) == 0 {
		writeHead(buf, majorArray, 0)
		return
	}
	buf.WriteByte(indefArray)
	for _, item := range items {
		encodeData(buf, item)
	}
	buf.WriteByte(breakByte)
}

func encodeInteger(buf *bytes.Buffer, v *big.Int) {
	if v.Sign() >= 0 {
		if v.IsUint64() {
			writeHead(buf, majorUnsigned, v.Uint64())
			return
		}
		writeHead(buf, majorTag, 2)
		encodeBytes(buf, v.Bytes())
		return
	}
	// CBOR encodes n < 0 as the magnitude of n+1.
	m := new(big.Int).Neg(new(big.Int).Add(v, bigOne))
	if m.IsUint64() {
		writeHead(buf, majorNegative, m.Uint64())
		return
	}
	writeHead(buf, majorTag, 3)
	encodeBytes(buf, m.Bytes())
}

func encodeBytes(buf *bytes.Buffer, b []byte) {
	if len(b) <= byteChunkSize {
		writeHead(buf, majorBytes, uint64(len(b)))
		buf.Write(b)
		return
	}
	buf.WriteByte(indefBytes)
	for len(b) > 0 {
		n := byteChunkSize
		if len(b) < n {
			n = len(b)
		}
		writeHead(buf, majorBytes, uint64(n))
		buf.Write(b[:n])
		b = b[n:]
	}
	buf.WriteByte(breakByte)
}

func writeHead(buf *bytes.Buffer, major byte, n uint64) {
	switch {
	case n < 24:
		buf.WriteByte(major<<5 | byte(n))
	case n <= 0xff:
		buf.WriteByte(major<<5 | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(major<<5 | 25)
		var raw [2]byte
		binary.BigEndian.PutUint16(raw[:], uint16(n))
		buf.Write(raw[:])
	case n <= 0xffffffff:
		buf.WriteByte(major<<5 | 26)
		var raw [4]byte
		binary.BigEndian.PutUint32(raw[:], uint32(n))
		buf.Write(raw[:])
	default:
		buf.WriteByte(major<<5 | 27)
		var raw [8]byte
		binary.BigEndian.PutUint64(raw[:], n)
		buf.Write(raw[:])
	}
}

var bigOne = big.NewInt(1)
