package ir

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a 64-bit hash of the node, stable across processes.
// Equal nodes hash equally; in particular field order does not matter.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	h := xxhash.New()
	h.Write([]byte{byte(n.Type)})

	var b [8]byte
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case NumberType:
		h.Write([]byte{byte(n.Number.Kind)})
		h.WriteString(n.Number.String())
	case StringType, KeywordType, RawType:
		h.WriteString(n.String)
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		// fields are combined with a commutative sum
		var sum uint64
		for i, field := range n.Fields {
			fh := xxhash.New()
			fh.WriteString(field)
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			fh.Write(b[:])
			sum += fh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
