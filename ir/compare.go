package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Equal reports whether a and b are structurally equal. Numbers must
// have the same kind as well as the same value. Objects are equal when
// they have the same fields with equal values, in any order.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number.Equal(b.Number)
	case StringType, KeywordType, RawType:
		return a.String == b.String
	case ArrayType:
		return slices.EqualFunc(a.Values, b.Values, Equal)
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			bv := b.Get(f)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Compare(a, b) == 0 exactly when Equal(a, b).
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(rank(a.Type), rank(b.Type))
	}

	switch a.Type {
	case NumberType:
		return a.Number.Compare(b.Number)
	case StringType, KeywordType, RawType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return slices.CompareFunc(a.Values, b.Values, Compare)
	case ObjectType:
		return compareObjects(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object < Keyword < Raw
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	case KeywordType:
		return 6
	case RawType:
		return 7
	}
	return 100
}

// compareObjects compares objects field by field in name order, so that
// field order does not affect the result.
func compareObjects(a, b *Node) int {
	af := slices.Sorted(slices.Values(a.Fields))
	bf := slices.Sorted(slices.Values(b.Fields))
	for i := 0; i < min(len(af), len(bf)); i++ {
		if c := strings.Compare(af[i], bf[i]); c != 0 {
			return c
		}
		if c := Compare(a.Get(af[i]), b.Get(bf[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(af), len(bf))
}
