package ir

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// The Get* accessors look up field name of an object and return the
// zero value and false when the field is missing or holds another type.
// The Require* accessors return ErrNotFound or a *TypeMismatchError
// instead.

func (y *Node) lookup(name string, t Type) (*Node, bool) {
	v := y.Get(name)
	if v == nil || v.Type != t {
		return nil, false
	}
	return v, true
}

func (y *Node) GetString(name string) (string, bool) {
	v, ok := y.lookup(name, StringType)
	if !ok {
		return "", false
	}
	return v.String, true
}

func (y *Node) GetBool(name string) (bool, bool) {
	v, ok := y.lookup(name, BoolType)
	if !ok {
		return false, false
	}
	return v.Bool, true
}

func (y *Node) GetNumber(name string) (*Number, bool) {
	v, ok := y.lookup(name, NumberType)
	if !ok {
		return nil, false
	}
	return v.Number, true
}

// GetInt64 coerces any numeric kind that holds an exact int64.
func (y *Node) GetInt64(name string) (int64, bool) {
	n, ok := y.GetNumber(name)
	if !ok {
		return 0, false
	}
	return n.Int64()
}

// GetFloat64 is a lossy view of any numeric kind.
func (y *Node) GetFloat64(name string) (float64, bool) {
	n, ok := y.GetNumber(name)
	if !ok {
		return 0, false
	}
	return n.Float64(), true
}

func (y *Node) GetBigInt(name string) (*big.Int, bool) {
	n, ok := y.GetNumber(name)
	if !ok {
		return nil, false
	}
	return n.BigInt()
}

func (y *Node) GetDecimal(name string) (decimal.Decimal, bool) {
	n, ok := y.GetNumber(name)
	if !ok {
		return decimal.Decimal{}, false
	}
	return n.Decimal(), true
}

func (y *Node) GetObject(name string) (*Node, bool) {
	return y.lookup(name, ObjectType)
}

func (y *Node) GetArray(name string) (*Node, bool) {
	return y.lookup(name, ArrayType)
}

func (y *Node) require(name string, t Type) (*Node, error) {
	if y == nil {
		return nil, ErrNilNode
	}
	if err := y.expect(ObjectType); err != nil {
		return nil, err
	}
	v := y.Get(name)
	if v == nil {
		return nil, &requireErr{name: name}
	}
	if v.Type != t {
		return nil, &TypeMismatchError{Name: name, Expected: t, Actual: v.Type}
	}
	return v, nil
}

type requireErr struct{ name string }

func (e *requireErr) Error() string { return ErrNotFound.Error() + ": " + e.name }
func (e *requireErr) Unwrap() error { return ErrNotFound }

func (y *Node) RequireString(name string) (string, error) {
	v, err := y.require(name, StringType)
	if err != nil {
		return "", err
	}
	return v.String, nil
}

func (y *Node) RequireBool(name string) (bool, error) {
	v, err := y.require(name, BoolType)
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

func (y *Node) RequireNumber(name string) (*Number, error) {
	v, err := y.require(name, NumberType)
	if err != nil {
		return nil, err
	}
	return v.Number, nil
}

// RequireInt64 fails with ErrWrongType if the number is not an exact
// int64.
func (y *Node) RequireInt64(name string) (int64, error) {
	n, err := y.RequireNumber(name)
	if err != nil {
		return 0, err
	}
	i, ok := n.Int64()
	if !ok {
		return 0, &TypeMismatchError{Name: name, Expected: NumberType, Actual: NumberType,
			Detail: n.Kind.String() + " " + n.String() + " is not an exact int64"}
	}
	return i, nil
}

func (y *Node) RequireObject(name string) (*Node, error) {
	return y.require(name, ObjectType)
}

func (y *Node) RequireArray(name string) (*Node, error) {
	return y.require(name, ArrayType)
}
